package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/phuslu/log"

	"github.com/jonathan/leadgen/internal/types"
)

// Offline serves profiles from a directory of JSON documents named
// "<slug>.json", for example "acme-robotics.json" for "Acme Robotics".
// It makes no network requests, so the delay range is recorded but unused.
type Offline struct {
	Settings
	dir string
}

// NewOffline creates an engine reading fixtures from dir.
func NewOffline(dir string) (*Offline, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open profiles directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("profiles path %s is not a directory", dir)
	}
	return &Offline{dir: dir}, nil
}

// ExtractCompanyProfile loads and parses the fixture for company.
func (o *Offline) ExtractCompanyProfile(ctx context.Context, company string) (*types.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slug := Slug(company)
	if slug == "" {
		return nil, &ProfileNotFoundError{Company: company, Reason: "empty company name"}
	}

	path := filepath.Join(o.dir, slug+".json")
	log.Debug().Str("company", company).Str("path", path).Msg("loading offline profile")

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &ProfileNotFoundError{Company: company, Reason: "no fixture " + slug + ".json"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	profile, err := types.ParseProfile(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return profile, nil
}

// GenerateLeadReport renders a report from the company's fixture.
func (o *Offline) GenerateLeadReport(ctx context.Context, company string, format ReportFormat) (string, error) {
	profile, err := o.ExtractCompanyProfile(ctx, company)
	if err != nil {
		return "", err
	}
	return RenderReport(company, profile, format)
}

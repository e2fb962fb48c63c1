package engine

import "fmt"

// UnsupportedFormatError indicates a report format the engine cannot produce.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported report format: %q", e.Format)
}

// ProfileNotFoundError indicates the engine has no data for a company.
type ProfileNotFoundError struct {
	Company string
	Reason  string
}

func (e *ProfileNotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("no profile found for %s: %s", e.Company, e.Reason)
	}
	return fmt.Sprintf("no profile found for %s", e.Company)
}

package session

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRunInProgress is returned when a run is requested while another is running.
var ErrRunInProgress = errors.New("an analysis is already running")

// ErrNoResult is returned when an export is requested before a successful run.
var ErrNoResult = errors.New("no analysis result available")

// ValidationError reports rejected run inputs. The session state is unchanged.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid run request: " + strings.Join(e.Fields, "; ")
}

// ExtractionError reports a failed engine call.
type ExtractionError struct {
	Company string
	Cause   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("analysis of %s failed: %v", e.Company, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

package research

import "fmt"

// NoSourcesError indicates that no page about the company could be read.
type NoSourcesError struct {
	Company string
	Failed  int
	Cause   error
}

func (e *NoSourcesError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("no sources found for %s: %v", e.Company, e.Cause)
	case e.Failed > 0:
		return fmt.Sprintf("no sources could be fetched for %s (%d failed)", e.Company, e.Failed)
	default:
		return fmt.Sprintf("no sources found for %s", e.Company)
	}
}

func (e *NoSourcesError) Unwrap() error {
	return e.Cause
}

// ExtractionError indicates that the model did not return a usable profile.
type ExtractionError struct {
	Company string
	Cause   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract profile for %s: %v", e.Company, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// LinkError indicates that links could not be read from a page.
type LinkError struct {
	URL     string
	Message string
	Cause   error
}

func (e *LinkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("link extraction error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("link extraction error for %s: %s", e.URL, e.Message)
}

func (e *LinkError) Unwrap() error {
	return e.Cause
}

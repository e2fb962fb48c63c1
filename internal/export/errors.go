package export

import "fmt"

// UnsupportedFormatError indicates an unknown export format.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format: %q (choose json, markdown, text, html or pdf)", e.Format)
}

// Error wraps a failure while producing an artifact.
type Error struct {
	Company string
	Format  Format
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s for %s failed: %v", e.Format, e.Company, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

package types

import "fmt"

// ProfileError indicates an engine document that cannot be read as a profile at all.
type ProfileError struct {
	Message string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("invalid profile document: %s", e.Message)
}

package store

import "fmt"

// NotFoundError indicates a profile or job id with no stored record.
type NotFoundError struct {
	Kind string // "profile" or "job"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

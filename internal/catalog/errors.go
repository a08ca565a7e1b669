package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidCatalogData is returned for malformed or duplicate catalog entries
var ErrInvalidCatalogData = errors.New("invalid catalog data")

// ValidationError describes the first catalog entry that failed validation
type ValidationError struct {
	Index  int
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidCatalogData, e.Reason)
	}
	return fmt.Sprintf("%s: entry %d (%q): %s", ErrInvalidCatalogData, e.Index, e.Name, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidCatalogData
}

package i18n

import (
	"errors"
	"fmt"
)

// ErrNoFallbackBundle is returned when the fallback locale has no bundle.
var ErrNoFallbackBundle = errors.New("no bundle for fallback locale")

// BundleError reports a bundle that could not be read or parsed.
type BundleError struct {
	File string
	Err  error
}

func (e *BundleError) Error() string {
	return fmt.Sprintf("message bundle %s: %v", e.File, e.Err)
}

func (e *BundleError) Unwrap() error {
	return e.Err
}

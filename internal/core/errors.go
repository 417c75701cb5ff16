package core

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound reports a code or identifier with no stored link.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateURL reports the url uniqueness constraint firing on
	// insert. Shorten resolves it by re-fetching the winning row, so it
	// never crosses the service boundary.
	ErrDuplicateURL = errors.New("url already stored")
)

// IsNotFound reports whether err is a not-found condition.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsDuplicateURL reports whether err is a url uniqueness violation.
func IsDuplicateURL(err error) bool { return errors.Is(err, ErrDuplicateURL) }

// ValidationError carries the user-visible messages for a rejected url.
// Nothing is persisted when one is returned.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid url: " + strings.Join(e.Messages, " ")
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

package core

import (
	"errors"
	"fmt"
)

// Configuration errors, fatal at startup.
var (
	ErrWalletRequired  = errors.New("wallet address is required")
	ErrInvalidInterval = errors.New("poll interval must be positive")
	ErrInvalidBackoff  = errors.New("max backoff must be >= poll interval")
	ErrInvalidChatID   = errors.New("invalid telegram chat id")
)

// FetchError wraps any failure while fetching wallet activity from the
// upstream provider. It is transient: the poll loop absorbs it through
// backoff and never lets it terminate the process.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err is (or wraps) a FetchError
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

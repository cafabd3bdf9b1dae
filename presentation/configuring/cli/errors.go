package cli

import "fmt"

// UsageError reports an unparseable command line.
type UsageError struct {
	cause error
}

func NewUsageError(cause error) *UsageError {
	return &UsageError{cause: cause}
}

func (e UsageError) Error() string {
	return fmt.Sprintf("invalid arguments: %s", e.cause)
}

func (e UsageError) Unwrap() error { return e.cause }

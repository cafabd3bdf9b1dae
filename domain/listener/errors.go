package listener

import "fmt"

// BindReason classifies why binding the socket failed.
type BindReason int

const (
	BindFailed BindReason = iota
	AddressInUse
	Unresolvable
	PermissionDenied
)

func (r BindReason) String() string {
	switch r {
	case AddressInUse:
		return "address already in use"
	case Unresolvable:
		return "address could not be resolved"
	case PermissionDenied:
		return "permission denied"
	default:
		return "bind failed"
	}
}

// BindError is returned when the socket cannot be bound. It is fatal.
type BindError struct {
	address string
	reason  BindReason
	cause   error
}

func NewBindError(address string, reason BindReason, cause error) *BindError {
	return &BindError{
		address: address,
		reason:  reason,
		cause:   cause,
	}
}

func (e BindError) Error() string {
	return fmt.Sprintf("failed to bind %s: %s: %s", e.address, e.reason, e.cause)
}

func (e BindError) Unwrap() error      { return e.cause }
func (e BindError) Address() string    { return e.address }
func (e BindError) Reason() BindReason { return e.reason }

// ReceiveError is returned when reading from a bound socket fails for any
// reason other than cancellation. It is fatal.
type ReceiveError struct {
	cause error
}

func NewReceiveError(cause error) *ReceiveError {
	return &ReceiveError{cause: cause}
}

func (e ReceiveError) Error() string {
	return fmt.Sprintf("failed to read from UDP: %s", e.cause)
}

func (e ReceiveError) Unwrap() error { return e.cause }

package listener

import "fmt"

// DecodeErrorPolicy decides what the receive loop does with a payload that is
// not valid UTF-8.
type DecodeErrorPolicy string

const (
	// ContinueOnDecodeError logs the malformed datagram and keeps serving.
	ContinueOnDecodeError DecodeErrorPolicy = "continue"
	// StopOnDecodeError ends the receive loop with the decode error.
	StopOnDecodeError DecodeErrorPolicy = "stop"
)

func ParseDecodeErrorPolicy(value string) (DecodeErrorPolicy, error) {
	switch DecodeErrorPolicy(value) {
	case ContinueOnDecodeError:
		return ContinueOnDecodeError, nil
	case StopOnDecodeError:
		return StopOnDecodeError, nil
	default:
		return "", NewInvalidDecodeErrorPolicy(value)
	}
}

type InvalidDecodeErrorPolicy struct {
	value string
}

func NewInvalidDecodeErrorPolicy(value string) InvalidDecodeErrorPolicy {
	return InvalidDecodeErrorPolicy{value: value}
}

func (i InvalidDecodeErrorPolicy) Error() string {
	if i.value == "" {
		return fmt.Sprintf("empty decode error policy, expected %q or %q", ContinueOnDecodeError, StopOnDecodeError)
	}
	return fmt.Sprintf("%s is not a valid decode error policy, expected %q or %q",
		i.value, ContinueOnDecodeError, StopOnDecodeError)
}

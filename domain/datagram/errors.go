package datagram

import (
	"fmt"
	"net/netip"
)

// DecodeError reports a payload that is not valid UTF-8.
type DecodeError struct {
	sender netip.AddrPort
	length int
	cause  error
}

func NewDecodeError(sender netip.AddrPort, length int, cause error) *DecodeError {
	return &DecodeError{
		sender: sender,
		length: length,
		cause:  cause,
	}
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %d byte datagram from %s: %s", e.length, e.sender, e.cause)
}

func (e DecodeError) Unwrap() error { return e.cause }

// Sender is the address the malformed datagram came from.
func (e DecodeError) Sender() netip.AddrPort { return e.sender }

// Length is the raw payload length in bytes.
func (e DecodeError) Length() int { return e.length }

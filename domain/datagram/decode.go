package datagram

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Decode returns payload as a string if it is valid UTF-8 and
// encoding.ErrInvalidUTF8 otherwise. The text is never altered.
func Decode(payload []byte) (string, error) {
	if _, _, err := transform.Bytes(encoding.UTF8Validator, payload); err != nil {
		return "", err
	}
	return string(payload), nil
}

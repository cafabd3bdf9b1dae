package datagram

import (
	"net/netip"
)

// MaxPayloadBytes is the receive buffer size. The OS drops whatever part of a
// larger datagram does not fit.
const MaxPayloadBytes = 1024

// Datagram is a single received UDP packet. It is only valid for the loop
// iteration that produced it: Payload aliases the listener's read buffer.
type Datagram struct {
	Payload []byte
	Sender  netip.AddrPort
	// Destination is the local address the packet was addressed to, when the
	// platform reports it.
	Destination netip.Addr
	// Truncated is set when the packet was longer than MaxPayloadBytes.
	Truncated bool
}

// Text decodes the payload as UTF-8.
func (d Datagram) Text() (string, error) {
	text, err := Decode(d.Payload)
	if err != nil {
		return "", NewDecodeError(d.Sender, len(d.Payload), err)
	}
	return text, nil
}

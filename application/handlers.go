package application

import (
	"net/netip"
	"udpreceiver/domain/datagram"
)

// Handlers fans listener events out to several handlers in order.
type Handlers []DatagramHandler

func (h Handlers) Listening(addr netip.AddrPort) {
	for _, handler := range h {
		handler.Listening(addr)
	}
}

func (h Handlers) Received(d datagram.Datagram, text string) {
	for _, handler := range h {
		handler.Received(d, text)
	}
}

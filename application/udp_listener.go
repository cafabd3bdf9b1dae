package application

import (
	"net"
	"net/netip"
	"udpreceiver/domain/datagram"
)

// UdpListenerConn is the part of *net.UDPConn the receive loop uses.
type UdpListenerConn interface {
	Close() error
	LocalAddr() net.Addr
	ReadMsgUDPAddrPort(b, oob []byte) (n, oobn, flags int, addr netip.AddrPort, err error)
}

// DatagramHandler consumes listener events. All calls come from the receive
// loop, one at a time and in socket order, so implementations must not block
// for long.
type DatagramHandler interface {
	Listening(addr netip.AddrPort)
	Received(d datagram.Datagram, text string)
}

// StatsRecorder counts what the receive loop sees.
type StatsRecorder interface {
	RecordDatagram(n int)
	RecordDecodeError()
	RecordTruncated()
}

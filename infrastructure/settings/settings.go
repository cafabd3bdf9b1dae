package settings

import (
	"net"
	"strconv"
	"udpreceiver/domain/listener"
)

// Settings describes the socket the listener binds and how it treats
// malformed payloads. It is immutable once the listener starts.
type Settings struct {
	Host              string                     `json:"Host"`
	Port              int                        `json:"Port"`
	DecodeErrorPolicy listener.DecodeErrorPolicy `json:"DecodeErrorPolicy"`
}

// StringAddr returns the host:port pair, bracketing IPv6 hosts.
func (s Settings) StringAddr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// UdpAddr resolves the address for an IPv4 UDP socket.
func (s Settings) UdpAddr() (*net.UDPAddr, error) {
	return net.ResolveUDPAddr("udp4", s.StringAddr())
}

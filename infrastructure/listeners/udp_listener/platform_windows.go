//go:build windows

package udp_listener

import (
	"errors"
	"udpreceiver/domain/listener"

	"golang.org/x/sys/windows"
)

func classifyBindError(err error) listener.BindReason {
	switch {
	case errors.Is(err, windows.WSAEADDRINUSE):
		return listener.AddressInUse
	case errors.Is(err, windows.WSAEACCES):
		return listener.PermissionDenied
	case errors.Is(err, windows.WSAEADDRNOTAVAIL):
		return listener.Unresolvable
	default:
		return listener.BindFailed
	}
}

// Windows reports oversized datagrams as a read error instead of a flag.
func truncated(int) bool {
	return false
}

//go:build !windows

package udp_listener

import (
	"errors"
	"udpreceiver/domain/listener"

	"golang.org/x/sys/unix"
)

func classifyBindError(err error) listener.BindReason {
	switch {
	case errors.Is(err, unix.EADDRINUSE):
		return listener.AddressInUse
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return listener.PermissionDenied
	case errors.Is(err, unix.EADDRNOTAVAIL):
		return listener.Unresolvable
	default:
		return listener.BindFailed
	}
}

func truncated(flags int) bool {
	return flags&unix.MSG_TRUNC != 0
}

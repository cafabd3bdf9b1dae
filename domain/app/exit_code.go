package app

import (
	"errors"
	"udpreceiver/domain/datagram"
	"udpreceiver/domain/listener"
)

const (
	ExitOK            = 0
	ExitUsage         = 1
	ExitBindFailed    = 2
	ExitReceiveFailed = 3
	ExitDecodeFailed  = 4
)

// ExitCode maps the error that ended the program to a process exit code.
// Anything not recognised is treated as a usage/configuration error.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var bindErr *listener.BindError
	if errors.As(err, &bindErr) {
		return ExitBindFailed
	}

	var receiveErr *listener.ReceiveError
	if errors.As(err, &receiveErr) {
		return ExitReceiveFailed
	}

	var decodeErr *datagram.DecodeError
	if errors.As(err, &decodeErr) {
		return ExitDecodeFailed
	}

	return ExitUsage
}

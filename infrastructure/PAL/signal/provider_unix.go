//go:build !windows

package signal

import (
	"os"
	"syscall"
)

type DefaultProvider struct {
}

func NewDefaultProvider() Provider {
	return &DefaultProvider{}
}

// ShutdownSignals is the set that stops the receiver. SIGHUP is included so a
// closed terminal stops a foreground listener instead of leaving it orphaned.
func (p *DefaultProvider) ShutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
}

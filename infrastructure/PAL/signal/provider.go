package signal

import "os"

// Provider abstracts platform-specific shutdown signals.
type Provider interface {
	ShutdownSignals() []os.Signal
}

package app

// UIMode describes how the application interacts with the user.
type UIMode int

const (
	UnknownUIMode UIMode = iota
	// TUI renders datagrams in the terminal dashboard.
	TUI
	// CLI prints datagrams line by line to stdout.
	CLI
)

func (m UIMode) String() string {
	switch m {
	case TUI:
		return "tui"
	case CLI:
		return "cli"
	default:
		return "unknown"
	}
}

package listener

// State is the listener lifecycle. There is no transition back to Unbound.
type State int

const (
	Unbound State = iota
	Listening
)

func (s State) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Listening:
		return "listening"
	default:
		return "unknown"
	}
}

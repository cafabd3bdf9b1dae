package receiver

import "os"

// Stat inspects the configuration file; tests replace it to simulate
// missing or unreadable files.
type Stat interface {
	Stat(name string) (os.FileInfo, error)
}

type osStat struct {
}

func NewOSStat() Stat {
	return &osStat{}
}

func (osStat) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

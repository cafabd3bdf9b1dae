package receiver

import "os"

// ConfigPathEnv names a configuration file when --config is not given.
const ConfigPathEnv = "UDPRECEIVER_CONFIG"

type Resolver interface {
	// Resolve returns the configuration file path, or "" when no file is used.
	Resolve() (string, error)
}

type resolver struct {
	path string
}

// NewResolver prefers an explicit path, then ConfigPathEnv.
func NewResolver(path string) Resolver {
	return &resolver{path: path}
}

func (r resolver) Resolve() (string, error) {
	if r.path != "" {
		return r.path, nil
	}
	return os.Getenv(ConfigPathEnv), nil
}

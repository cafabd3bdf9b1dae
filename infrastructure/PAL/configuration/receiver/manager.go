package receiver

import (
	"errors"
	"fmt"
	"os"
	"time"
)

type ConfigurationManager interface {
	// Configuration returns a copy the caller may modify.
	Configuration() (*Configuration, error)
	// Path is the backing file, or "" when only defaults are used.
	Path() string
	InvalidateCache()
}

type Manager struct {
	path   string
	reader Reader
	writer Writer
	stat   Stat
}

func NewManager(resolver Resolver, stat Stat) (ConfigurationManager, error) {
	path, pathErr := resolver.Resolve()
	if pathErr != nil {
		return nil, fmt.Errorf("failed to resolve configuration path: %w", pathErr)
	}

	return NewManagerWithReader(
		resolver,
		NewTTLReader(newDefaultReader(path, stat), time.Minute),
		stat,
	)
}

func NewManagerWithReader(
	resolver Resolver,
	reader Reader,
	stat Stat,
) (ConfigurationManager, error) {
	path, pathErr := resolver.Resolve()
	if pathErr != nil {
		return nil, fmt.Errorf("failed to resolve configuration path: %w", pathErr)
	}

	return &Manager{
		path:   path,
		writer: newDefaultWriter(path),
		reader: reader,
		stat:   stat,
	}, nil
}

func (c *Manager) Path() string {
	return c.path
}

func (c *Manager) Configuration() (*Configuration, error) {
	if c.path == "" {
		configuration := NewDefaultConfiguration()
		applyEnvOverrides(configuration)
		return configuration, nil
	}

	_, statErr := c.stat.Stat(c.path)
	if statErr != nil {
		if errors.Is(statErr, os.ErrNotExist) {
			configuration := NewDefaultConfiguration()
			writeErr := c.writer.Write(*configuration)
			if writeErr != nil {
				return nil, fmt.Errorf("could not write default configuration: %w", writeErr)
			}
		} else {
			return nil, statErr
		}
	}

	configuration, readErr := c.reader.read()
	if readErr != nil {
		return nil, readErr
	}

	clone := *configuration
	return &clone, nil
}

// InvalidateCache clears the cached configuration if the reader supports it.
func (c *Manager) InvalidateCache() {
	if ttlReader, ok := c.reader.(*TTLReader); ok {
		ttlReader.InvalidateCache()
	}
}

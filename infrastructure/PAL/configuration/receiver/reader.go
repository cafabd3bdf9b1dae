package receiver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

const (
	HostEnv = "UDPRECEIVER_HOST"
	PortEnv = "UDPRECEIVER_PORT"
)

type Reader interface {
	read() (*Configuration, error)
}

type defaultReader struct {
	path string
	stat Stat
}

func newDefaultReader(path string, stat Stat) *defaultReader {
	return &defaultReader{
		path: path,
		stat: stat,
	}
}

func (c *defaultReader) read() (*Configuration, error) {
	if _, statErr := c.stat.Stat(c.path); statErr != nil {
		if errors.Is(statErr, os.ErrNotExist) {
			return nil, fmt.Errorf("configuration file does not exist: %s", c.path)
		}

		return nil, fmt.Errorf("configuration file not found: %s", c.path)
	}

	fileBytes, readFileErr := os.ReadFile(c.path)
	if readFileErr != nil {
		return nil, fmt.Errorf("configuration file (%s) is unreadable: %s", c.path, readFileErr)
	}

	var configuration Configuration
	deserializationErr := json.Unmarshal(fileBytes, &configuration)
	if deserializationErr != nil {
		return nil, fmt.Errorf("configuration file (%s) is invalid: %s", c.path, deserializationErr)
	}

	applyEnvOverrides(&configuration)

	return configuration.EnsureDefaults(), nil
}

func applyEnvOverrides(conf *Configuration) {
	if host := os.Getenv(HostEnv); host != "" {
		conf.Listener.Host = host
	}

	if envPort := os.Getenv(PortEnv); envPort != "" {
		port, parseErr := strconv.Atoi(envPort)
		if parseErr == nil {
			conf.Listener.Port = port
		}
	}
}

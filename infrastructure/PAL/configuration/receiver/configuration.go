package receiver

import (
	"fmt"
	"net"
	"udpreceiver/domain/listener"
	"udpreceiver/infrastructure/settings"

	"github.com/rs/zerolog"
)

const (
	DefaultHost                = "127.0.0.1"
	DefaultPort                = 9877
	DefaultRelayHTTPAddress    = "127.0.0.1:3001"
	DefaultRelayDataFilePath   = "data.json"
	DefaultRelayFlushMs        = 1000
	DefaultRelayInactivityMs   = 60000
	DefaultLogLevel            = "info"
	DefaultDecodeErrorBehavior = listener.ContinueOnDecodeError
)

type Configuration struct {
	Listener settings.Settings        `json:"Listener"`
	Logging  settings.LoggingSettings `json:"Logging"`
	Relay    settings.RelaySettings   `json:"Relay"`
}

func NewDefaultConfiguration() *Configuration {
	configuration := &Configuration{}
	return configuration.EnsureDefaults()
}

// EnsureDefaults fills every unset field. An ephemeral port (0) can only be
// requested on the command line, which is applied after defaults.
func (c *Configuration) EnsureDefaults() *Configuration {
	if c.Listener.Host == "" {
		c.Listener.Host = DefaultHost
	}
	if c.Listener.Port == 0 {
		c.Listener.Port = DefaultPort
	}
	if c.Listener.DecodeErrorPolicy == "" {
		c.Listener.DecodeErrorPolicy = DefaultDecodeErrorBehavior
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = settings.ConsoleLogFormat
	}
	if c.Relay.HTTPAddress == "" {
		c.Relay.HTTPAddress = DefaultRelayHTTPAddress
	}
	if c.Relay.DataFilePath == "" {
		c.Relay.DataFilePath = DefaultRelayDataFilePath
	}
	if c.Relay.FlushIntervalMs == 0 {
		c.Relay.FlushIntervalMs = DefaultRelayFlushMs
	}
	if c.Relay.InactivityTimeoutMs == 0 {
		c.Relay.InactivityTimeoutMs = DefaultRelayInactivityMs
	}
	return c
}

func (c *Configuration) Validate() error {
	if c.Listener.Host == "" {
		return fmt.Errorf("invalid 'Listener.Host': host is empty")
	}
	if c.Listener.Port < 0 || c.Listener.Port > 65535 {
		return fmt.Errorf("invalid 'Listener.Port': invalid port %d: must be in 0..65535", c.Listener.Port)
	}
	if _, err := listener.ParseDecodeErrorPolicy(string(c.Listener.DecodeErrorPolicy)); err != nil {
		return fmt.Errorf("invalid 'Listener.DecodeErrorPolicy': %w", err)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid 'Logging.Level': %w", err)
	}
	switch c.Logging.Format {
	case settings.ConsoleLogFormat, settings.JSONLogFormat:
	default:
		return fmt.Errorf("invalid 'Logging.Format': %q, expected %q or %q",
			c.Logging.Format, settings.ConsoleLogFormat, settings.JSONLogFormat)
	}

	if !c.Relay.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Relay.HTTPAddress); err != nil {
		return fmt.Errorf("invalid 'Relay.HTTPAddress': %w", err)
	}
	if c.Relay.DataFilePath == "" {
		return fmt.Errorf("invalid 'Relay.DataFilePath': path is empty")
	}
	if c.Relay.FlushIntervalMs <= 0 {
		return fmt.Errorf("invalid 'Relay.FlushIntervalMs': %d: must be > 0", c.Relay.FlushIntervalMs)
	}
	if c.Relay.InactivityTimeoutMs <= 0 {
		return fmt.Errorf("invalid 'Relay.InactivityTimeoutMs': %d: must be > 0", c.Relay.InactivityTimeoutMs)
	}
	return nil
}

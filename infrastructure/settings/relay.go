package settings

import "time"

// RelaySettings configures the optional telemetry relay.
type RelaySettings struct {
	Enabled             bool   `json:"Enabled"`
	HTTPAddress         string `json:"HTTPAddress"`
	DataFilePath        string `json:"DataFilePath"`
	FlushIntervalMs     int    `json:"FlushIntervalMs"`
	InactivityTimeoutMs int    `json:"InactivityTimeoutMs"`
}

func (r RelaySettings) FlushInterval() time.Duration {
	return time.Duration(r.FlushIntervalMs) * time.Millisecond
}

func (r RelaySettings) InactivityTimeout() time.Duration {
	return time.Duration(r.InactivityTimeoutMs) * time.Millisecond
}

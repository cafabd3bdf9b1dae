package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMissingDroneID  = errors.New("drone_id is required")
	ErrMissingBootTime = errors.New("time_boot_ms is required and must be a number")
	ErrMissingPosition = errors.New("position with numeric lat and lon is required")
)

var jsonNull = []byte("null")

// Record is one drone telemetry sample. The received document is kept so
// fields other than the validated ones survive unchanged.
type Record struct {
	raw json.RawMessage

	DroneID    string
	TimeBootMs float64
	Lat        float64
	Lon        float64
}

type position struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// Parse decodes a telemetry record and checks its required fields.
func Parse(text string) (Record, error) {
	data := []byte(text)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Record{}, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if fields == nil {
		return Record{}, fmt.Errorf("failed to parse JSON: record must be an object")
	}

	record := Record{raw: json.RawMessage(data)}

	droneID, ok := fields["drone_id"]
	if !ok {
		return Record{}, ErrMissingDroneID
	}
	id, idErr := parseDroneID(droneID)
	if idErr != nil {
		return Record{}, idErr
	}
	record.DroneID = id

	bootTime, bootTimeErr := parseNumber(fields["time_boot_ms"])
	if bootTimeErr != nil {
		return Record{}, ErrMissingBootTime
	}
	record.TimeBootMs = bootTime

	posRaw, ok := fields["position"]
	if !ok {
		return Record{}, ErrMissingPosition
	}
	var pos position
	if err := json.Unmarshal(posRaw, &pos); err != nil || pos.Lat == nil || pos.Lon == nil {
		return Record{}, ErrMissingPosition
	}
	record.Lat = *pos.Lat
	record.Lon = *pos.Lon

	return record, nil
}

// parseNumber rejects absent and null values, which json.Unmarshal would
// silently leave at zero.
func parseNumber(value json.RawMessage) (float64, error) {
	var n *float64
	if err := json.Unmarshal(value, &n); err != nil {
		return 0, err
	}
	if n == nil {
		return 0, errors.New("null")
	}
	return *n, nil
}

func parseDroneID(value json.RawMessage) (string, error) {
	if bytes.Equal(bytes.TrimSpace(value), jsonNull) {
		return "", ErrMissingDroneID
	}
	var s string
	if err := json.Unmarshal(value, &s); err == nil && s != "" {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(value, &n); err == nil && n != "" {
		return n.String(), nil
	}
	return "", ErrMissingDroneID
}

// MarshalJSON writes the received document. Field order is kept; encoding/json
// compacts whitespace.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.raw) == 0 {
		return []byte("{}"), nil
	}
	return r.raw, nil
}

// UnmarshalJSON reads a record back from the data file without revalidating.
func (r *Record) UnmarshalJSON(data []byte) error {
	if !json.Valid(data) {
		return errors.New("invalid record JSON")
	}
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

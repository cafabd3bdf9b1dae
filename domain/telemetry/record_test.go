package telemetry

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	text := `{"drone_id":"d-1","time_boot_ms":1200,"position":{"lat":52.52,"lon":13.4,"alt":40},"battery":87}`

	record, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "d-1", record.DroneID)
	assert.Equal(t, 1200.0, record.TimeBootMs)
	assert.Equal(t, 52.52, record.Lat)
	assert.Equal(t, 13.4, record.Lon)

	out, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, text, string(out), "extra fields must be preserved")
}

func TestParse_NumericDroneID(t *testing.T) {
	record, err := Parse(`{"drone_id":7,"time_boot_ms":1,"position":{"lat":0,"lon":0}}`)
	require.NoError(t, err)
	assert.Equal(t, "7", record.DroneID)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{name: "missing_drone_id", text: `{"time_boot_ms":1,"position":{"lat":0,"lon":0}}`, want: ErrMissingDroneID},
		{name: "empty_drone_id", text: `{"drone_id":"","time_boot_ms":1,"position":{"lat":0,"lon":0}}`, want: ErrMissingDroneID},
		{name: "null_drone_id", text: `{"drone_id":null,"time_boot_ms":1,"position":{"lat":0,"lon":0}}`, want: ErrMissingDroneID},
		{name: "bool_drone_id", text: `{"drone_id":true,"time_boot_ms":1,"position":{"lat":0,"lon":0}}`, want: ErrMissingDroneID},
		{name: "missing_time", text: `{"drone_id":"a","position":{"lat":0,"lon":0}}`, want: ErrMissingBootTime},
		{name: "null_time", text: `{"drone_id":"a","time_boot_ms":null,"position":{"lat":0,"lon":0}}`, want: ErrMissingBootTime},
		{name: "null_lat", text: `{"drone_id":"a","time_boot_ms":1,"position":{"lat":null,"lon":0}}`, want: ErrMissingPosition},
		{name: "string_time", text: `{"drone_id":"a","time_boot_ms":"1","position":{"lat":0,"lon":0}}`, want: ErrMissingBootTime},
		{name: "missing_position", text: `{"drone_id":"a","time_boot_ms":1}`, want: ErrMissingPosition},
		{name: "missing_lon", text: `{"drone_id":"a","time_boot_ms":1,"position":{"lat":0}}`, want: ErrMissingPosition},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestParse_NotJSON(t *testing.T) {
	_, err := Parse("hello")
	assert.Error(t, err)

	_, err = Parse("null")
	assert.Error(t, err)

	_, err = Parse("[1,2]")
	assert.Error(t, err)
}

func TestRecord_UnmarshalJSON_RoundTrip(t *testing.T) {
	var records []Record
	require.NoError(t, json.Unmarshal([]byte(`[{"drone_id":"a","x":1}]`), &records))
	require.Len(t, records, 1)

	out, err := json.Marshal(records)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"drone_id":"a","x":1}]`, string(out))
}

func TestRecord_MarshalJSON_KeepsFieldOrder(t *testing.T) {
	record, err := Parse(`{"time_boot_ms":1,"drone_id":"a","position":{"lat":0,"lon":0},"z":[1, 2]}`)
	require.NoError(t, err)

	out, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Equal(t, `{"time_boot_ms":1,"drone_id":"a","position":{"lat":0,"lon":0},"z":[1,2]}`, string(out))
}

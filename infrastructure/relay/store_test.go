package relay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"udpreceiver/domain/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRecord(t *testing.T, text string) telemetry.Record {
	t.Helper()
	record, err := telemetry.Parse(text)
	require.NoError(t, err)
	return record
}

func readArray(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

const droneA = `{"drone_id":"a","time_boot_ms":10,"position":{"lat":1.5,"lon":2.5},"alt":30}`
const droneB = `{"drone_id":7,"time_boot_ms":20,"position":{"lat":3,"lon":4}}`

func TestFileStore_AppendCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	store := NewFileStore(path)

	require.NoError(t, store.Append([]telemetry.Record{mustRecord(t, droneA)}))
	require.NoError(t, store.Append([]telemetry.Record{mustRecord(t, droneB)}))

	got := readArray(t, path)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0]["drone_id"])
	assert.Equal(t, float64(30), got[0]["alt"], "extra fields are kept")
	assert.Equal(t, float64(7), got[1]["drone_id"])
}

func TestFileStore_NonArrayDocumentBecomesFirstElement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"legacy":true}`), 0644))
	store := NewFileStore(path)

	require.NoError(t, store.Append([]telemetry.Record{mustRecord(t, droneA)}))

	got := readArray(t, path)
	require.Len(t, got, 2)
	assert.Equal(t, true, got[0]["legacy"])
	assert.Equal(t, "a", got[1]["drone_id"])
}

func TestFileStore_BlankFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))
	store := NewFileStore(path)

	data, err := store.Read()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{`), 0644))
	store := NewFileStore(path)

	err := store.Append([]telemetry.Record{mustRecord(t, droneA)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewFileStore(path)
	require.NoError(t, store.Append([]telemetry.Record{mustRecord(t, droneA)}))

	require.NoError(t, store.Clear())

	data, err := store.Read()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestFileStore_ReadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	data, err := store.Read()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

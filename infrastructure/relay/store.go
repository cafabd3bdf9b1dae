package relay

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"udpreceiver/domain/telemetry"

	"github.com/pkg/errors"
)

// Store persists relayed telemetry.
type Store interface {
	Append(records []telemetry.Record) error
	Clear() error
	// Read returns the persisted document, always a JSON array.
	Read() ([]byte, error)
}

// FileStore keeps every record in a single JSON array file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Append(records []telemetry.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, loadErr := s.load()
	if loadErr != nil {
		return loadErr
	}

	for _, record := range records {
		data, marshalErr := json.Marshal(record)
		if marshalErr != nil {
			return errors.Wrapf(marshalErr, "failed to encode record from drone %s", record.DroneID)
		}
		existing = append(existing, data)
	}

	return s.write(existing)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write([]json.RawMessage{})
}

func (s *FileStore) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, loadErr := s.load()
	if loadErr != nil {
		return nil, loadErr
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return json.Marshal(records)
}

// load returns the stored elements. A missing or blank file is empty, a
// document that is not an array counts as a single element.
func (s *FileStore) load() ([]json.RawMessage, error) {
	data, readErr := os.ReadFile(s.path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return nil, nil
		}
		return nil, errors.Wrapf(readErr, "failed to read %s", s.path)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", s.path)
		}
		return records, nil
	}

	var single json.RawMessage
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", s.path)
	}
	return []json.RawMessage{single}, nil
}

func (s *FileStore) write(records []json.RawMessage) error {
	data, marshalErr := json.MarshalIndent(records, "", "  ")
	if marshalErr != nil {
		return errors.Wrap(marshalErr, "failed to encode data file")
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", s.path)
	}
	return nil
}

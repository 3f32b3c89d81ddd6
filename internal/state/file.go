package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
)

const recordVersion = 1

type record struct {
	Version     int       `json:"version"`
	RunID       string    `json:"run_id"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Completed   []string  `json:"completed"`
}

// FileStore is a Store backed by a JSON file.
type FileStore struct {
	path        string
	fingerprint string
	rec         record
	done        map[string]struct{}
	lock        *fileLock
	now         func() time.Time
	// readErr holds why the existing record could not be loaded. It is
	// cleared by Reset, which overwrites the record.
	readErr error
}

var _ Store = (*FileStore)(nil)

// OpenFile locks and loads the state file at path. A missing file is an empty
// store. An unreadable record does not fail the open: the store comes back
// empty, ReadErr reports the problem and only Reset makes it writable again.
// fingerprint identifies the graph the caller is about to run and is written
// with every record.
func OpenFile(path, fingerprint string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &StateStoreIOError{Op: "open", Path: path, Err: err}
	}

	lock, err := acquireLock(path + ".lock")
	if err != nil {
		return nil, &StateStoreIOError{Op: "lock", Path: path, Err: err}
	}

	s := &FileStore{
		path:        path,
		fingerprint: fingerprint,
		done:        make(map[string]struct{}),
		lock:        lock,
		now:         time.Now,
	}

	if err := readJSONStrict(path, &s.rec); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.readErr = &StateStoreIOError{Op: "read", Path: path, Err: err}
		}
		s.rec = record{}
	} else if s.rec.Version != recordVersion {
		s.readErr = &StateStoreIOError{Op: "read", Path: path, Err: fmt.Errorf("unsupported state version %d", s.rec.Version)}
		s.rec = record{}
	}

	for _, id := range s.rec.Completed {
		s.done[id] = struct{}{}
	}
	return s, nil
}

// ReadErr returns the StateStoreIOError that prevented the existing record
// from loading, or nil.
func (s *FileStore) ReadErr() error { return s.readErr }

// Path returns the state file location.
func (s *FileStore) Path() string { return s.path }

// RunID returns the id of the run recorded in the file, or "" when no run
// has been started.
func (s *FileStore) RunID() string { return s.rec.RunID }

// Completed returns the completed ids in completion order.
func (s *FileStore) Completed() []string { return slices.Clone(s.rec.Completed) }

// FingerprintMatches reports whether the recorded run was made against the
// same graph. A store with no recorded fingerprint matches anything.
func (s *FileStore) FingerprintMatches() bool {
	return s.rec.Fingerprint == "" || s.rec.Fingerprint == s.fingerprint
}

// IsDone implements Store.
func (s *FileStore) IsDone(id string) bool {
	_, ok := s.done[id]
	return ok
}

// MarkDone implements Store. The in-memory view only changes once the file
// has been replaced.
func (s *FileStore) MarkDone(id string) error {
	if s.readErr != nil {
		return s.readErr
	}
	if s.IsDone(id) {
		return nil
	}
	if s.rec.RunID == "" {
		s.begin()
	}

	next := s.rec
	next.Completed = append(slices.Clone(s.rec.Completed), id)
	next.Fingerprint = s.fingerprint
	next.UpdatedAt = s.now().UTC()

	if err := s.write(next); err != nil {
		return err
	}
	s.rec = next
	s.done[id] = struct{}{}
	return nil
}

// Reset implements Store. It starts a new run id and persists an empty record.
func (s *FileStore) Reset() error {
	prev := s.rec
	s.begin()
	if err := s.write(s.rec); err != nil {
		s.rec = prev
		return err
	}
	clear(s.done)
	s.readErr = nil
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	if err := s.lock.release(); err != nil {
		return &StateStoreIOError{Op: "unlock", Path: s.path, Err: err}
	}
	return nil
}

func (s *FileStore) begin() {
	now := s.now().UTC()
	s.rec = record{
		Version:     recordVersion,
		RunID:       uuid.NewString(),
		Fingerprint: s.fingerprint,
		StartedAt:   now,
		UpdatedAt:   now,
		Completed:   []string{},
	}
}

func (s *FileStore) write(rec record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return &StateStoreIOError{Op: "encode", Path: s.path, Err: err}
	}
	data = append(data, '\n')
	if err := writeFileAtomicDurable(s.path, data, 0o644); err != nil {
		return &StateStoreIOError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

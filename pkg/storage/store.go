package storage

import (
	"encoding/json"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	drifterrors "github.com/go-drift/bloc/pkg/errors"
)

// Store reads and writes JSON values in a Backend. Every operation reports
// success as a bool; failures are never returned as errors.
type Store struct {
	name    string
	id      uuid.UUID
	backend Backend

	mu  sync.Mutex
	err error
}

// NewStore creates a store named name over backend.
func NewStore(name string, backend Backend) *Store {
	return &Store{
		name:    name,
		id:      uuid.New(),
		backend: backend,
	}
}

// Name returns the store name used in log fields.
func (s *Store) Name() string {
	return s.name
}

// ID returns an identifier that is unique to this store instance.
func (s *Store) ID() uuid.UUID {
	return s.id
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Err returns the cause of the most recent operation, or nil if it
// succeeded. The error is a *errors.BlocError of kind KindStorage.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Get decodes the value stored under key into out, which must be a non-nil
// pointer. It returns false, leaving out unchanged, when the key is absent
// or the value cannot be decoded.
func (s *Store) Get(key string, out any) bool {
	raw, ok, err := s.backend.GetItem(key)
	if err != nil {
		return s.fail("storage.Get", key, err)
	}
	if !ok || raw == "" {
		s.succeed()
		return false
	}
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return s.fail("storage.Get", key, &json.InvalidUnmarshalError{Type: reflect.TypeOf(out)})
	}
	// Decode into a fresh value so a failed read leaves out untouched.
	decoded := reflect.New(target.Elem().Type())
	if err := json.Unmarshal([]byte(raw), decoded.Interface()); err != nil {
		return s.fail("storage.Get", key, err)
	}
	target.Elem().Set(decoded.Elem())
	return s.succeed()
}

// GetAs is Get returning the decoded value.
func GetAs[T any](s *Store, key string) (T, bool) {
	var value T
	if !s.Get(key, &value) {
		var zero T
		return zero, false
	}
	return value, true
}

// Set stores value under key as JSON.
func (s *Store) Set(key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		return s.fail("storage.Set", key, err)
	}
	if err := s.backend.SetItem(key, string(data)); err != nil {
		return s.fail("storage.Set", key, err)
	}
	return s.succeed()
}

// Remove deletes key. Removing an absent key succeeds.
func (s *Store) Remove(key string) bool {
	if err := s.backend.RemoveItem(key); err != nil {
		return s.fail("storage.Remove", key, err)
	}
	return s.succeed()
}

// Clear deletes every key.
func (s *Store) Clear() bool {
	if err := s.backend.Clear(); err != nil {
		return s.fail("storage.Clear", "", err)
	}
	return s.succeed()
}

func (s *Store) succeed() bool {
	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
	return true
}

func (s *Store) fail(op, key string, cause error) bool {
	err := &drifterrors.BlocError{
		Op:        op,
		Kind:      drifterrors.KindStorage,
		Err:       cause,
		Key:       key,
		Timestamp: time.Now(),
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"store": s.name,
		"op":    op,
		"key":   key,
	}).WithError(cause).Debug("storage operation failed")
	return false
}

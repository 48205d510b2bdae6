package storage

import (
	"errors"
	"maps"
	"sync"
)

var (
	// ErrQuotaExceeded is returned when a write would exceed the backend quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrStorageDisabled is returned by every operation on a disabled backend.
	ErrStorageDisabled = errors.New("storage is disabled")
)

// Backend is a string key/value store.
type Backend interface {
	// GetItem returns the value for key. The bool is false when the key is
	// not present.
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Clear() error
}

// MemoryBackend is an in-memory Backend with an optional size quota.
type MemoryBackend struct {
	mu       sync.RWMutex
	items    map[string]string
	quota    int
	used     int
	disabled bool
}

// NewMemoryBackend creates an empty backend. A positive quota limits the sum
// of key and value lengths in bytes; zero means unlimited.
func NewMemoryBackend(quota int) *MemoryBackend {
	return &MemoryBackend{
		items: make(map[string]string),
		quota: quota,
	}
}

// Disable makes every subsequent operation fail with ErrStorageDisabled
// until it is called again with false.
func (b *MemoryBackend) Disable(disabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disabled = disabled
}

// Len returns the number of stored keys.
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// Items returns a copy of the stored entries.
func (b *MemoryBackend) Items() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return maps.Clone(b.items)
}

func (b *MemoryBackend) GetItem(key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.disabled {
		return "", false, ErrStorageDisabled
	}
	value, ok := b.items[key]
	return value, ok, nil
}

func (b *MemoryBackend) SetItem(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disabled {
		return ErrStorageDisabled
	}
	used := b.used + len(key) + len(value)
	if old, ok := b.items[key]; ok {
		used -= len(key) + len(old)
	}
	if b.quota > 0 && used > b.quota {
		return ErrQuotaExceeded
	}
	b.items[key] = value
	b.used = used
	return nil
}

func (b *MemoryBackend) RemoveItem(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disabled {
		return ErrStorageDisabled
	}
	if old, ok := b.items[key]; ok {
		b.used -= len(key) + len(old)
		delete(b.items, key)
	}
	return nil
}

func (b *MemoryBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disabled {
		return ErrStorageDisabled
	}
	clear(b.items)
	b.used = 0
	return nil
}

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend is a Backend persisted as a single JSON object on disk. The
// file is loaded on first use and rewritten atomically after every change.
type FileBackend struct {
	path   string
	mu     sync.Mutex
	items  map[string]string
	loaded bool
}

// NewFileBackend returns a backend stored at path. The file is created on
// the first write.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the backing file path.
func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) GetItem(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.load(); err != nil {
		return "", false, err
	}
	value, ok := b.items[key]
	return value, ok, nil
}

func (b *FileBackend) SetItem(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.load(); err != nil {
		return err
	}
	old, existed := b.items[key]
	b.items[key] = value
	if err := b.save(); err != nil {
		if existed {
			b.items[key] = old
		} else {
			delete(b.items, key)
		}
		return err
	}
	return nil
}

func (b *FileBackend) RemoveItem(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.load(); err != nil {
		return err
	}
	old, ok := b.items[key]
	if !ok {
		return nil
	}
	delete(b.items, key)
	if err := b.save(); err != nil {
		b.items[key] = old
		return err
	}
	return nil
}

func (b *FileBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.load(); err != nil {
		return err
	}
	previous := b.items
	b.items = make(map[string]string)
	if err := b.save(); err != nil {
		b.items = previous
		return err
	}
	return nil
}

func (b *FileBackend) load() error {
	if b.loaded {
		return nil
	}
	items := make(map[string]string)
	data, err := os.ReadFile(b.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("read %s: %w", b.path, err)
	case len(data) > 0:
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("decode %s: %w", b.path, err)
		}
	}
	b.items = items
	b.loaded = true
	return nil
}

func (b *FileBackend) save() error {
	data, err := json.MarshalIndent(b.items, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", b.path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", b.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", b.path, err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("write %s: %w", b.path, err)
	}
	return nil
}

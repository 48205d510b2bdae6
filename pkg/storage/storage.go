package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Scope selects which key/value store an operation targets.
type Scope int

const (
	// ScopeSession is process-lifetime storage. It is the default scope.
	ScopeSession Scope = iota
	// ScopeLocal is storage that survives restarts once Open has been called.
	ScopeLocal
)

func (s Scope) String() string {
	switch s {
	case ScopeSession:
		return "session"
	case ScopeLocal:
		return "local"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// LocalFileName is the file Open creates under the storage directory.
const LocalFileName = "local.json"

var (
	scopesMu sync.RWMutex
	session  = NewStore("session", NewMemoryBackend(0))
	local    = NewStore("local", NewMemoryBackend(0))
)

// Options configures the package-level stores and cookie defaults.
type Options struct {
	// Dir is where local storage is persisted. Empty keeps it in memory.
	Dir string
	// Cookies are the defaults merged into every Auth cookie write.
	Cookies CookieOptions
}

// Open applies opts. With a Dir, the local scope is rebound to a file
// backend at Dir/local.json and the session scope is reset.
func Open(opts Options) error {
	localStore := NewStore("local", NewMemoryBackend(0))
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		localStore = NewStore("local", NewFileBackend(filepath.Join(opts.Dir, LocalFileName)))
	}

	scopesMu.Lock()
	session = NewStore("session", NewMemoryBackend(0))
	local = localStore
	scopesMu.Unlock()

	defaultCookies.SetDefaults(opts.Cookies)
	return nil
}

// Session returns the session-scoped store.
func Session() *Store {
	return For(ScopeSession)
}

// Local returns the local-scoped store.
func Local() *Store {
	return For(ScopeLocal)
}

// For returns the store for scope. Unknown scopes map to the session store.
func For(scope Scope) *Store {
	scopesMu.RLock()
	defer scopesMu.RUnlock()
	if scope == ScopeLocal {
		return local
	}
	return session
}

func scopeOf(scope []Scope) Scope {
	if len(scope) == 0 {
		return ScopeSession
	}
	return scope[0]
}

// GetStore decodes the JSON value under key into out. It returns false when
// the key is absent. The scope defaults to ScopeSession.
func GetStore(key string, out any, scope ...Scope) bool {
	return For(scopeOf(scope)).Get(key, out)
}

// SetStore stores value under key as JSON and reports success.
func SetStore(key string, value any, scope ...Scope) bool {
	return For(scopeOf(scope)).Set(key, value)
}

// RemoveStore deletes key and reports success.
func RemoveStore(key string, scope ...Scope) bool {
	return For(scopeOf(scope)).Remove(key)
}

// ClearStore deletes every key in the scope and reports success.
func ClearStore(scope ...Scope) bool {
	return For(scopeOf(scope)).Clear()
}

package storage

import (
	"net/http"
	"sync"
	"time"
)

// MemoryJar keeps cookies in memory with one entry per name. Writes with an
// expiry in the past delete the cookie; expired entries read as absent.
type MemoryJar struct {
	mu      sync.Mutex
	cookies map[string]*http.Cookie

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewMemoryJar returns an empty jar.
func NewMemoryJar() *MemoryJar {
	return &MemoryJar{cookies: make(map[string]*http.Cookie)}
}

func (j *MemoryJar) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

func (j *MemoryJar) Cookie(name string) (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	c, ok := j.cookies[name]
	if !ok {
		return "", false
	}
	if expired(c, j.now()) {
		delete(j.cookies, name)
		return "", false
	}
	return c.Value, true
}

func (j *MemoryJar) SetCookie(serialized string) {
	c, err := http.ParseSetCookie(serialized)
	if err != nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if expired(c, j.now()) {
		delete(j.cookies, c.Name)
		return
	}
	j.cookies[c.Name] = c
}

// Len returns the number of stored cookies, including expired ones not yet
// read.
func (j *MemoryJar) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.cookies)
}

// HTTPJar reads cookies from an incoming request and writes Set-Cookie
// headers to the response. Cookies set during the request are visible to
// later reads.
type HTTPJar struct {
	request *http.Request
	writer  http.ResponseWriter

	mu  sync.Mutex
	set map[string]*http.Cookie
}

// NewHTTPJar returns a jar bound to one request/response pair.
func NewHTTPJar(w http.ResponseWriter, r *http.Request) *HTTPJar {
	return &HTTPJar{
		request: r,
		writer:  w,
		set:     make(map[string]*http.Cookie),
	}
}

func (j *HTTPJar) Cookie(name string) (string, bool) {
	j.mu.Lock()
	c, ok := j.set[name]
	j.mu.Unlock()
	if ok {
		if expired(c, time.Now()) {
			return "", false
		}
		return c.Value, true
	}
	if j.request == nil {
		return "", false
	}
	rc, err := j.request.Cookie(name)
	if err != nil {
		return "", false
	}
	return rc.Value, true
}

func (j *HTTPJar) SetCookie(serialized string) {
	c, err := http.ParseSetCookie(serialized)
	if err != nil {
		return
	}
	j.mu.Lock()
	j.set[c.Name] = c
	j.mu.Unlock()
	j.writer.Header().Add("Set-Cookie", serialized)
}

func expired(c *http.Cookie, now time.Time) bool {
	if c.MaxAge < 0 {
		return true
	}
	return !c.Expires.IsZero() && !c.Expires.After(now)
}

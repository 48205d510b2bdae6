package storage

import (
	"maps"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"
)

// Expiry is a cookie lifetime given either in days from now or as an
// absolute time. The zero Expiry makes a session cookie.
type Expiry struct {
	days  float64
	at    time.Time
	isSet bool
}

// InDays expires a cookie the given number of days after it is written.
// Negative values expire it immediately.
func InDays(days float64) Expiry {
	return Expiry{days: days, isSet: true}
}

// At expires a cookie at t.
func At(t time.Time) Expiry {
	return Expiry{at: t, isSet: true}
}

// IsZero reports whether no expiry was given.
func (e Expiry) IsZero() bool {
	return !e.isSet
}

// Time resolves the expiry relative to now.
func (e Expiry) Time(now time.Time) time.Time {
	if !e.at.IsZero() {
		return e.at
	}
	days := max(min(e.days, maxExpiryDays), -maxExpiryDays)
	whole, frac := math.Modf(days)
	return now.AddDate(0, 0, int(whole)).Add(time.Duration(frac * float64(24*time.Hour)))
}

// maxExpiryDays keeps day counts well inside the four-digit years an
// Expires attribute can carry.
const maxExpiryDays = 2_000_000

// SameSite is the value of the SameSite cookie attribute.
type SameSite string

const (
	SameSiteLax    SameSite = "Lax"
	SameSiteStrict SameSite = "Strict"
	SameSiteNone   SameSite = "None"
)

// CookieOptions are the attributes written with a cookie.
type CookieOptions struct {
	Expires  Expiry
	Path     string
	Domain   string
	Secure   bool
	SameSite SameSite
	// Attributes are appended verbatim. An empty value writes the bare
	// attribute name.
	Attributes map[string]string
}

// merge returns o with empty fields filled from defaults.
func (o CookieOptions) merge(defaults CookieOptions) CookieOptions {
	if o.Expires.IsZero() {
		o.Expires = defaults.Expires
	}
	if o.Path == "" {
		o.Path = defaults.Path
	}
	if o.Domain == "" {
		o.Domain = defaults.Domain
	}
	if !o.Secure {
		o.Secure = defaults.Secure
	}
	if o.SameSite == "" {
		o.SameSite = defaults.SameSite
	}
	if len(defaults.Attributes) > 0 {
		attrs := maps.Clone(defaults.Attributes)
		maps.Copy(attrs, o.Attributes)
		o.Attributes = attrs
	}
	return o
}

// DefaultCookiePath is used when no path is configured.
const DefaultCookiePath = "/"

// CookieJar is where serialized cookies are written and read back.
type CookieJar interface {
	// Cookie returns the raw, still encoded value of the named cookie.
	Cookie(name string) (string, bool)
	// SetCookie applies a serialized cookie in Set-Cookie syntax.
	SetCookie(serialized string)
}

// Cookies reads and writes percent-encoded cookies through a jar.
type Cookies struct {
	jar CookieJar

	mu       sync.RWMutex
	defaults CookieOptions

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewCookies returns a cookie service over jar with Path "/" as default.
func NewCookies(jar CookieJar) *Cookies {
	return &Cookies{
		jar:      jar,
		defaults: CookieOptions{Path: DefaultCookiePath},
	}
}

// Jar returns the underlying jar.
func (c *Cookies) Jar() CookieJar {
	return c.jar
}

// SetDefaults replaces the options merged into every write. An empty Path
// falls back to "/".
func (c *Cookies) SetDefaults(defaults CookieOptions) {
	if defaults.Path == "" {
		defaults.Path = DefaultCookiePath
	}
	c.mu.Lock()
	c.defaults = defaults
	c.mu.Unlock()
}

// Defaults returns the options merged into every write.
func (c *Cookies) Defaults() CookieOptions {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaults
}

func (c *Cookies) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Get returns the decoded value of the named cookie.
func (c *Cookies) Get(name string) (string, bool) {
	raw, ok := c.jar.Cookie(encodeName(name))
	if !ok {
		return "", false
	}
	return decode(raw), true
}

// Set writes a cookie and returns its serialized form. An empty name writes
// nothing and returns "".
func (c *Cookies) Set(name, value string, opts ...CookieOptions) string {
	if name == "" {
		return ""
	}
	var o CookieOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	serialized := c.serialize(name, value, o.merge(c.Defaults()))
	c.jar.SetCookie(serialized)
	return serialized
}

// Remove expires the named cookie. The path and domain must match the ones
// it was written with. It always returns true.
func (c *Cookies) Remove(name string, opts ...CookieOptions) bool {
	var o CookieOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	o.Expires = InDays(-1)
	c.Set(name, "", o)
	return true
}

func (c *Cookies) serialize(name, value string, o CookieOptions) string {
	var b strings.Builder
	b.WriteString(encodeName(name))
	b.WriteByte('=')
	b.WriteString(encodeValue(value))
	if !o.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(o.Expires.Time(c.now()).UTC().Format(http.TimeFormat))
	}
	if o.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(o.Path)
	}
	if o.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(o.Domain)
	}
	if o.Secure {
		b.WriteString("; Secure")
	}
	if o.SameSite != "" {
		b.WriteString("; SameSite=")
		b.WriteString(string(o.SameSite))
	}
	for _, key := range slices.Sorted(maps.Keys(o.Attributes)) {
		b.WriteString("; ")
		b.WriteString(key)
		if v, _, _ := strings.Cut(o.Attributes[key], ";"); v != "" {
			b.WriteByte('=')
			b.WriteString(v)
		}
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

// encodeValue percent-encodes every byte outside the RFC 6265 cookie-octet
// set, plus '%' itself.
func encodeValue(s string) string {
	return escape(s, func(c byte) bool {
		return c == 0x21 ||
			(c >= 0x23 && c <= 0x2B && c != '%') ||
			(c >= 0x2D && c <= 0x3A) ||
			(c >= 0x3C && c <= 0x5B) ||
			(c >= 0x5D && c <= 0x7E)
	})
}

// encodeName percent-encodes every byte that is not an RFC 7230 token
// character, plus '%' itself.
func encodeName(s string) string {
	return escape(s, func(c byte) bool {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			return true
		}
		return strings.IndexByte("!#$&'*+-.^_`|~", c) >= 0
	})
}

func escape(s string, keep func(byte) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keep(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// decode reverses the percent-encoding. Malformed input is returned as is.
func decode(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

var defaultCookies = NewCookies(NewMemoryJar())

// DefaultCookies returns the service behind Auth, SetAuth and RemoveAuth.
func DefaultCookies() *Cookies {
	return defaultCookies
}

// Auth returns the decoded value of the named cookie.
func Auth(key string) (string, bool) {
	return defaultCookies.Get(key)
}

// SetAuth writes a cookie and returns its serialized form.
func SetAuth(key, value string, opts ...CookieOptions) string {
	return defaultCookies.Set(key, value, opts...)
}

// RemoveAuth expires the named cookie. It always returns true.
func RemoveAuth(key string, opts ...CookieOptions) bool {
	return defaultCookies.Remove(key, opts...)
}

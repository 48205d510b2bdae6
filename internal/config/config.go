// Package config loads the optional bloc.yaml file and resolves defaults for
// the demo server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/bloc/pkg/storage"
)

// FileName is the configuration file looked up in the project directory.
const FileName = "bloc.yaml"

// Config represents the optional bloc.yaml configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Storage StorageConfig `yaml:"storage"`
	Cookies CookieConfig  `yaml:"cookies"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	ID   string `yaml:"id,omitempty"`
}

// StorageConfig controls where local storage is persisted.
type StorageConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// CookieConfig holds defaults for cookies written by the server.
type CookieConfig struct {
	Path        string  `yaml:"path,omitempty"`
	Domain      string  `yaml:"domain,omitempty"`
	Secure      bool    `yaml:"secure,omitempty"`
	SameSite    string  `yaml:"same_site,omitempty"`
	ExpiresDays float64 `yaml:"expires_days,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// ServerConfig contains listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	AppID      string
	StorageDir string
	Cookies    storage.CookieOptions
	LogLevel   logrus.Level
	Addr       string
}

// StorageOptions converts the resolved values for storage.Open.
func (r *Resolved) StorageOptions() storage.Options {
	return storage.Options{
		Dir:     r.StorageDir,
		Cookies: r.Cookies,
	}
}

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

// LoadOptional reads bloc.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads bloc.yaml (if present) and resolves defaults. The module
// path of an enclosing go.mod, when there is one, seeds the app name and ID.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	appID := strings.TrimSpace(cfg.App.ID)
	if appID == "" {
		appID = defaultAppID(modulePath, appName)
	}
	if err := validateAppID(appID); err != nil {
		return nil, err
	}

	storageDir := strings.TrimSpace(cfg.Storage.Dir)
	switch {
	case storageDir == "":
		storageDir = filepath.Join(dir, ".bloc", appID)
	case !filepath.IsAbs(storageDir):
		storageDir = filepath.Join(dir, storageDir)
	}

	cookies, err := cookieOptions(cfg.Cookies)
	if err != nil {
		return nil, err
	}

	level := logrus.InfoLevel
	if name := strings.TrimSpace(cfg.Log.Level); name != "" {
		level, err = logrus.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
	}

	addr := strings.TrimSpace(cfg.Server.Addr)
	if addr == "" {
		addr = DefaultAddr
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		AppName:    appName,
		AppID:      appID,
		StorageDir: storageDir,
		Cookies:    cookies,
		LogLevel:   level,
		Addr:       addr,
	}, nil
}

// FindProjectRoot walks up from the current directory to the nearest
// directory holding bloc.yaml or go.mod. Without either it returns the
// current directory.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func cookieOptions(cfg CookieConfig) (storage.CookieOptions, error) {
	opts := storage.CookieOptions{
		Path:   strings.TrimSpace(cfg.Path),
		Domain: strings.TrimSpace(cfg.Domain),
		Secure: cfg.Secure,
	}
	switch strings.ToLower(strings.TrimSpace(cfg.SameSite)) {
	case "":
	case "lax":
		opts.SameSite = storage.SameSiteLax
	case "strict":
		opts.SameSite = storage.SameSiteStrict
	case "none":
		opts.SameSite = storage.SameSiteNone
		// Browsers reject SameSite=None without Secure.
		opts.Secure = true
	default:
		return opts, fmt.Errorf("cookies.same_site must be lax, strict or none (got %q)", cfg.SameSite)
	}
	if cfg.ExpiresDays < 0 {
		return opts, fmt.Errorf("cookies.expires_days cannot be negative (got %v)", cfg.ExpiresDays)
	}
	if cfg.ExpiresDays > 0 {
		opts.Expires = storage.InDays(cfg.ExpiresDays)
	}
	return opts, nil
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "bloc_app"
	}
	return base
}

func defaultAppID(modulePath, appName string) string {
	parts := strings.Split(modulePath, "/")
	if len(parts) < 2 || !strings.Contains(parts[0], ".") {
		return fmt.Sprintf("com.example.%s", sanitizeSegment(appName, false))
	}

	host := strings.Split(parts[0], ".")
	for i, j := 0, len(host)-1; i < j; i, j = i+1, j-1 {
		host[i], host[j] = host[j], host[i]
	}

	var pathParts []string
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		pathParts = append(pathParts, p)
	}

	segments := append(host, pathParts...)
	for i, segment := range segments {
		segments[i] = sanitizeSegment(segment, false)
	}

	return strings.Join(segments, ".")
}

func sanitizeSegment(segment string, allowLeadingDigit bool) string {
	segment = strings.TrimSpace(segment)

	var out []rune
	for _, r := range segment {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= '0' && r <= '9':
			out = append(out, r)
		case r == '_' || r == '-':
			out = append(out, '_')
		}
	}

	if len(out) == 0 || out[0] == '_' {
		out = append([]rune("app"), out...)
	}

	if !allowLeadingDigit && out[0] >= '0' && out[0] <= '9' {
		out = append([]rune{'a'}, out...)
	}

	return string(out)
}

func validateAppID(appID string) error {
	if !strings.Contains(appID, ".") {
		return fmt.Errorf("app.id must contain at least one '.' (got %q)", appID)
	}
	for _, segment := range strings.Split(appID, ".") {
		if segment == "" {
			return fmt.Errorf("app.id contains an empty segment (%q)", appID)
		}
		if segment[0] >= '0' && segment[0] <= '9' {
			return fmt.Errorf("app.id segments cannot start with a digit (%q)", appID)
		}
		if segment[0] == '_' {
			return fmt.Errorf("app.id segments cannot start with '_' (%q)", appID)
		}
		for _, r := range segment {
			if !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
				return fmt.Errorf("app.id contains invalid character %q in %q", r, appID)
			}
		}
	}
	return nil
}

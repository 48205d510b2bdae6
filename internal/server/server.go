// Package server exposes a counter Bloc over HTTP. Each response carries the
// text rendered by a BlocBuilder mounted in a headless widget tree.
package server

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"

	"github.com/go-drift/bloc/pkg/bloc"
	"github.com/go-drift/bloc/pkg/core"
	"github.com/go-drift/bloc/pkg/storage"
	"github.com/go-drift/bloc/pkg/widgets"
)

// Options configures a Server.
type Options struct {
	// AppName is shown in the rendered text.
	AppName string
	// Initial is the starting count.
	Initial int
	// Sessions stores per-session data. Defaults to storage.Session().
	Sessions *storage.Store
	// Cookies are the defaults for the session cookie.
	Cookies storage.CookieOptions
	// Logger defaults to logrus.StandardLogger().
	Logger *logrus.Logger
}

// CounterResponse is the body of every counter endpoint.
type CounterResponse struct {
	Count             int    `json:"count"`
	Rendered          string `json:"rendered"`
	Session           string `json:"session"`
	SessionIncrements int    `json:"session_increments"`
}

// ErrorResponse is returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server serves the counter API.
type Server struct {
	router         chi.Router
	counter        *bloc.Bloc[int]
	sessionStore   *storage.Store
	cookieDefaults storage.CookieOptions
	logger         *logrus.Logger

	// mu serializes bloc mutations with the build phase.
	mu    sync.Mutex
	owner *core.BuildOwner
	root  core.Element
}

// New builds the router and mounts the view tree.
func New(opts Options) *Server {
	s := &Server{
		counter:        bloc.New(opts.Initial),
		sessionStore:   opts.Sessions,
		cookieDefaults: opts.Cookies,
		logger:         opts.Logger,
		owner:          core.NewBuildOwner(),
	}
	if s.sessionStore == nil {
		s.sessionStore = storage.Session()
	}
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	appName := opts.AppName
	if appName == "" {
		appName = "counter"
	}

	s.root = core.MountRoot(widgets.BlocProvider{
		Providers: []widgets.ProviderWidget{
			appNameContext.Provide(appName, nil),
			widgets.BlocScope[int]{Bloc: s.counter},
		},
		Child: counterView{},
	}, s.owner)
	s.owner.FlushBuild()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(accessLog(s.logger))
	r.Use(s.sessions)
	r.Get("/counter", s.handleGet)
	r.Post("/counter/increment", s.handleIncrement)
	r.Post("/counter/reset", s.handleReset)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, &ErrorResponse{Error: "not found"})
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Counter returns the Bloc behind the API. Direct emits are rendered on
// the next request and must not run concurrently with requests.
func (s *Server) Counter() *bloc.Bloc[int] {
	return s.counter
}

// Rendered returns the text currently rendered by the view tree.
func (s *Server) Rendered() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner.FlushBuild()
	return renderedText(s.root)
}

// Close unmounts the view tree, releasing its Bloc subscription.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root != nil {
		s.root.Unmount()
		s.root = nil
	}
}

func sessionCountKey(id string) string {
	return "session:" + id + ":increments"
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, nil)
}

func (s *Server) handleIncrement(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	key := sessionCountKey(sess.id)
	n, _ := storage.GetAs[int](s.sessionStore, key)
	if !s.sessionStore.Set(key, n+1) {
		s.logger.WithError(s.sessionStore.Err()).Warn("could not record session increment")
	}
	s.respond(w, r, func(count int) int { return count + 1 })
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	s.sessionStore.Remove(sessionCountKey(sess.id))
	s.respond(w, r, func(int) int { return 0 })
}

// respond applies transform, if any, flushes the build and writes the
// rendered result.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, transform func(int) int) {
	s.mu.Lock()
	if s.root == nil {
		s.mu.Unlock()
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, &ErrorResponse{Error: "server closed"})
		return
	}
	if transform != nil {
		s.counter.Update(transform)
	}
	s.owner.FlushBuild()
	resp := &CounterResponse{
		Count:    s.counter.State(),
		Rendered: renderedText(s.root),
	}
	s.mu.Unlock()

	sess := sessionFrom(r)
	resp.Session = sess.id
	resp.SessionIncrements, _ = storage.GetAs[int](s.sessionStore, sessionCountKey(sess.id))
	render.JSON(w, r, resp)
}

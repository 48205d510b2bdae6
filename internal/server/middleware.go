package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/go-drift/bloc/pkg/storage"
)

// SessionCookie is the cookie carrying the session identifier.
const SessionCookie = "bloc_session"

type sessionKey struct{}

type session struct {
	id      string
	cookies *storage.Cookies
}

func accessLog(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debugf("server: -> %s %s", r.Method, r.URL)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			entry := logger.WithFields(logrus.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": status,
				"bytes":  ww.BytesWritten(),
			})
			if status/100 != 2 {
				entry.Warn("server: <-")
			} else {
				entry.Debug("server: <-")
			}
		})
	}
}

// sessions issues a session cookie when the request lacks a valid one.
func (s *Server) sessions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookies := storage.NewCookies(storage.NewHTTPJar(w, r))
		cookies.SetDefaults(s.cookieDefaults)

		id, ok := cookies.Get(SessionCookie)
		if _, err := uuid.Parse(id); !ok || err != nil {
			id = uuid.New().String()
			cookies.Set(SessionCookie, id)
			s.logger.WithField("session", id).Debug("session started")
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, &session{id: id, cookies: cookies})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *session {
	if s, ok := r.Context().Value(sessionKey{}).(*session); ok {
		return s
	}
	return &session{}
}

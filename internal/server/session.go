package server

import (
	"context"
	"net/http"

	"github.com/clipcart/clipcart/internal/httputil"
	"github.com/clipcart/clipcart/internal/session"
)

const sessionCookie = "clipcart_session"

type sessionKeyType struct{}

var sessionKey sessionKeyType

// withSession resolves the viewer's cookie to a live session, creating
// one on first contact or after an idle sweep. Handlers downstream can
// rely on a session being present.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(sessionCookie); err == nil {
			if sess, ok := s.sessions.Resolve(c.Value); ok {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
				return
			}
		}

		sess, token, err := s.sessions.Create()
		if err != nil {
			httputil.WriteError(w, http.StatusInternalServerError, "could not start a session")
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionKey).(*session.Session)
	return sess
}

package web

import (
	"net/http"

	"cylinderlog/internal/handover"
	"cylinderlog/internal/session"
)

// currentSession returns the session for the request's cookie, creating a
// new anonymous session (and setting the cookie) when none exists.
func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) *session.Session {
	if cookie, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
		if sess, ok := s.sessions.Get(cookie.Value); ok {
			return sess
		}
	}

	sess := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    sess.Token(),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// flashViolations queues one error notification per validation failure so
// the user sees every violation found, not just the first.
func flashViolations(sess *session.Session, violations []handover.Violation) {
	for _, v := range violations {
		sess.Flash(session.LevelError, v.Message)
	}
}

package web

import (
	"errors"
	"net/http"
	"strings"

	"cylinderlog/internal/logging"
	"cylinderlog/internal/session"
	"cylinderlog/internal/store"
)

// handleSignInPage renders the sign-in form.
func (s *Server) handleSignInPage(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	if sess.Authenticated() {
		http.Redirect(w, r, "/handover/entry", http.StatusSeeOther)
		return
	}
	s.render(w, r, "sign_in.html", s.newPageData(sess, "Sign In"))
}

// handleSignIn validates credentials by dialing the document store as the
// user and issuing a liveness check. The probe connection is closed before
// this handler returns; on success the credentials become the session's
// store identity.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	logger := logging.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		sess.Flash(session.LevelError, "Invalid sign-in form.")
		http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		sess.Flash(session.LevelError, "Username and password are required.")
		http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
		return
	}

	probe := s.newStore(store.StaticCredentials{Username: username, Password: password})
	if err := probe.Ping(r.Context()); err != nil {
		logger.Warn("sign-in failed", "username", username, "kind", store.KindOf(err).String(), "error", err)
		switch store.KindOf(err) {
		case store.KindUnavailable:
			sess.Flash(session.LevelError, "Sign-in failed: Could not connect to the database. Check network or DB status.")
		case store.KindUnauthorized:
			sess.Flash(session.LevelError, "Sign-in failed: Invalid username or password.")
		default:
			sess.Flash(session.LevelError, "An unexpected error occurred: "+storeErrorText(err))
		}
		http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
		return
	}

	sess.SignIn(username, password)
	logger.Info("signed in", "username", username)
	http.Redirect(w, r, "/handover/entry", http.StatusSeeOther)
}

// handleSignOut clears the identity and returns to sign-in.
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	username := sess.Username()
	sess.SignOut()
	if username != "" {
		logging.FromContext(r.Context()).Info("signed out", "username", username)
	}
	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
}

// forceSignOut is invoked when a protected store operation finds the
// identity can no longer authenticate: the operation has already been
// aborted, the session is cleared, and the user lands back on sign-in.
func (s *Server) forceSignOut(w http.ResponseWriter, r *http.Request, sess *session.Session, message string) {
	sess.Flash(session.LevelError, message)
	sess.SignOut()
	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
}

// storeErrorText returns the store's own failure text for display,
// without the internal operation prefix the classifier wraps around it.
func storeErrorText(err error) string {
	var se *store.Error
	if errors.As(err, &se) {
		return se.Err.Error()
	}
	return err.Error()
}

// storeAuthFailed reports whether a store error means the session identity
// is no longer usable (unreachable store or rejected credentials).
func storeAuthFailed(err error) bool {
	switch store.KindOf(err) {
	case store.KindUnavailable, store.KindUnauthorized:
		return true
	default:
		return false
	}
}

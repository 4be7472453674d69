package web

import (
	"errors"
	"fmt"
	"net/http"

	"cylinderlog/internal/logging"
	"cylinderlog/internal/session"
	"cylinderlog/internal/store"

	"github.com/go-chi/chi/v5"
)

// handleSubmissions fetches and renders all submitted entries, newest
// first. An empty store is an informational outcome, not an error.
func (s *Server) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	logger := logging.FromContext(r.Context())

	entries, err := s.newStore(sess).ListEntries(r.Context())
	if err != nil {
		logger.Error("list failed", "kind", store.KindOf(err).String(), "error", err)
		if storeAuthFailed(err) {
			s.forceSignOut(w, r, sess, "Database connection not available for fetching. Please sign in again.")
			return
		}
		sess.Flash(session.LevelError, "Error fetching submissions: "+storeErrorText(err))
		data := s.newPageData(sess, "Submissions")
		s.render(w, r, "submissions.html", data)
		return
	}

	if len(entries) == 0 {
		sess.Flash(session.LevelInfo, "No submissions found in the database.")
	} else {
		sess.Flash(session.LevelSuccess, fmt.Sprintf("Fetched %d submissions.", len(entries)))
	}

	data := s.newPageData(sess, "Submissions")
	data.Entries = buildEntryViews(entries)
	data.PendingDelete = sess.PendingDelete()
	s.render(w, r, "submissions.html", data)
}

// handleArmDelete records the delete target and re-renders the list with
// the confirmation dialog. No store call happens until confirmation.
func (s *Server) handleArmDelete(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)

	id := chi.URLParam(r, "id")
	if id == "" {
		sess.Flash(session.LevelError, "No submission selected for deletion.")
		http.Redirect(w, r, "/submissions", http.StatusSeeOther)
		return
	}

	sess.ArmDelete(id)
	http.Redirect(w, r, "/submissions", http.StatusSeeOther)
}

// handleCancelDelete discards the pending delete target before any store
// call is made.
func (s *Server) handleCancelDelete(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	sess.DisarmDelete()
	http.Redirect(w, r, "/submissions", http.StatusSeeOther)
}

// handleConfirmDelete deletes exactly the armed entry. Success is reported
// only when one document was removed; "not found" is distinct, and any
// store failure means the delete did not happen.
func (s *Server) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	logger := logging.FromContext(r.Context())

	id, ok := sess.TakePendingDelete()
	if !ok {
		sess.Flash(session.LevelError, "No submission selected for deletion.")
		http.Redirect(w, r, "/submissions", http.StatusSeeOther)
		return
	}

	err := s.newStore(sess).DeleteEntry(r.Context(), id)
	switch {
	case err == nil:
		logger.Info("submission deleted", "id", id)
		sess.Flash(session.LevelSuccess, "Submission deleted successfully.")
	case errors.Is(err, store.ErrNotFound):
		sess.Flash(session.LevelWarning, "Submission not found or already deleted.")
	case storeAuthFailed(err):
		logger.Error("delete failed", "id", id, "kind", store.KindOf(err).String(), "error", err)
		s.forceSignOut(w, r, sess, "Database connection error. Cannot delete.")
		return
	default:
		logger.Error("delete failed", "id", id, "error", err)
		sess.Flash(session.LevelError, "Database error during deletion: "+storeErrorText(err))
	}

	http.Redirect(w, r, "/submissions", http.StatusSeeOther)
}

package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cylinderlog/internal/handover"
	"cylinderlog/internal/logging"
	"cylinderlog/internal/session"
	"cylinderlog/internal/store"
)

// handleEntryPage1 renders the quantity page.
func (s *Server) handleEntryPage1(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	data := s.newPageData(sess, "Handover Entry")
	data.Form = sess.Form()
	s.render(w, r, "entry_page1.html", data)
}

// handleEntryPage1Submit validates the quantity page and, on success,
// reconciles the per-cylinder check lists to the derived slot counts
// before moving to the checks page. Reconciliation runs on every
// (re)confirmation of this page, so revised quantities never discard
// checks at retained indices.
func (s *Server) handleEntryPage1Submit(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)

	if err := r.ParseForm(); err != nil {
		sess.Flash(session.LevelError, "Invalid form submission.")
		http.Redirect(w, r, "/handover/entry", http.StatusSeeOther)
		return
	}

	facilityName := strings.TrimSpace(r.PostFormValue("facility"))
	personnel := strings.TrimSpace(r.PostFormValue("receiving_personnel"))
	qty2 := parseQty(r.PostFormValue("qty_2m"))
	qty4 := parseQty(r.PostFormValue("qty_4m"))
	qty7 := parseQty(r.PostFormValue("qty_7m"))

	sess.UpdateForm(func(f *session.FormState) {
		f.Facility = facilityName
		f.ReceivingPersonnel = personnel
		f.Qty2M = qty2
		f.Qty4M = qty4
		f.Qty7M = qty7
	})

	if facilityName != "" && !s.facilities.Contains(facilityName) {
		sess.Flash(session.LevelError, "Unknown facility selected.")
		http.Redirect(w, r, "/handover/entry", http.StatusSeeOther)
		return
	}

	violations := handover.ValidatePage1(handover.Quantities{
		Facility: facilityName,
		Qty2M:    qty2,
		Qty4M:    qty4,
		Qty7M:    qty7,
	})
	if len(violations) > 0 {
		flashViolations(sess, violations)
		http.Redirect(w, r, "/handover/entry", http.StatusSeeOther)
		return
	}

	sess.UpdateForm(func(f *session.FormState) {
		for _, size := range handover.Sizes {
			target := handover.SlotsFor(qtyFor(f, size))
			f.SetChecks(size, handover.Reconcile(f.Checks(size), target))
		}
	})

	http.Redirect(w, r, "/handover/checks", http.StatusSeeOther)
}

// handleEntryPage2 renders the per-cylinder checks page.
func (s *Server) handleEntryPage2(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	form := sess.Form()

	if len(form.Checks2M)+len(form.Checks4M)+len(form.Checks7M) == 0 {
		// Quantities were never confirmed; there is nothing to check yet.
		http.Redirect(w, r, "/handover/entry", http.StatusSeeOther)
		return
	}

	data := s.newPageData(sess, "Cylinder Checks")
	data.Form = form
	data.SlotGroups = buildSlotGroups(form)
	s.render(w, r, "entry_page2.html", data)
}

// handleEntryPage2Submit binds the check fields into the session and then
// either navigates back (action=previous, nothing discarded) or validates
// and submits the completed entry to the store.
func (s *Server) handleEntryPage2Submit(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)

	if err := r.ParseForm(); err != nil {
		sess.Flash(session.LevelError, "Invalid form submission.")
		http.Redirect(w, r, "/handover/checks", http.StatusSeeOther)
		return
	}

	bindErrors := bindCheckFields(sess, r)

	if r.PostFormValue("action") == "previous" {
		// Backward navigation keeps entered data and does not reconcile.
		http.Redirect(w, r, "/handover/entry", http.StatusSeeOther)
		return
	}

	violations := append(bindErrors, handover.ValidateSubmission(entryFromForm(sess))...)
	if len(violations) > 0 {
		flashViolations(sess, violations)
		http.Redirect(w, r, "/handover/checks", http.StatusSeeOther)
		return
	}

	s.submitEntry(w, r, sess)
}

// submitEntry stamps and persists the completed entry as one document.
func (s *Server) submitEntry(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	logger := logging.FromContext(r.Context())

	entry := entryFromForm(sess)
	entry.SubmittedBy = sess.Username()
	if entry.SubmittedBy == "" {
		entry.SubmittedBy = "Unknown"
	}
	entry.BMTInCharge = sess.BMTInCharge()
	entry.SubmissionTimestamp = time.Now().UTC().Format(time.RFC3339)

	id, err := s.newStore(sess).InsertEntry(r.Context(), entry)
	if err != nil {
		logger.Error("insert failed", "kind", store.KindOf(err).String(), "error", err)
		if storeAuthFailed(err) {
			s.forceSignOut(w, r, sess, "Database connection error. Please sign in again.")
			return
		}
		// Form state stays untouched so the user can retry.
		sess.Flash(session.LevelError, "Database operation failed: "+storeErrorText(err))
		http.Redirect(w, r, "/handover/checks", http.StatusSeeOther)
		return
	}

	logger.Info("handover entry submitted",
		"id", id,
		"facility", entry.Facility,
		"total_qty", entry.TotalQty(),
	)
	sess.ResetForm()
	sess.Flash(session.LevelSuccess, "Handover entry submitted successfully!")
	http.Redirect(w, r, "/handover/entry", http.StatusSeeOther)
}

// bindCheckFields copies the posted per-slot inputs into the session form.
// Unparsable non-empty values are reported and the field left unset.
func bindCheckFields(sess *session.Session, r *http.Request) []handover.Violation {
	var violations []handover.Violation

	sess.UpdateForm(func(f *session.FormState) {
		for _, size := range handover.Sizes {
			checks := f.Checks(size)
			for i := range checks {
				idVal := strings.TrimSpace(r.PostFormValue(fieldName("cylinder_id", size, i)))
				if idVal == "" {
					checks[i].CylinderID = nil
				} else {
					checks[i].CylinderID = &idVal
				}

				purityRaw := strings.TrimSpace(r.PostFormValue(fieldName("purity", size, i)))
				if purityRaw == "" {
					checks[i].Purity = nil
				} else if v, err := strconv.ParseFloat(purityRaw, 64); err == nil {
					checks[i].Purity = &v
				} else {
					checks[i].Purity = nil
					violations = append(violations, handover.Violation{
						Field:   fieldName("purity", size, i),
						Message: fmt.Sprintf("Invalid input for purity at %s cylinder %d.", size.Label(), i+1),
					})
				}

				pressureRaw := strings.TrimSpace(r.PostFormValue(fieldName("pressure", size, i)))
				if pressureRaw == "" {
					checks[i].Pressure = nil
				} else if v, err := strconv.Atoi(pressureRaw); err == nil {
					checks[i].Pressure = &v
				} else {
					checks[i].Pressure = nil
					violations = append(violations, handover.Violation{
						Field:   fieldName("pressure", size, i),
						Message: fmt.Sprintf("Invalid input for pressure at %s cylinder %d.", size.Label(), i+1),
					})
				}
			}
		}
	})

	return violations
}

// entryFromForm builds an unstamped entry from the session's form state.
func entryFromForm(sess *session.Session) *handover.Entry {
	form := sess.Form()
	var personnel *string
	if form.ReceivingPersonnel != "" {
		personnel = &form.ReceivingPersonnel
	}
	return &handover.Entry{
		Facility:           form.Facility,
		ReceivingPersonnel: personnel,
		Qty2M:              form.Qty2M,
		Qty4M:              form.Qty4M,
		Qty7M:              form.Qty7M,
		Checks2M:           form.Checks2M,
		Checks4M:           form.Checks4M,
		Checks7M:           form.Checks7M,
	}
}

// parseQty parses a raw quantity input; non-numeric text counts as zero.
func parseQty(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func qtyFor(f *session.FormState, size handover.Size) int {
	switch size {
	case handover.Size2M:
		return f.Qty2M
	case handover.Size4M:
		return f.Qty4M
	default:
		return f.Qty7M
	}
}

// fieldName builds the input name for one check field, e.g. "purity_2m_0".
func fieldName(field string, size handover.Size, index int) string {
	return fmt.Sprintf("%s_%s_%d", field, size, index)
}

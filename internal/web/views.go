package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"cylinderlog/internal/handover"
	"cylinderlog/internal/logging"
	"cylinderlog/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageTemplates maps a page file to its parsed layout+page template set.
var pageTemplates = parseTemplates()

func parseTemplates() map[string]*template.Template {
	pages := []string{"sign_in.html", "entry_page1.html", "entry_page2.html", "submissions.html"}
	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		out[page] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+page))
	}
	return out
}

// pageData carries everything the templates need. Page-specific fields are
// left zero for pages that do not use them.
type pageData struct {
	Title         string
	Authenticated bool
	Username      string
	BMTInCharge   string
	Flashes       []session.Flash

	Facilities    []string
	Form          session.FormState
	SlotGroups    []slotGroupView
	Entries       []entryView
	PendingDelete string
}

// newPageData builds the common page fields and drains the session's
// flash queue.
func (s *Server) newPageData(sess *session.Session, title string) *pageData {
	return &pageData{
		Title:         title,
		Authenticated: sess.Authenticated(),
		Username:      sess.Username(),
		BMTInCharge:   sess.BMTInCharge(),
		Flashes:       sess.PopFlashes(),
		Facilities:    s.facilities.Names(),
	}
}

// render executes the page inside the shared layout. Output is buffered
// so a template failure can still produce a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page string, data *pageData) {
	tmpl, ok := pageTemplates[page]
	if !ok {
		logging.FromContext(r.Context()).Error("unknown template", "template", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "template", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// slotView is one per-cylinder check form on the checks page.
type slotView struct {
	Size       string
	Label      string
	Index      int
	Number     int
	CylinderID string
	Purity     string
	Pressure   string
}

// slotGroupView is one size's block of check forms.
type slotGroupView struct {
	Size  string
	Label string
	Qty   int
	Slots []slotView
}

// buildSlotGroups derives the checks-page view model from the form state.
// Sizes with no slots are omitted entirely.
func buildSlotGroups(form session.FormState) []slotGroupView {
	var groups []slotGroupView
	for _, size := range handover.Sizes {
		checks := form.Checks(size)
		if len(checks) == 0 {
			continue
		}
		g := slotGroupView{
			Size:  string(size),
			Label: size.Label(),
			Qty:   qtyFor(&form, size),
		}
		for i, c := range checks {
			g.Slots = append(g.Slots, slotView{
				Size:       string(size),
				Label:      size.Label(),
				Index:      i,
				Number:     i + 1,
				CylinderID: strOrEmpty(c.CylinderID),
				Purity:     floatOrEmpty(c.Purity),
				Pressure:   intOrEmpty(c.Pressure),
			})
		}
		groups = append(groups, g)
	}
	return groups
}

// entryCheckView is one stored check on the submissions page.
type entryCheckView struct {
	Number     int
	CylinderID string
	Purity     string
	Pressure   string
}

// entryGroupView is one size's stored checks.
type entryGroupView struct {
	Label  string
	Checks []entryCheckView
}

// entryView is one stored submission on the submissions page.
type entryView struct {
	ID                 string
	Facility           string
	BMTInCharge        string
	ReceivingPersonnel string
	Qty2M              int
	Qty4M              int
	Qty7M              int
	Total              int
	SubmittedBy        string
	SubmittedAt        string
	Groups             []entryGroupView
}

func buildEntryViews(entries []handover.Entry) []entryView {
	out := make([]entryView, len(entries))
	for i := range entries {
		out[i] = buildEntryView(&entries[i])
	}
	return out
}

func buildEntryView(e *handover.Entry) entryView {
	v := entryView{
		ID:                 e.ID,
		Facility:           e.Facility,
		BMTInCharge:        e.BMTInCharge,
		ReceivingPersonnel: "N/A",
		Qty2M:              e.Qty2M,
		Qty4M:              e.Qty4M,
		Qty7M:              e.Qty7M,
		Total:              e.TotalQty(),
		SubmittedBy:        e.SubmittedBy,
		SubmittedAt:        formatTimestamp(e.SubmissionTimestamp),
	}
	if e.ReceivingPersonnel != nil && *e.ReceivingPersonnel != "" {
		v.ReceivingPersonnel = *e.ReceivingPersonnel
	}
	for _, size := range handover.Sizes {
		checks := e.Checks(size)
		if len(checks) == 0 {
			continue
		}
		g := entryGroupView{Label: size.Label()}
		for j, c := range checks {
			g.Checks = append(g.Checks, entryCheckView{
				Number:     j + 1,
				CylinderID: strOrDefault(c.CylinderID, "N/A"),
				Purity:     orDefault(floatOrEmpty(c.Purity), "N/A"),
				Pressure:   orDefault(intOrEmpty(c.Pressure), "N/A"),
			})
		}
		v.Groups = append(v.Groups, g)
	}
	return v
}

// formatTimestamp renders a stored ISO-8601 timestamp for display,
// falling back to the raw string when it does not parse.
func formatTimestamp(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Format("2006-01-02 15:04 UTC")
	}
	return ts
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func strOrDefault(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func floatOrEmpty(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func intOrEmpty(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

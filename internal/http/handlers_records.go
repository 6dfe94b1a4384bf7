package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"budgetboard/internal/core"
	"budgetboard/internal/session"
	"budgetboard/internal/store"
)

// recordRow is a record formatted for the table templates.
type recordRow struct {
	ID           int64
	Project      string
	Title        string
	Description  string
	Date         string
	Exact        string
	Estimated    string
	Conservative string
	WorstCase    string
	Priority     int
	Status       string
}

type recordsView struct {
	Rows      []recordRow
	StoreDown bool
}

type dashboardPage struct {
	User     string
	Projects []string
	Notice   string
	Checked  *recordRow
	Records  recordsView
	Query    url.Values
}

var noticeText = map[string]string{
	"created":   "Record saved.",
	"status":    "Status updated.",
	"checked":   "Record staged for deletion. Confirm below.",
	"deleted":   "Record deleted.",
	"exported":  "Export queued.",
	"not_found": "That record no longer exists.",
	"no_staged": "Nothing staged for deletion. Check a record first.",
}

func rowFor(r core.Record) recordRow {
	return recordRow{
		ID:           r.ID,
		Project:      r.Project,
		Title:        r.Title,
		Description:  r.Description,
		Date:         r.Date.String(),
		Exact:        moneyCell(r.Exact),
		Estimated:    moneyCell(r.Estimated),
		Conservative: moneyCell(r.Conservative),
		WorstCase:    moneyCell(r.WorstCase),
		Priority:     r.Priority,
		Status:       string(r.Status),
	}
}

func moneyCell(m *core.Money) string {
	if m == nil {
		return ""
	}
	return core.FormatCents(m.Cents)
}

func rowsFor(records []core.Record) []recordRow {
	rows := make([]recordRow, len(records))
	for i, r := range records {
		rows[i] = rowFor(r)
	}
	return rows
}

// recordsFromQuery applies the query's filter and sort to the snapshot.
func (s *Server) recordsFromQuery(r *http.Request) recordsView {
	records, live := s.loadRecords(r.Context())
	filtered := core.FilterRecords(records, parseFilter(r.URL.Query()))
	sorted := core.SortRecords(filtered, core.ParseSortKey(r.URL.Query().Get("sort")))
	return recordsView{Rows: rowsFor(sorted), StoreDown: !live}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	page := dashboardPage{
		User:     sess.User,
		Projects: s.projects,
		Notice:   noticeText[r.URL.Query().Get("notice")],
		Records:  s.recordsFromQuery(r),
		Query:    r.URL.Query(),
	}

	if sess.CheckedRecordID != 0 {
		if checked, err := s.store.GetByID(r.Context(), sess.CheckedRecordID); err == nil {
			row := rowFor(checked)
			page.Checked = &row
		}
	}

	s.render(w, r, "index.html", page)
}

func (s *Server) handleRecordsPartial(w http.ResponseWriter, r *http.Request, _ *session.Session) {
	s.render(w, r, "records.html", s.recordsFromQuery(r))
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	record, err := parseRecordForm(r.Form)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if !slices.Contains(s.projects, record.Project) {
		http.Error(w, "unknown project", http.StatusUnprocessableEntity)
		return
	}

	id, err := s.records.Create(r.Context(), record)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		slog.ErrorContext(r.Context(), "Record creation failed", "error", err)
		http.Error(w, "could not save record", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(r.Context(), "Record created",
		"record_id", id, "project", record.Project, "user", sess.User)
	s.invalidateSnapshot()
	http.Redirect(w, r, "/?notice=created", http.StatusSeeOther)
}

func (s *Server) handleRecordStatus(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	id, err := parseRecordID(r.Form)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	status, err := core.ParseStatus(r.Form.Get("status"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := s.records.SetStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Redirect(w, r, "/?notice=not_found", http.StatusSeeOther)
			return
		}
		slog.ErrorContext(r.Context(), "Status update failed", "record_id", id, "error", err)
		http.Error(w, "could not update status", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(r.Context(), "Record status changed",
		"record_id", id, "status", status, "user", sess.User)
	s.invalidateSnapshot()
	http.Redirect(w, r, "/?notice=status", http.StatusSeeOther)
}

// handleCheckRecord stages a record for deletion; the delete handler
// only acts on the staged id.
func (s *Server) handleCheckRecord(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	id, err := parseRecordID(r.Form)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if _, err := s.store.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Redirect(w, r, "/?notice=not_found", http.StatusSeeOther)
			return
		}
		slog.ErrorContext(r.Context(), "Record lookup failed", "record_id", id, "error", err)
		http.Error(w, "could not look up record", http.StatusInternalServerError)
		return
	}

	s.sessions.CheckRecord(sess.Token, id)
	http.Redirect(w, r, "/?notice=checked", http.StatusSeeOther)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id, staged := s.sessions.TakeCheckedRecord(sess.Token)
	if !staged {
		http.Redirect(w, r, "/?notice=no_staged", http.StatusSeeOther)
		return
	}

	if err := s.records.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Redirect(w, r, "/?notice=not_found", http.StatusSeeOther)
			return
		}
		slog.ErrorContext(r.Context(), "Record deletion failed", "record_id", id, "error", err)
		http.Error(w, "could not delete record", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(r.Context(), "Record deleted", "record_id", id, "user", sess.User)
	s.invalidateSnapshot()
	http.Redirect(w, r, "/?notice=deleted", http.StatusSeeOther)
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrInvalidAmount, core.ErrEmptyTitle, core.ErrEmptyProject,
		core.ErrInvalidPriority, core.ErrInvalidStatus, core.ErrInvalidDate,
		core.ErrAmountRequired, core.ErrAmountConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

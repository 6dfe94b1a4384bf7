package http

import (
	"log/slog"
	"net/http"
	"sort"

	"budgetboard/internal/core"
	"budgetboard/internal/export"
	"budgetboard/internal/session"
)

type overviewView struct {
	Rows      []core.OverviewRow
	StoreDown bool
}

// insightRow pairs a project's aggregates for the chosen field.
type insightRow struct {
	Project     string
	CompleteSum int64
	Share       float64
	Rank        int
	Wari        float64
}

// rankedRecord is one record in the ranked listing for a field.
type rankedRecord struct {
	ID       int64
	Project  string
	Title    string
	Complete int64
}

type insightsView struct {
	Field     core.Field
	Fields    []core.Field
	Rows      []insightRow
	Ranked    []rankedRecord
	Risk      []core.RiskPoint
	StoreDown bool
}

func (s *Server) handleOverviewPartial(w http.ResponseWriter, r *http.Request, _ *session.Session) {
	records, live := s.loadRecords(r.Context())
	s.render(w, r, "overview.html", overviewView{
		Rows:      core.BuildOverview(records),
		StoreDown: !live,
	})
}

func (s *Server) handleInsightsPartial(w http.ResponseWriter, r *http.Request, _ *session.Session) {
	field, err := core.ParseField(r.URL.Query().Get("field"))
	if err != nil {
		field = core.FieldWorstCase
	}

	records, live := s.loadRecords(r.Context())
	s.render(w, r, "insights.html", buildInsights(records, field, !live))
}

func buildInsights(records []core.Record, field core.Field, storeDown bool) insightsView {
	sums := core.CompleteSumByProject(records, field)
	shares := core.Shares(sums)
	ranks := core.DenseRank(sums)
	wari := core.WariByProject(records)

	projects := make([]string, 0, len(sums))
	for project := range sums {
		projects = append(projects, project)
	}
	sort.Slice(projects, func(i, j int) bool {
		if ranks[projects[i]] != ranks[projects[j]] {
			return ranks[projects[i]] < ranks[projects[j]]
		}
		return projects[i] < projects[j]
	})

	rows := make([]insightRow, len(projects))
	for i, project := range projects {
		rows[i] = insightRow{
			Project:     project,
			CompleteSum: sums[project],
			Share:       shares[project],
			Rank:        ranks[project],
			Wari:        wari[project],
		}
	}

	ordered := core.OrderByRank(records, field)
	ranked := make([]rankedRecord, len(ordered))
	for i, r := range ordered {
		ranked[i] = rankedRecord{
			ID:       r.ID,
			Project:  r.Project,
			Title:    r.Title,
			Complete: r.CompleteAmount(field),
		}
	}

	return insightsView{
		Field:     field,
		Fields:    append([]core.Field{core.FieldExact}, core.EstimateFields()...),
		Rows:      rows,
		Ranked:    ranked,
		Risk:      core.RiskProfile(records),
		StoreDown: storeDown,
	}
}

func (s *Server) handleOverviewCSV(w http.ResponseWriter, r *http.Request, _ *session.Session) {
	records, _ := s.loadRecords(r.Context())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="overview.csv"`)
	if err := export.WriteOverviewCSV(w, core.BuildOverview(records)); err != nil {
		slog.ErrorContext(r.Context(), "Overview CSV export failed", "error", err)
	}
}

func (s *Server) handleRecordsCSV(w http.ResponseWriter, r *http.Request, _ *session.Session) {
	records, _ := s.loadRecords(r.Context())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="records.csv"`)
	if err := export.WriteRecordsCSV(w, records); err != nil {
		slog.ErrorContext(r.Context(), "Records CSV export failed", "error", err)
	}
}

func (s *Server) handleSheetsExport(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := s.records.RequestExport(r.Context(), sess.User); err != nil {
		slog.ErrorContext(r.Context(), "Sheets export request failed", "user", sess.User, "error", err)
		http.Error(w, "export queue unavailable", http.StatusBadGateway)
		return
	}

	slog.InfoContext(r.Context(), "Sheets export requested", "user", sess.User)
	http.Redirect(w, r, "/?notice=exported", http.StatusSeeOther)
}

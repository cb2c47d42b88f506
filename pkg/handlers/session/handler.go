package session

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fin-tools/expense-atlas/pkg/models/api"
	"github.com/fin-tools/expense-atlas/pkg/models/domain"
	"github.com/fin-tools/expense-atlas/pkg/services/ingest"
	"github.com/fin-tools/expense-atlas/pkg/services/report"
	"github.com/fin-tools/expense-atlas/pkg/services/session"
	"github.com/fin-tools/expense-atlas/pkg/store/artifact"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type Handler struct {
	session   *session.Session
	artifacts *artifact.FS
}

func NewHandler(sess *session.Session, artifacts *artifact.FS) *Handler {
	return &Handler{session: sess, artifacts: artifacts}
}

// LoadTable accepts an expense table in the request body, as CSV or as a
// JSON array of column-labeled rows, and replaces the session table with
// its normalized rows.
func (h *Handler) LoadTable(w http.ResponseWriter, r *http.Request) {
	body := io.LimitReader(r.Body, maxUploadBytes)

	var records []ingest.Record
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err = json.NewDecoder(body).Decode(&records)
	} else {
		records, err = ingest.ReadCSV(body)
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	h.loadRecords(w, r, records)
}

// LoadSample replaces the session table with generated sample data.
func (h *Handler) LoadSample(w http.ResponseWriter, r *http.Request) {
	req := api.SampleTableRequest{Rows: 100, Seed: 42}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
	}
	if req.Rows <= 0 {
		req.Rows = 100
	}
	h.loadRecords(w, r, ingest.SampleTable(req.Rows, req.Seed))
}

func (h *Handler) loadRecords(w http.ResponseWriter, r *http.Request, records []ingest.Record) {
	diag, err := h.session.LoadTable(r.Context(), records)
	if err != nil {
		var serr *domain.SchemaError
		if errors.As(err, &serr) {
			writeError(w, r, http.StatusUnprocessableEntity, err)
			return
		}
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	resp := api.LoadTableResponse{
		Rows:     diag.RowsOut,
		Dropped:  diag.Dropped,
		Warnings: diag.Warnings,
	}
	if notice := h.session.Notice(); notice != nil {
		resp.Notice = notice.Reason
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// GetBudgets returns the configured per-category limits.
func (h *Handler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	budgets := h.session.Budgets()
	resp := make(map[string]string, len(budgets))
	for name, limit := range budgets {
		resp[name] = limit.StringFixed(2)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// UpdateBudgets replaces limits for the categories named in the body and
// leaves all other categories untouched.
func (h *Handler) UpdateBudgets(w http.ResponseWriter, r *http.Request) {
	var req map[string]float64
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	update := make(domain.Budgets, len(req))
	for name, limit := range req {
		update[name] = decimal.NewFromFloat(limit)
	}
	h.session.UpdateBudgets(update)

	statuses := h.session.BudgetStatus()
	writeJSON(w, r, http.StatusOK, api.FromDomainBudgetStatus(statuses))
}

// Query answers a free-text question about the loaded table.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req api.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, r, http.StatusBadRequest, errors.New("query text is required"))
		return
	}

	result := h.session.Query(req.Query)
	writeJSON(w, r, http.StatusOK, api.QueryResponse{
		Rows:    api.FromDomainTransactions(result.Rows),
		Budget:  api.FromDomainBudgetStatus(result.Budget),
		Message: result.Message,
	})
}

// BuildReport runs the full analysis over the current table and returns
// the report, including references to any generated artifacts.
func (h *Handler) BuildReport(w http.ResponseWriter, r *http.Request) {
	var req api.ReportRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
	}

	cfg := report.DefaultConfig()
	if req.SkipCharts {
		cfg.Trend = false
		cfg.Breakdown = false
		cfg.Anomalies = false
	}
	if req.SkipDocument {
		cfg.Document = false
	}

	rep, err := h.session.BuildReport(r.Context(), cfg)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, r, http.StatusOK, api.FromDomainReport(rep))
}

// GetArtifact streams a stored chart or document back to the client.
func (h *Handler) GetArtifact(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")
	name := chi.URLParam(r, "name")

	file, err := h.artifacts.Open(reportID, name)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err)
		return
	}
	defer file.Close()

	switch {
	case strings.HasSuffix(name, ".png"):
		w.Header().Set("Content-Type", "image/png")
	case strings.HasSuffix(name, ".pdf"):
		w.Header().Set("Content-Type", "application/pdf")
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
	}

	if _, err := io.Copy(w, file); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("report_id", reportID).
			Str("artifact", name).
			Msg("failed to stream artifact")
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	zerolog.Ctx(r.Context()).Warn().
		Err(err).
		Int("status", status).
		Msg("request failed")
	writeJSON(w, r, status, api.Error{Error: err.Error()})
}

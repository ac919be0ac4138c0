package http

import (
	"net/http"
	"time"

	"financeiro/internal/domain/report"
	"financeiro/internal/shared/middleware"
)

type ReportHandler struct {
	reports *report.Service
}

func NewReportHandler(reports *report.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type MonthSummaryRequest struct {
	Mes int `json:"mes"`
	Ano int `json:"ano"`
}

type YearReportRequest struct {
	Ano int `json:"ano"`
}

type YearsResponse struct {
	Anos []int `json:"anos"`
}

// HandleMonthSummary returns the full report of one calendar month
func (h *ReportHandler) HandleMonthSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req MonthSummaryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	summary, err := h.reports.SummarizeMonth(r.Context(), userID, req.Ano, time.Month(req.Mes))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// HandleYearReport returns the month-by-month summary of one year, with
// inactive months omitted
func (h *ReportHandler) HandleYearReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req YearReportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	seq, err := h.reports.SummarizeYear(r.Context(), userID, req.Ano)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	months := make([]report.MonthSummary, 0, 12)
	for m := range seq {
		months = append(months, m)
	}

	respondJSON(w, http.StatusOK, months)
}

// HandleYears returns every year the user has activity in
func (h *ReportHandler) HandleYears(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	years, err := h.reports.Years(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, YearsResponse{Anos: years})
}

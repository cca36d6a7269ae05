package http

import (
	"fmt"
	"net/http"
	"strconv"

	"sorting-analytics/internal/queries"
)

type totalsHandler struct {
	queryService queries.QueryService
}

func NewTotalsHandler(queryService queries.QueryService) AppHttpHandler {
	return &totalsHandler{queryService: queryService}
}

// Handle processes GET /api/stats/totals requests.
func (h *totalsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	totals, err := h.queryService.Totals(r.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, totals)
}

type dailyStatsHandler struct {
	queryService queries.QueryService
}

func NewDailyStatsHandler(queryService queries.QueryService) AppHttpHandler {
	return &dailyStatsHandler{queryService: queryService}
}

// Handle processes GET /api/stats/daily?days= requests.
func (h *dailyStatsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	days := queries.DefaultDailyWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return errInvalidQueryParam(fmt.Sprintf("days must be a positive integer, got %q", raw))
		}
		days = parsed
	}

	stats, err := h.queryService.DailyStats(r.Context(), days)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, stats)
}

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"sorting-analytics/internal/queries"
)

type recentEventsHandler struct {
	queryService queries.QueryService
}

func NewRecentEventsHandler(queryService queries.QueryService) AppHttpHandler {
	return &recentEventsHandler{queryService: queryService}
}

// Handle processes GET /api/events/recent requests. Optional filters:
// item_type, confidence (minimum), limit.
func (h *recentEventsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	query := queries.EventQuery{
		ItemType: r.URL.Query().Get("item_type"),
	}

	if raw := r.URL.Query().Get("confidence"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errInvalidQueryParam(fmt.Sprintf("confidence must be a number, got %q", raw))
		}
		query.MinConfidence = &parsed
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return errInvalidQueryParam(fmt.Sprintf("limit must be a positive integer, got %q", raw))
		}
		query.Limit = parsed
	}

	events, err := h.queryService.RecentEvents(r.Context(), query)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, events)
}

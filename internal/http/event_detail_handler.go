package http

import (
	"net/http"

	"sorting-analytics/internal/queries"

	"github.com/go-chi/chi/v5"
)

type eventDetailHandler struct {
	queryService queries.QueryService
}

func NewEventDetailHandler(queryService queries.QueryService) AppHttpHandler {
	return &eventDetailHandler{queryService: queryService}
}

// Handle processes GET /api/events/{eventID} requests. An unknown ID maps to
// a 404.
func (h *eventDetailHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	event, err := h.queryService.Event(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, event)
}

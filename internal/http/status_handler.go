package http

import (
	"net/http"
	"time"

	"sorting-analytics/internal/stores"
)

// StatusResponse is the liveness payload of GET /status.
type StatusResponse struct {
	Status    string `json:"status"`
	Database  bool   `json:"database"`
	Timestamp string `json:"timestamp"`
}

type statusHandler struct {
	store stores.TelemetryStore
}

func NewStatusHandler(store stores.TelemetryStore) AppHttpHandler {
	return &statusHandler{store: store}
}

// Handle processes GET /status requests.
func (h *statusHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, StatusResponse{
		Status:    "online",
		Database:  h.store.Ping(r.Context()) == nil,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

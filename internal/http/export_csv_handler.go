package http

import (
	"bytes"
	"net/http"

	"sorting-analytics/internal/queries"
)

type exportCSVHandler struct {
	queryService queries.QueryService
}

func NewExportCSVHandler(queryService queries.QueryService) AppHttpHandler {
	return &exportCSVHandler{queryService: queryService}
}

// Handle processes GET /api/export/csv requests. The export is buffered so a
// mid-export failure can still produce a clean error response instead of a
// truncated download.
func (h *exportCSVHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	var buf bytes.Buffer
	if err := h.queryService.ExportStatsCSV(r.Context(), &buf); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=waste_sorting_stats.csv`)
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}

package http

import (
	"fmt"
	"net/http"

	"sorting-analytics/internal/ingestors"
	"sorting-analytics/internal/queries"
	"sorting-analytics/internal/shared/loggers"
	"sorting-analytics/internal/shared/metrics"
	"sorting-analytics/internal/stores"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	validator ingestors.BatchValidator,
	processor ingestors.BatchProcessor,
	queryService queries.QueryService,
	store stores.TelemetryStore,
	httpLogger loggers.Logger,
) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// The device uploader expects a JSON body even on a wrong-method request,
	// not chi's empty plain-text 405.
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSON(w, http.StatusMethodNotAllowed, UploadResponse{
			Success: false,
			Error:   fmt.Sprintf("invalid request method %s", r.Method),
		})
	})

	// Initialize handlers
	uploadHandler := NewUploadHandler(validator, processor)
	totalsHandler := NewTotalsHandler(queryService)
	dailyStatsHandler := NewDailyStatsHandler(queryService)
	recentEventsHandler := NewRecentEventsHandler(queryService)
	eventDetailHandler := NewEventDetailHandler(queryService)
	exportCSVHandler := NewExportCSVHandler(queryService)
	statusHandler := NewStatusHandler(store)

	// Routes
	router.Post("/api/upload", errorHandlingAdapter(uploadHandler))
	router.Get("/api/stats/totals", errorHandlingAdapter(totalsHandler))
	router.Get("/api/stats/daily", errorHandlingAdapter(dailyStatsHandler))
	router.Get("/api/events/recent", errorHandlingAdapter(recentEventsHandler))
	router.Get("/api/events/{eventID}", errorHandlingAdapter(eventDetailHandler))
	router.Get("/api/export/csv", errorHandlingAdapter(exportCSVHandler))
	router.Get("/status", errorHandlingAdapter(statusHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}

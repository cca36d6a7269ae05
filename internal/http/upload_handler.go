package http

import (
	"fmt"
	"net/http"

	"sorting-analytics/internal/ingestors"
	"sorting-analytics/internal/shared/loggers"
	"sorting-analytics/internal/shared/svcerrors"
)

// UploadResponse is the device-facing contract of POST /api/upload. The
// embedded uploader on the sorting device predates this service and expects
// exactly this shape, so it is kept separate from the generic ErrorResponse
// used by the dashboard endpoints.
type UploadResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
	JSONGenerated *bool  `json:"json_generated,omitempty"`
}

type uploadHandler struct {
	validator ingestors.BatchValidator
	processor ingestors.BatchProcessor
}

func NewUploadHandler(validator ingestors.BatchValidator, processor ingestors.BatchProcessor) AppHttpHandler {
	return &uploadHandler{
		validator: validator,
		processor: processor,
	}
}

// Handle processes POST /api/upload requests. Credential and envelope
// failures never reach the processor; a committed batch with a failed
// snapshot refresh still reports success with json_generated=false.
func (h *uploadHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	batch, err := h.validator.Validate(r.Body)
	if err != nil {
		return h.writeFailure(w, r, err)
	}

	result, err := h.processor.Process(r.Context(), batch)
	if err != nil {
		return h.writeFailure(w, r, err)
	}

	message := fmt.Sprintf("Processed %d events and %d statistics records",
		result.EventsAccepted, result.StatsAccepted)
	if skipped := result.EventsSkipped + result.StatsSkipped; skipped > 0 {
		message += fmt.Sprintf(", skipped %d incomplete records", skipped)
	}

	return writeJSON(w, http.StatusOK, UploadResponse{
		Success:       true,
		Message:       message,
		JSONGenerated: &result.SnapshotsRefreshed,
	})
}

// writeFailure renders a failed upload in the device contract shape while
// still recording the service error for middleware metrics and logging.
func (h *uploadHandler) writeFailure(w http.ResponseWriter, r *http.Request, err error) error {
	svcErr, ok := svcerrors.AsServiceError(err)
	if !ok {
		svcErr = svcerrors.NewInternalErrorUndefined(err)
	}

	if svcErr.IsInternalError() {
		loggers.Ctx(r.Context()).Error().
			Err(svcErr.Cause).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Msg("upload failed")
	}

	if appWriter, ok := w.(*appResponseWriter); ok {
		appWriter.SetServiceError(svcErr)
	}

	return writeJSON(w, svcErr.HttpStatusCode, UploadResponse{
		Success: false,
		Error:   svcErr.Message,
	})
}

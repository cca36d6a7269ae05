package queries

import (
	"fmt"

	"sorting-analytics/internal/shared/svcerrors"
)

const (
	codeEventNotFound = "QRY_1000"

	codeInternalStoreFailed  = "QRY_9000"
	codeInternalExportFailed = "QRY_9001"
)

// errEventNotFound returns an error for an event ID with no stored event.
func errEventNotFound(id string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeEventNotFound, fmt.Sprintf("event %q not found", id))
}

// errInternalStoreFailed returns an error when a read against the store fails.
func errInternalStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStoreFailed, fmt.Errorf("telemetryStoreFailed: %w", cause))
}

// errInternalExportFailed returns an error when writing the CSV export fails.
func errInternalExportFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalExportFailed, fmt.Errorf("csvExportFailed: %w", cause))
}

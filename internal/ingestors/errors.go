package ingestors

import (
	"fmt"

	"sorting-analytics/internal/shared/svcerrors"
)

const (
	codeMalformedRequest = "ING_1000"
	codeUnauthorized     = "ING_1001"

	codeInternalStoreFailed = "ING_9000"
)

// errMalformedRequest returns an error for a bad batch envelope.
func errMalformedRequest(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeMalformedRequest, msg, cause)
}

// errUnauthorized returns an error for a missing or mismatched API key.
func errUnauthorized() *svcerrors.ServiceError {
	return svcerrors.NewUnauthorizedError(codeUnauthorized, "invalid API key", nil)
}

// errInternalStoreFailed returns an error when the batch transaction fails.
// The client sees a generic message; the cause is carried for logging.
func errInternalStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStoreFailed, fmt.Errorf("telemetryStoreFailed: %w", cause))
}

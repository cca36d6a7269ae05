package http

import (
	"sorting-analytics/internal/shared/svcerrors"
)

const codeInvalidQueryParam = "HTTP_1000"

// errInvalidQueryParam returns an error for an unparsable query parameter.
func errInvalidQueryParam(msg string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidQueryParam, msg, nil)
}

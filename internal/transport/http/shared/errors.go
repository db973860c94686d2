package shared

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"pulse/internal/domain/employees"
	"pulse/internal/domain/feedback"
	"pulse/internal/transport/http/api"
)

// WriteError maps a service error onto the response envelope. Anything it does
// not recognise is logged and reported as a 500.
func WriteError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error, requestID string) {
	var verr *feedback.ValidationError
	switch {
	case errors.As(err, &verr):
		FailValidation(w, requestID, []ValidationIssue{{Field: verr.Field, Reason: verr.Reason}})
	case errors.Is(err, feedback.ErrDuplicateSubmission):
		api.Fail(w, http.StatusConflict, "duplicate_submission", err.Error(), requestID)
	case errors.Is(err, feedback.ErrUpstreamUnavailable), errors.Is(err, employees.ErrUpstreamUnavailable):
		log.WithField("requestId", requestID).WithError(err).Warn("upstream unavailable")
		api.Fail(w, http.StatusServiceUnavailable, "upstream_unavailable", "data store unavailable, retry later", requestID)
	default:
		log.WithFields(logrus.Fields{"requestId": requestID, "path": r.URL.Path}).WithError(err).Error("request failed")
		api.Fail(w, http.StatusInternalServerError, "internal_error", "unexpected error", requestID)
	}
}

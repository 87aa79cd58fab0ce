package handler

import (
	"context"
	"errors"

	"buildboard-api/internal/service"
	"buildboard-api/pkg/apierror"
)

// toAPIError maps board errors onto API errors. Unknown errors pass through
// and are rendered as 500 by response.Error.
func toAPIError(err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]apierror.FieldError, len(verr.Fields))
		for i, f := range verr.Fields {
			details[i] = apierror.FieldError{Field: f.Field, Message: f.Message}
		}
		return apierror.ValidationError("Please fill in all required fields", details...)
	case errors.Is(err, service.ErrItemNotFound):
		return apierror.NotFound("Article number not found")
	case errors.Is(err, service.ErrIllegalTransition), errors.Is(err, service.ErrFlagLocked):
		return apierror.Conflict(err.Error())
	case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidFlag):
		return apierror.BadRequest(err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apierror.ServiceUnavailable("Lookup did not complete")
	}
	return err
}

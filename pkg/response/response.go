package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-employee-service/pkg/validation"
)

// Exception kinds reported in the error body.
const (
	ExceptionNotFound        = "NotFound"
	ExceptionIllegalArgument = "IllegalArgument"
	ExceptionValidation      = "ValidationFailed"
	ExceptionMalformedBody   = "MalformedBody"
	ExceptionInternal        = "Internal"
	ExceptionRateLimited     = "RateLimited"
	ExceptionUnavailable     = "Unavailable"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	HTTPStatus  int                     `json:"httpStatus"`
	Exception   string                  `json:"exception"`
	Message     string                  `json:"message,omitempty"`
	FieldErrors []validation.FieldError `json:"fieldErrors,omitempty"`
}

func Error(status int, exception, message string) ErrorResponse {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return ErrorResponse{HTTPStatus: status, Exception: exception, Message: message}
}

func Validation(fieldErrors []validation.FieldError) ErrorResponse {
	return ErrorResponse{
		HTTPStatus:  http.StatusBadRequest,
		Exception:   ExceptionValidation,
		FieldErrors: fieldErrors,
	}
}

// Abort writes resp and stops the handler chain.
func Abort(c *gin.Context, resp ErrorResponse) {
	c.AbortWithStatusJSON(resp.HTTPStatus, resp)
}

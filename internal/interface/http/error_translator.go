package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-employee-service/internal/application"
	"github.com/oksasatya/go-employee-service/pkg/response"
)

// translate maps a service error to its HTTP body. Unknown errors become
// a bare 500 and are only logged.
func translate(err error) response.ErrorResponse {
	switch {
	case errors.Is(err, application.ErrEmployeeNotFound):
		return response.Error(http.StatusNotFound, response.ExceptionNotFound, err.Error())
	case errors.Is(err, application.ErrEmailExists):
		return response.Error(http.StatusBadRequest, response.ExceptionIllegalArgument, err.Error())
	case errors.Is(err, application.ErrInvalidArgument):
		return response.Error(http.StatusBadRequest, response.ExceptionIllegalArgument, err.Error())
	default:
		return response.Error(http.StatusInternalServerError, response.ExceptionInternal, "")
	}
}

func (h *EmployeeHandler) fail(c *gin.Context, err error) {
	resp := translate(err)
	if resp.HTTPStatus >= http.StatusInternalServerError {
		h.Logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).WithError(err).Error("request failed")
	}
	response.Abort(c, resp)
}

// Recovery turns panics into the generic 500 body.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"panic":      recovered,
		}).Error("panic recovered")
		response.Abort(c, response.Error(http.StatusInternalServerError, response.ExceptionInternal, ""))
	})
}

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-employee-service/internal/application"
	"github.com/oksasatya/go-employee-service/internal/infrastructure/search"
	"github.com/oksasatya/go-employee-service/pkg/response"
	"github.com/oksasatya/go-employee-service/pkg/validation"
)

// EmployeeService is what the handler needs from the application layer.
type EmployeeService interface {
	FindAll(ctx context.Context) ([]application.EmployeeDTO, error)
	Get(ctx context.Context, id uuid.UUID) (application.EmployeeDTO, error)
	Create(ctx context.Context, dto application.EmployeeDTO) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, dto application.EmployeeDTO) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EmployeeSearcher queries the search projection.
type EmployeeSearcher interface {
	Search(ctx context.Context, q string, size int) ([]search.Document, error)
}

type EmployeeHandler struct {
	Svc      EmployeeService
	Searcher EmployeeSearcher
	Logger   *logrus.Logger
}

func NewEmployeeHandler(svc EmployeeService, searcher EmployeeSearcher, logger *logrus.Logger) *EmployeeHandler {
	return &EmployeeHandler{Svc: svc, Searcher: searcher, Logger: logger}
}

type idResponse struct {
	UUID uuid.UUID `json:"uuid"`
}

func (h *EmployeeHandler) List(c *gin.Context) {
	list, err := h.Svc.FindAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	dto, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	dto, ok := h.bind(c)
	if !ok {
		return
	}
	id, err := h.Svc.Create(c.Request.Context(), dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, idResponse{UUID: id})
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	dto, ok := h.bind(c)
	if !ok {
		return
	}
	id, err := h.Svc.Update(c.Request.Context(), id, dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, idResponse{UUID: id})
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Search answers GET /employees/search?q=&size= from the search index.
func (h *EmployeeHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Abort(c, response.Error(http.StatusBadRequest, response.ExceptionIllegalArgument, "query parameter q is required"))
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	docs, err := h.Searcher.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).WithField("q", q).Error("employee search failed")
		response.Abort(c, response.Error(http.StatusServiceUnavailable, response.ExceptionUnavailable, "search unavailable"))
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *EmployeeHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("uuid")
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Abort(c, response.Error(http.StatusBadRequest, response.ExceptionIllegalArgument, "invalid employee id: "+raw))
		return uuid.Nil, false
	}
	return id, true
}

// bind decodes and validates the payload. An undecodable body is answered
// with 500 MalformedBody, a body that breaks field rules with 400.
func (h *EmployeeHandler) bind(c *gin.Context) (application.EmployeeDTO, bool) {
	var dto application.EmployeeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Warn("malformed request body")
		response.Abort(c, response.Error(http.StatusInternalServerError, response.ExceptionMalformedBody, "malformed JSON request body"))
		return dto, false
	}
	if fieldErrors := validation.Struct(dto); len(fieldErrors) > 0 {
		response.Abort(c, response.Validation(fieldErrors))
		return dto, false
	}
	return dto, true
}

package router_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-employee-service/config"
	"github.com/oksasatya/go-employee-service/internal/application"
	"github.com/oksasatya/go-employee-service/internal/infrastructure/search"
	"github.com/oksasatya/go-employee-service/internal/router"
)

type stubService struct{}

func (stubService) FindAll(context.Context) ([]application.EmployeeDTO, error) {
	return []application.EmployeeDTO{}, nil
}
func (stubService) Get(context.Context, uuid.UUID) (application.EmployeeDTO, error) {
	return application.EmployeeDTO{}, application.ErrEmployeeNotFound
}
func (stubService) Create(context.Context, application.EmployeeDTO) (uuid.UUID, error) {
	return uuid.New(), nil
}
func (stubService) Update(_ context.Context, id uuid.UUID, _ application.EmployeeDTO) (uuid.UUID, error) {
	return id, nil
}
func (stubService) Delete(context.Context, uuid.UUID) error { return nil }

type stubSearcher struct{}

func (stubSearcher) Search(context.Context, string, int) ([]search.Document, error) {
	return []search.Document{}, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newEngine(t *testing.T, withSearch bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	deps := router.Deps{
		Config:    &config.Config{DebugMetricsEnabled: true},
		Logger:    logger,
		Employees: stubService{},
		DB:        okPinger{},
	}
	if withSearch {
		deps.Searcher = stubSearcher{}
	}

	engine := gin.New()
	reg := router.NewRegistry(engine)
	router.InitModules(reg, deps)
	reg.RegisterAll()
	return engine
}

func routes(engine *gin.Engine) map[string]bool {
	out := map[string]bool{}
	for _, r := range engine.Routes() {
		out[r.Method+" "+r.Path] = true
	}
	return out
}

func TestInitModules_Routes(t *testing.T) {
	got := routes(newEngine(t, true))
	for _, want := range []string{
		"GET /api/employees",
		"POST /api/employees",
		"GET /api/employees/:uuid",
		"PUT /api/employees/:uuid",
		"DELETE /api/employees/:uuid",
		"GET /api/employees/search",
		"GET /api/health",
		"GET /api/debug/metrics",
	} {
		assert.True(t, got[want], want)
	}
}

func TestInitModules_SearchDisabled(t *testing.T) {
	got := routes(newEngine(t, false))
	assert.False(t, got["GET /api/employees/search"])
	assert.True(t, got["GET /api/employees/:uuid"])
}

func TestRegistry_NoRoute(t *testing.T) {
	engine := newEngine(t, false)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"httpStatus":404,"exception":"NotFound","message":"no route for /nope"}`, w.Body.String())
}

func TestRegistry_MetricsEndpoint(t *testing.T) {
	engine := newEngine(t, false)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

type whoamiModule struct {
	seen *string
}

func (m whoamiModule) Register(rg *gin.RouterGroup) {
	rg.GET("/whoami", func(c *gin.Context) {
		*m.seen = c.GetString("real_ip")
		c.Status(http.StatusOK)
	})
}

func TestInitModules_ResolvesRealIPForAPIRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	var seen string
	engine := gin.New()
	reg := router.NewRegistry(engine)
	router.InitModules(reg, router.Deps{
		Config:    &config.Config{},
		Logger:    logger,
		Employees: stubService{},
		DB:        okPinger{},
	})
	reg.Add(whoamiModule{seen: &seen})
	reg.RegisterAll()

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.9, 10.0.0.1")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "198.51.100.9", seen)
}

func TestRegistry_UseAppliesToAPIGroupOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/outside", func(c *gin.Context) { c.Status(http.StatusOK) })

	var seen string
	reg := router.NewRegistry(engine)
	reg.Use(func(c *gin.Context) {
		c.Header("X-Api", "1")
		c.Next()
	})
	reg.Add(whoamiModule{seen: &seen})
	reg.RegisterAll()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/whoami", nil))
	assert.Equal(t, "1", w.Header().Get("X-Api"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/outside", nil))
	assert.Empty(t, w.Header().Get("X-Api"))
}

package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-employee-service/internal/interface/http"
	"github.com/oksasatya/go-employee-service/internal/interface/middleware"
)

// EmployeeModule wires the employee CRUD routes under /employees.
// GET /employees/search is only registered when a searcher is configured.
type EmployeeModule struct {
	Handler            *handlers.EmployeeHandler
	Redis              *redis.Client
	RateLimitPerMinute int
}

func NewEmployeeModule(h *handlers.EmployeeHandler, rdb *redis.Client, perMinute int) *EmployeeModule {
	return &EmployeeModule{Handler: h, Redis: rdb, RateLimitPerMinute: perMinute}
}

func (m *EmployeeModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/employees")
	g.Use(middleware.RateLimit(m.Redis, m.RateLimitPerMinute, time.Minute, middleware.KeyByIP(), nil))
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		if m.Handler.Searcher != nil {
			g.GET("/search", m.Handler.Search)
		}
		g.GET("/:uuid", m.Handler.Get)
		g.PUT("/:uuid", m.Handler.Update)
		g.DELETE("/:uuid", m.Handler.Delete)
	}
}

package router

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-employee-service/config"
	handlers "github.com/oksasatya/go-employee-service/internal/interface/http"
	"github.com/oksasatya/go-employee-service/internal/interface/middleware"
	"github.com/oksasatya/go-employee-service/internal/router/modules"
)

// Deps carries everything the HTTP modules need. It is built once in main.
type Deps struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Redis     *redis.Client
	Employees handlers.EmployeeService
	Searcher  handlers.EmployeeSearcher // nil disables /employees/search
	DB        handlers.Pinger
}

// InitModules builds the handlers from d and adds their modules to r.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, d Deps) {
	// rate limit keys read the client IP resolved here
	r.Use(middleware.RealIP())

	employeeHandler := handlers.NewEmployeeHandler(d.Employees, d.Searcher, d.Logger)
	r.Add(modules.NewEmployeeModule(employeeHandler, d.Redis, d.Config.RateLimitPerMinute))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(d.DB, d.Logger)))
	if d.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(d.Redis))
	}
}

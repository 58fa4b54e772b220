// Package router assembles the HTTP surface. Task routes are declared in an
// ordered table and validated at registration time: a fixed sub-path such as
// /tasks/daily/all must come before the parameterized /tasks/:id, or the
// fixed route can be shadowed and become unreachable. The check runs at
// startup, never per request.
package router

import (
	"fmt"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/evotodo/task-tracker-api/internal/config"
	"github.com/evotodo/task-tracker-api/internal/constants"
	"github.com/evotodo/task-tracker-api/internal/handlers"
	"github.com/evotodo/task-tracker-api/internal/identity"
	"github.com/evotodo/task-tracker-api/internal/middleware"
)

// Route is one entry of an ordered registration table.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Deps carries everything the router needs. SessionStore and RateLimit are
// optional.
type Deps struct {
	Auth         *handlers.AuthHandler
	Tasks        *handlers.TaskHandler
	Stats        *handlers.StatsHandler
	Resolver     identity.Resolver
	SessionStore sessions.Store
	RateLimit    gin.HandlerFunc
}

// New builds the engine with all routes registered in validated order.
func New(cfg *config.Config, deps Deps) (*gin.Engine, error) {
	r := gin.Default()

	if deps.SessionStore != nil {
		r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", deps.Auth.Signup)
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/logout", deps.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(deps.Resolver), deps.Auth.GetCurrentUser)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(deps.Resolver))
	if deps.RateLimit != nil {
		protected.Use(deps.RateLimit)
	}

	taskRoutes := []Route{
		{"GET", "/tasks", deps.Tasks.ListTasks},
		{"POST", "/tasks", deps.Tasks.CreateTask},
		{"GET", "/tasks/daily/all", deps.Tasks.DailyTasks},
		{"GET", "/tasks/:id", deps.Tasks.GetTask},
		{"PUT", "/tasks/:id", deps.Tasks.UpdateTask},
		{"PATCH", "/tasks/:id", deps.Tasks.UpdateTask},
		{"PATCH", "/tasks/:id/complete", deps.Tasks.ToggleComplete},
		{"DELETE", "/tasks/:id", deps.Tasks.DeleteTask},
		{"GET", "/users/me/stats", deps.Stats.GetStats},
	}

	if err := validateOrder(taskRoutes); err != nil {
		return nil, err
	}
	for _, route := range taskRoutes {
		protected.Handle(route.Method, route.Path, route.Handler)
	}

	return r, nil
}

// validateOrder rejects any table where a parameterized route precedes a
// fixed route it could capture. Matching compares the shared segment prefix,
// with a :param segment matching any fixed segment.
func validateOrder(routes []Route) error {
	for i, earlier := range routes {
		if !parameterized(earlier.Path) {
			continue
		}
		for _, later := range routes[i+1:] {
			if later.Method != earlier.Method || parameterized(later.Path) {
				continue
			}
			if shadows(earlier.Path, later.Path) {
				return fmt.Errorf("route %s %s is shadowed by %s registered before it",
					later.Method, later.Path, earlier.Path)
			}
		}
	}
	return nil
}

func parameterized(path string) bool {
	return strings.Contains(path, ":")
}

// shadows reports whether the pattern captures the fixed path over their
// shared segment prefix.
func shadows(pattern, fixed string) bool {
	patternSegs := strings.Split(strings.Trim(pattern, "/"), "/")
	fixedSegs := strings.Split(strings.Trim(fixed, "/"), "/")

	n := len(patternSegs)
	if len(fixedSegs) < n {
		n = len(fixedSegs)
	}
	for i := 0; i < n; i++ {
		if strings.HasPrefix(patternSegs[i], ":") {
			continue
		}
		if patternSegs[i] != fixedSegs[i] {
			return false
		}
	}
	return true
}

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/evotodo/task-tracker-api/internal/config"
	"github.com/evotodo/task-tracker-api/internal/handlers"
	"github.com/evotodo/task-tracker-api/internal/identity"
	"github.com/evotodo/task-tracker-api/internal/models"
	"github.com/evotodo/task-tracker-api/internal/repository"
	"github.com/evotodo/task-tracker-api/internal/services"
)

func noop(c *gin.Context) {}

func TestValidateOrder_AcceptsFixedBeforeParam(t *testing.T) {
	routes := []Route{
		{"GET", "/tasks", noop},
		{"GET", "/tasks/daily/all", noop},
		{"GET", "/tasks/:id", noop},
	}
	assert.NoError(t, validateOrder(routes))
}

func TestValidateOrder_RejectsShadowedFixedRoute(t *testing.T) {
	routes := []Route{
		{"GET", "/tasks/:id", noop},
		{"GET", "/tasks/daily/all", noop},
	}
	err := validateOrder(routes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/tasks/daily/all")
}

func TestValidateOrder_IgnoresOtherMethods(t *testing.T) {
	routes := []Route{
		{"DELETE", "/tasks/:id", noop},
		{"GET", "/tasks/daily/all", noop},
	}
	assert.NoError(t, validateOrder(routes))
}

func TestShadows(t *testing.T) {
	cases := []struct {
		pattern string
		fixed   string
		want    bool
	}{
		{"/tasks/:id", "/tasks/daily/all", true},
		{"/tasks/:id", "/tasks/daily", true},
		{"/tasks/:id", "/users/me/stats", false},
		{"/tasks/:id/complete", "/tasks/daily/all", false},
		{"/users/:name", "/users/me/stats", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, shadows(tc.pattern, tc.fixed), "%s vs %s", tc.pattern, tc.fixed)
	}
}

func TestNew_DailyRouteIsReachable(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})

	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	taskService := services.NewTaskService(taskRepo)
	statsService := services.NewStatsService(taskRepo, time.Monday, time.UTC)
	authService := services.NewAuthService(userRepo)
	tokens := identity.NewTokenResolver("test-secret", "task-tracker-api", time.Hour)

	gin.SetMode(gin.TestMode)
	engine, err := New(&config.Config{}, Deps{
		Auth:     handlers.NewAuthHandler(authService, tokens, config.AuthModeToken),
		Tasks:    handlers.NewTaskHandler(taskService),
		Stats:    handlers.NewStatsHandler(statsService),
		Resolver: tokens,
	})
	require.NoError(t, err)

	user := &models.User{Email: "r@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(user).Error)
	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	// An empty daily list answers 200, proving the fixed route is not
	// captured by the task-by-id lookup.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/daily/all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	health := httptest.NewRecorder()
	engine.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

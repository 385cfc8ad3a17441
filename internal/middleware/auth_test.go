package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func tokenFor(t *testing.T, id uint, role model.UserRole) string {
	t.Helper()
	u := &model.User{Role: role}
	u.ID = id
	token, err := util.GenerateJWT(u, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func newRouter() *gin.Engine {
	r := gin.New()
	api := r.Group("/api", AuthMiddleware(testSecret))
	api.GET("/me", func(c *gin.Context) {
		util.Success(c, util.GetUserFromContext(c).UserID)
	})
	admin := api.Group("/admin", RoleMiddleware(model.Admin))
	admin.GET("/ping", func(c *gin.Context) {
		util.Success(c, "pong")
	})
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, do(r, "/api/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/api/me", "garbage").Code)

	w := do(r, "/api/me", tokenFor(t, 5, model.Student))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":5`)
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusForbidden, do(r, "/api/admin/ping", tokenFor(t, 1, model.Student)).Code)
	assert.Equal(t, http.StatusOK, do(r, "/api/admin/ping", tokenFor(t, 2, model.Admin)).Code)
}

type activityRepo struct {
	mu    sync.Mutex
	calls int
	done  chan struct{}
}

func (r *activityRepo) UpdateLastSeen(userID uint) error {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

func TestActivityMiddlewareThrottles(t *testing.T) {
	repo := &activityRepo{done: make(chan struct{}, 4)}
	r := gin.New()
	r.Use(AuthMiddleware(testSecret), ActivityMiddleware(repo, time.Hour))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	token := tokenFor(t, 9, model.Student)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, do(r, "/x", token).Code)
	}

	select {
	case <-repo.done:
	case <-time.After(time.Second):
		t.Fatal("last seen was not updated")
	}
	time.Sleep(50 * time.Millisecond)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, 1, repo.calls)
}

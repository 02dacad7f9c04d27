package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/kitaplik/internal/entity"
	"anoa.com/kitaplik/internal/middleware"
	userRepo "anoa.com/kitaplik/internal/modules/user/repository"
	"anoa.com/kitaplik/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, subject string, key string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func router(t *testing.T) (*gin.Engine, *entity.User, *entity.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	member := testutil.SeedUser(t, db, "okur")
	admin := testutil.SeedUser(t, db, "yonetici")
	require.NoError(t, db.Model(admin).Update("role", entity.RoleAdmin).Error)

	auth := middleware.NewAuthMiddleware(userRepo.NewUserRepository(db), secret)
	r := gin.New()
	api := r.Group("/api", auth.RequireAuth())
	api.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})
	api.GET("/admin", auth.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, member, admin
}

func do(r *gin.Engine, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r, member, _ := router(t)

	w := do(r, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/api/me", "Bearer "+sign(t, member.ID.String(), "wrong", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/api/me", "Bearer "+sign(t, member.ID.String(), secret, -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/api/me", "Bearer "+sign(t, "not-a-uuid", secret, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/api/me", "Bearer "+sign(t, member.ID.String(), secret, time.Hour))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, member.ID.String(), w.Body.String())

	w = do(r, "/api/me?token="+sign(t, member.ID.String(), secret, time.Hour), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	r, member, admin := router(t)

	w := do(r, "/api/admin", "Bearer "+sign(t, member.ID.String(), secret, time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, "/api/admin", "Bearer "+sign(t, admin.ID.String(), secret, time.Hour))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellbridge/internal/config"
	"sellbridge/internal/domain"
	"sellbridge/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testJWTCfg = config.JWTConfig{Secret: "test-secret", Issuer: "sellbridge-identity"}

// signToken builds an HS256 token the way the identity service does.
func signToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID, role domain.UserRole) string {
	t.Helper()

	claims := middleware.Claims{
		UserID: userID,
		Email:  "user@test.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)
	return token
}

func authTestRouter(cfg *config.JWTConfig) *gin.Engine {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(cfg))
	r.GET("/test", func(c *gin.Context) {
		uid, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": uid,
			"role":    middleware.GetRole(c),
		})
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, testJWTCfg, userID, domain.RoleMember)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	authTestRouter(&testJWTCfg).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, userID.String(), resp["user_id"])
	assert.Equal(t, "member", resp["role"])
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	authTestRouter(&testJWTCfg).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	badCfg := config.JWTConfig{Secret: "other-secret", Issuer: testJWTCfg.Issuer}
	token := signToken(t, badCfg, uuid.New(), domain.RoleMember)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	authTestRouter(&testJWTCfg).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongIssuer(t *testing.T) {
	badCfg := config.JWTConfig{Secret: testJWTCfg.Secret, Issuer: "someone-else"}
	token := signToken(t, badCfg, uuid.New(), domain.RoleMember)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	authTestRouter(&testJWTCfg).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	claims := middleware.Claims{
		UserID: uuid.New(),
		Role:   domain.RoleMember,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testJWTCfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTCfg.Secret))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	authTestRouter(&testJWTCfg).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(&testJWTCfg))
	r.PUT("/admin-only", middleware.RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	t.Run("admin allowed", func(t *testing.T) {
		token := signToken(t, testJWTCfg, uuid.New(), domain.RoleAdmin)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/admin-only", http.NoBody)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("member forbidden", func(t *testing.T) {
		token := signToken(t, testJWTCfg, uuid.New(), domain.RoleMember)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/admin-only", http.NoBody)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"revamp/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("gateway-secret"))
	require.NoError(t, err)
	return s
}

func echoIdentity() *gin.Engine {
	r := gin.New()
	r.Use(IdentityMiddleware())
	r.GET("/me", func(c *gin.Context) { c.JSON(http.StatusOK, IdentityFrom(c)) })
	r.GET("/admin", RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func get(r http.Handler, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdentityMiddleware_ReadsClaims(t *testing.T) {
	r := echoIdentity()
	w := get(r, "/me", "Bearer "+token(t, jwt.MapClaims{"userId": "cust-1", "name": "Alice", "email": "a@example.com", "role": "Customer"}))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Identity
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.Identity{SubjectID: "cust-1", DisplayName: "Alice", Email: "a@example.com", Role: models.RoleCustomer}, got)
}

func TestIdentityMiddleware_AnonymousAndMalformed(t *testing.T) {
	r := echoIdentity()

	w := get(r, "/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Identity
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Empty(t, got.SubjectID)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Bearer not.a.jwt").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Basic abc").Code)
}

func TestRequireRole(t *testing.T) {
	r := echoIdentity()

	assert.Equal(t, http.StatusUnauthorized, get(r, "/admin", "").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Bearer "+token(t, jwt.MapClaims{"sub": "cust-1", "role": "customer"})).Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/admin", "Bearer "+token(t, jwt.MapClaims{"sub": "admin-1", "role": "admin"})).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("1.1.1.1"))
	assert.Equal(t, http.StatusOK, call("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("1.1.1.1"))
	assert.Equal(t, http.StatusOK, call("2.2.2.2"), "limits are per client")
}

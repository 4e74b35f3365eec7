package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchen-api/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, userID, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"name": "Tester",
		"exp":  exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(CtxUserID),
			"role":    c.GetString(CtxRole),
		})
	})
	r.GET("/probe", chain...)
	return r
}

func probe(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(testSecret))

	t.Run("missing token", func(t *testing.T) {
		w := probe(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := probe(r, "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", "u1", models.RoleCustomer, time.Now().Add(time.Hour))
		w := probe(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testSecret, "u1", models.RoleCustomer, time.Now().Add(-time.Hour))
		w := probe(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token sets claims", func(t *testing.T) {
		token := signToken(t, testSecret, "u1", models.RoleCustomer, time.Now().Add(time.Hour))
		w := probe(r, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
		assert.Contains(t, w.Body.String(), `"role":"customer"`)
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	r := newRouter(OptionalAuthMiddleware(testSecret))

	t.Run("anonymous passes through", func(t *testing.T) {
		w := probe(r, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":""`)
	})

	t.Run("invalid token still passes through", func(t *testing.T) {
		w := probe(r, "not.a.jwt")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":""`)
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		token := signToken(t, testSecret, "u2", models.RoleCustomer, time.Now().Add(time.Hour))
		w := probe(r, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":"u2"`)
	})
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(testSecret), RoleMiddleware(models.RoleAdmin))

	t.Run("customer is forbidden", func(t *testing.T) {
		token := signToken(t, testSecret, "u1", models.RoleCustomer, time.Now().Add(time.Hour))
		w := probe(r, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin is allowed", func(t *testing.T) {
		token := signToken(t, testSecret, "u1", models.RoleAdmin, time.Now().Add(time.Hour))
		w := probe(r, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("anonymous never reaches the role check", func(t *testing.T) {
		w := probe(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

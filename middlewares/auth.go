package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxName   = "name"
)

func parseToken(secret, tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

func setClaims(c *gin.Context, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(string); ok {
		c.Set(CtxUserID, sub)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set(CtxRole, role)
	}
	if name, ok := claims["name"].(string); ok {
		c.Set(CtxName, name)
	}
}

// AuthMiddleware rejects requests without a valid token.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			c.Abort()
			return
		}

		claims, err := parseToken(secret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches claims when a valid token is present
// but lets anonymous requests through. Used on public reads.
func OptionalAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if claims, err := parseToken(secret, tokenString); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RoleMiddleware allows only the listed roles. Must run after
// AuthMiddleware.
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		c.Abort()
	}
}

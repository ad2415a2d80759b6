package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/storepos-api/internal/infrastructure/repository"
	"github.com/ndthang/storepos-api/internal/presentation/http/dto/response"
	"github.com/ndthang/storepos-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. Besides rejecting
// unauthenticated requests it threads the token's active store into the
// request context so repositories scope their queries to it.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]

		// Validate the token
		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// Set staff info in context
		c.Set("staff_id", claims.StaffID)
		c.Set("staff_role", claims.Role)
		if claims.StoreID != nil {
			c.Set("store_id", *claims.StoreID)
			c.Request = c.Request.WithContext(
				repository.WithStore(c.Request.Context(), *claims.StoreID),
			)
		}

		c.Next()
	}
}

// RequireStore rejects requests whose token carries no active store. Store
// selection happens right after login; every store-scoped route sits behind
// this.
func RequireStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("store_id"); !exists {
			response.Forbidden(c, "Vui lòng chọn cửa hàng trước")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		staffRole, exists := c.Get("staff_role")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		role, ok := staffRole.(string)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		for _, required := range roles {
			if role == required {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}

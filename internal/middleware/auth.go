package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dmartinezh/poketeams/pkg/token"
)

const (
	AuthUserIDKey = "auth_user_id"
)

type errorBody struct {
	Message      string `json:"message"`
	InternalCode string `json:"internal_code"`
}

// AuthMiddleware authenticates the request via its Bearer token and
// compares the token's version claim against the user's persisted
// counter, so bumped accounts reject every previously issued token.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Message:      "Access token required",
				InternalCode: "AUTHENTICATION_ERROR",
			})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Message:      "Invalid Authorization header format. Expected: Bearer <token>",
				InternalCode: "AUTHENTICATION_ERROR",
			})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody{
				Message:      "Invalid or expired token",
				InternalCode: "INVALID_TOKEN",
			})
			return
		}

		var row struct {
			ID           uint
			TokenVersion int
		}
		err = db.Table("users").Select("id", "token_version").
			Where("id = ? AND deleted_at IS NULL", claims.UserID).Take(&row).Error
		if err != nil {
			log.Printf("User %d from token not found in database", claims.UserID)
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody{
				Message:      "Session invalid, please log in again",
				InternalCode: "INVALID_TOKEN",
			})
			return
		}

		if claims.TokenVersion != row.TokenVersion {
			log.Printf("Token version mismatch detected for user %d", claims.UserID)
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody{
				Message:      "Session invalid, please log in again",
				InternalCode: "INVALID_TOKEN",
			})
			return
		}

		c.Set(AuthUserIDKey, claims.UserID)
		c.Next()
	}
}

// AdminMiddleware gates a route to admin accounts. Must run after
// AuthMiddleware.
func AdminMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := GetUserIDFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Message:      "Authentication required before authorization",
				InternalCode: "AUTHENTICATION_ERROR",
			})
			return
		}

		var role string
		err = db.Table("users").Select("role").
			Where("id = ? AND deleted_at IS NULL", userID).Take(&role).Error
		if err != nil || role != "admin" {
			log.Printf("Access denied: user %d attempted an admin-only action", userID)
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody{
				Message:      "Required roles: admin",
				InternalCode: "AUTHORIZATION_ERROR",
			})
			return
		}

		c.Next()
	}
}

// GetUserIDFromContext extracts the authenticated user ID from the context.
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get(AuthUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}

	uid, ok := userID.(uint)
	if !ok {
		return 0, fmt.Errorf("user ID has unexpected type: %T", userID)
	}

	return uid, nil
}

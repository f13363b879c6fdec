package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/config"
	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/models"
)

const userCacheTTL = 10 * time.Minute

// CachedUserData is the actor identity attached to every gated request:
// who is asking, with which roles and permissions.
type CachedUserData struct {
	UserID      uint     `json:"user_id"`
	Login       string   `json:"login"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// AuthMiddleware validates the session token and resolves the actor's
// roles and permissions, preferring the redis cache over the database.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				abortUnauthorized(c, "Authorization token not provided")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				abortUnauthorized(c, "Invalid Authorization header format")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return config.JwtKey, nil
		})
		if err != nil || !token.Valid {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}
		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			abortUnauthorized(c, "Invalid user ID in token")
			return
		}
		userID := uint(userIDFloat)

		cacheKey := fmt.Sprintf("user:%d:data", userID)
		if config.RDB != nil {
			cached, err := config.RDB.Get(c.Request.Context(), cacheKey).Result()
			if err == nil {
				var userData CachedUserData
				if json.Unmarshal([]byte(cached), &userData) == nil {
					setActor(c, &userData)
					return
				}
				slog.Warn("discarding unreadable cached user data", "user_id", userID)
			} else if err != redis.Nil {
				slog.Error("redis GET failed", "error", err, "user_id", userID)
			}
		}

		var user models.User
		if err := config.DB.Preload("Roles").First(&user, userID).Error; err != nil {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			abortUnauthorized(c, "User from token not found")
			return
		}

		var roleIDs []uint
		var roleNames []string
		isAdmin := false
		for _, role := range user.Roles {
			roleIDs = append(roleIDs, role.ID)
			roleNames = append(roleNames, role.Name)
			if role.Name == "admin" {
				isAdmin = true
			}
		}

		var permissions []string
		if len(roleIDs) > 0 {
			config.DB.Table("permissions").
				Joins("join role_permissions on role_permissions.permission_id = permissions.id").
				Where("role_permissions.role_id IN ?", roleIDs).
				Distinct().
				Pluck("name", &permissions)
		}
		if isAdmin {
			permissions = append(permissions, "admin")
		}

		userData := CachedUserData{
			UserID:      user.ID,
			Login:       user.Login,
			Roles:       roleNames,
			Permissions: permissions,
		}

		if config.RDB != nil {
			if payload, err := json.Marshal(userData); err == nil {
				if err := config.RDB.Set(c.Request.Context(), cacheKey, payload, userCacheTTL).Err(); err != nil {
					slog.Error("failed to cache user data", "error", err, "user_id", userID)
				}
			}
		}

		setActor(c, &userData)
	}
}

func setActor(c *gin.Context, userData *CachedUserData) {
	c.Set("user_id", userData.UserID)
	c.Set("login", userData.Login)
	c.Set("roles", userData.Roles)
	c.Set("permissions", userData.Permissions)
	c.Next()
}

// PermissionMiddleware gates an operation on one named permission. The
// admin role bypasses individual checks.
func PermissionMiddleware(requiredPermission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if roles, exists := c.Get("roles"); exists {
			if userRoles, ok := roles.([]string); ok {
				for _, name := range userRoles {
					if name == "admin" {
						c.Next()
						return
					}
				}
			}
		}

		permissions, exists := c.Get("permissions")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permissions not found in context"})
			c.Abort()
			return
		}
		userPermissions, ok := permissions.([]string)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Internal permission format error"})
			c.Abort()
			return
		}

		for _, name := range userPermissions {
			if name == requiredPermission {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
		c.Abort()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	c.Abort()
}

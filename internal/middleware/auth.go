package middleware

import (
	"strings"

	"collabhub_backend/internal/auth"
	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/models"
	"collabhub_backend/pkg/apperrors"
	"collabhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// tokenQueryParam - браузерный websocket не умеет слать заголовки
const tokenQueryParam = "access_token"

// AuthMiddleware - middleware проверки JWT. Токен берется из заголовка
// Authorization: Bearer или из query-параметра access_token.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "token rejected", "path", c.Request.URL.Path, "error", err.Error())
			apperrors.HandleError(c, err)
			return
		}

		// Сохраняем claims в контекст
		c.Set(contextkeys.UserIDKey, claims.UserID)
		c.Set(contextkeys.RoleKey, claims.Role)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Query(tokenQueryParam)
}

// RequireRoles - middleware для проверки нескольких возможных ролей
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		rc, ok := GetRequestContext(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !roleSet[rc.Role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// GetRequestContext собирает участника запроса из значений, выставленных AuthMiddleware
func GetRequestContext(c *gin.Context) (auth.RequestContext, bool) {
	userID := c.GetString(contextkeys.UserIDKey)
	if userID == "" {
		return auth.RequestContext{}, false
	}

	roleVal, _ := c.Get(contextkeys.RoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return auth.RequestContext{}, false
	}
	return auth.RequestContext{PrincipalID: userID, Role: role}, true
}

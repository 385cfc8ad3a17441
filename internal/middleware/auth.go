package middleware

import (
	"strings"
	"sync"
	"time"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/util"
	"smartenglish_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 校验 Bearer Token，并把 claims 放进上下文的 "user" 键
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			logger.Log.Debug("jwt rejected", zap.String("path", c.FullPath()), zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

// ActivityMiddleware 记录学员最近活跃时间，同一学员 interval 内只写一次
func ActivityMiddleware(repo UserActivityRepo, interval time.Duration) gin.HandlerFunc {
	var seen sync.Map

	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims != nil {
			now := time.Now()
			last, ok := seen.Load(claims.UserID)
			if !ok || now.Sub(last.(time.Time)) >= interval {
				seen.Store(claims.UserID, now)
				// 异步更新，不阻塞主流程
				go func(id uint) {
					if err := repo.UpdateLastSeen(id); err != nil {
						logger.Log.Warn("update last seen failed", zap.Uint("userId", id), zap.Error(err))
					}
				}(claims.UserID)
			}
		}
		c.Next()
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"yatube/internal/pkg"
	"yatube/internal/repository/redis"
)

const ContextUserIDKey = "user_id"

var (
	errMissingHeader = errors.New("missing authorization header")
	errBadFormat     = errors.New("invalid authorization format")
	errBadToken      = errors.New("invalid or expired token")
	errLoggedOut     = errors.New("account has been logged in elsewhere")
)

// AuthMiddleware 必须登录
func AuthMiddleware(jwt *pkg.JWTManager, tokens *redis.TokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := authenticate(c.Request.Context(), c.GetHeader("Authorization"), jwt, tokens)
		if err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, redis.ErrRedisUnavailable) || errors.Is(err, redis.ErrExtendFailed) {
				status = http.StatusInternalServerError
			}
			c.AbortWithStatusJSON(status, gin.H{"msg": err.Error()})
			return
		}

		// 注入 user_id
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth 可匿名访问；带了有效 token 时注入 user_id
func OptionalAuth(jwt *pkg.JWTManager, tokens *redis.TokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" {
			if userID, err := authenticate(c.Request.Context(), header, jwt, tokens); err == nil {
				c.Set(ContextUserIDKey, userID)
			}
		}
		c.Next()
	}
}

func authenticate(ctx context.Context, header string, jwt *pkg.JWTManager, tokens *redis.TokenRepository) (uint64, error) {
	if header == "" {
		return 0, errMissingHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, errBadFormat
	}
	tokenStr := parts[1]

	claims, err := jwt.ParseAccess(tokenStr)
	if err != nil {
		return 0, errBadToken
	}

	// redis校验是否是当前会话的token
	origin, err := tokens.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, redis.ErrTokenNotFound) {
			return 0, errLoggedOut
		}
		return 0, err
	}
	if origin != tokenStr {
		return 0, errLoggedOut
	}

	// 校验通过后更新过期时间
	if err := tokens.Extend(ctx, claims.UserID); err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

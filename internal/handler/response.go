package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yatube/internal/pkg"
	"yatube/internal/service"
)

// writeError 业务错误到状态码的统一映射
func writeError(c *gin.Context, err error) {
	var verr *pkg.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"msg": verr.Msg, "field": verr.Field})
	case errors.Is(err, pkg.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
	case errors.Is(err, pkg.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"msg": "forbidden"})
	case errors.Is(err, pkg.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
	case errors.Is(err, pkg.ErrConstraintViolation):
		c.JSON(http.StatusConflict, gin.H{"msg": "conflict"})
	case errors.Is(err, service.ErrImageStoreDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"msg": err.Error(), "field": "image"})
	default:
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
	}
}

func userIDFromCtx(c *gin.Context) uint64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}

// queryPage 缺省或非法按第一页
func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}
	return page
}

func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid " + name})
		return 0, false
	}
	return id, true
}

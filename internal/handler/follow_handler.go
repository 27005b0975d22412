package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yatube/internal/service"
)

type FollowHandler struct {
	svc *service.FollowService
}

func NewFollowHandler(svc *service.FollowService) *FollowHandler {
	return &FollowHandler{svc: svc}
}

// Follow 关注作者，重复关注不报错
func (h *FollowHandler) Follow(c *gin.Context) {
	changed, err := h.svc.FollowUsername(c.Request.Context(), userIDFromCtx(c), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

// Unfollow 取消关注，未关注时 changed=false
func (h *FollowHandler) Unfollow(c *gin.Context) {
	changed, err := h.svc.UnfollowUsername(c.Request.Context(), userIDFromCtx(c), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

// ListFollowings 获取关注列表，默认当前用户
func (h *FollowHandler) ListFollowings(c *gin.Context) {
	userID, cursor, limit := h.listParams(c)
	rows, next, err := h.svc.ListFollowings(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows, "next_cursor": next})
}

// ListFollowers 获取粉丝列表
func (h *FollowHandler) ListFollowers(c *gin.Context) {
	userID, cursor, limit := h.listParams(c)
	rows, next, err := h.svc.ListFollowers(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows, "next_cursor": next})
}

func (h *FollowHandler) listParams(c *gin.Context) (userID, cursor uint64, limit int) {
	userID, _ = strconv.ParseUint(c.Query("user_id"), 10, 64)
	if userID == 0 {
		userID = userIDFromCtx(c)
	}
	cursor, _ = strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ = strconv.Atoi(c.Query("limit"))
	return userID, cursor, limit
}

// Relation 获取用户间关系，from 缺省为当前用户
func (h *FollowHandler) Relation(c *gin.Context) {
	from, _ := strconv.ParseUint(c.Query("from"), 10, 64)
	if from == 0 {
		from = userIDFromCtx(c)
	}
	to, _ := strconv.ParseUint(c.Query("to"), 10, 64)
	ok, err := h.svc.IsFollowing(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": ok})
}

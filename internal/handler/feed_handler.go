package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/service"
)

type FeedHandler struct {
	svc *service.FeedService
}

func NewFeedHandler(svc *service.FeedService) *FeedHandler {
	return &FeedHandler{svc: svc}
}

// Global 全站信息流，直接输出缓存里渲染好的 JSON
func (h *FeedHandler) Global(c *gin.Context) {
	body, err := h.svc.RenderGlobal(c.Request.Context(), queryPage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *FeedHandler) Group(c *gin.Context) {
	h.assemble(c, service.GroupScope(c.Param("slug")))
}

func (h *FeedHandler) Author(c *gin.Context) {
	h.assemble(c, service.AuthorScope(c.Param("username")))
}

// Following 关注作者的帖子，需要登录
func (h *FeedHandler) Following(c *gin.Context) {
	h.assemble(c, service.FollowingScope(userIDFromCtx(c)))
}

func (h *FeedHandler) assemble(c *gin.Context, scope service.Scope) {
	feed, err := h.svc.Assemble(c.Request.Context(), scope, queryPage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Profile 作者主页，登录时带上是否已关注
func (h *FeedHandler) Profile(c *gin.Context) {
	profile, err := h.svc.Profile(c.Request.Context(), userIDFromCtx(c), c.Param("username"), queryPage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/service"
)

type GroupHandler struct {
	svc   *service.GroupService
	users *service.UserService
}

type CreateGroupReq struct {
	Slug        string `json:"slug" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func NewGroupHandler(svc *service.GroupService, users *service.UserService) *GroupHandler {
	return &GroupHandler{svc: svc, users: users}
}

// Create 仅管理员
func (h *GroupHandler) Create(c *gin.Context) {
	if err := h.users.RequireAdmin(c.Request.Context(), userIDFromCtx(c)); err != nil {
		writeError(c, err)
		return
	}

	var req CreateGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	group, err := h.svc.CreateGroup(c.Request.Context(), service.GroupInput{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *GroupHandler) List(c *gin.Context) {
	list, err := h.svc.ListGroups(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

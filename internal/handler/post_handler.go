package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"yatube/internal/pkg"
	"yatube/internal/service"
)

// maxImageSize 单张图片上限
const maxImageSize = 5 << 20

type PostHandler struct {
	svc      *service.PostService
	comments *service.CommentService
}

type CommentReq struct {
	Text string `json:"text" form:"text"`
}

func NewPostHandler(svc *service.PostService, comments *service.CommentService) *PostHandler {
	return &PostHandler{svc: svc, comments: comments}
}

// CreatePost 创建帖子接口，multipart: text, group_id, image
func (h *PostHandler) CreatePost(c *gin.Context) {
	in, closeFn, ok := postInput(c)
	if !ok {
		return
	}
	defer closeFn()

	post, err := h.svc.CreatePost(c.Request.Context(), userIDFromCtx(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetPost 帖子详情，带评论
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := h.svc.GetPost(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// EditPost 只有作者可以编辑；不上传图片则保留原图
func (h *PostHandler) EditPost(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	in, closeFn, ok := postInput(c)
	if !ok {
		return
	}
	defer closeFn()

	post, err := h.svc.EditPost(c.Request.Context(), userIDFromCtx(c), postID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost 删除帖子接口
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeletePost(c.Request.Context(), userIDFromCtx(c), postID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// AddComment 评论接口
func (h *PostHandler) AddComment(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req CommentReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	comment, err := h.comments.AddComment(c.Request.Context(), userIDFromCtx(c), postID, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// postInput 解析表单；返回的 closeFn 关闭上传文件
func postInput(c *gin.Context) (service.PostInput, func(), bool) {
	noop := func() {}
	in := service.PostInput{Text: c.PostForm("text")}

	if raw := strings.TrimSpace(c.PostForm("group_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid group_id", "field": "group"})
			return in, noop, false
		}
		in.GroupID = &id
	}

	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return in, noop, true
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid image", "field": "image"})
		return in, noop, false
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "upload a valid image", "field": "image"})
		return in, noop, false
	}
	if fh.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "image too large", "field": "image"})
		return in, noop, false
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return in, noop, false
	}
	in.Image = &pkg.Upload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	}
	return in, func() { _ = f.Close() }, true
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/pkg/response"
)

type likeCommentRequest struct {
	Page address.Address `json:"page" binding:"required" swaggertype:"string"`
}

// LikePost 点赞帖子，每个用户每个帖子一次
// @Summary 点赞帖子
// @Tags 点赞
// @Produce json
// @Security Bearer
// @Param post path string true "帖子地址"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/posts/{post}/like [post]
func (h *Handler) LikePost(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	post, ok := addressParam(c, "post")
	if !ok {
		return
	}
	if err := h.likeService.LikePost(c.Request.Context(), who, post); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// HasLikedPost 当前用户是否已点赞
// @Summary 是否已点赞帖子
// @Tags 点赞
// @Produce json
// @Security Bearer
// @Param post path string true "帖子地址"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Router /api/v1/posts/{post}/liked [get]
func (h *Handler) HasLikedPost(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	post, ok := addressParam(c, "post")
	if !ok {
		return
	}
	liked, err := h.likeService.HasLikedPost(c.Request.Context(), who, post)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"liked": liked})
}

// LikeComment 点赞评论，全局序号需小于 1024
// @Summary 点赞评论
// @Tags 点赞
// @Accept json
// @Produce json
// @Security Bearer
// @Param post path string true "帖子地址"
// @Param index path int true "评论全局序号"
// @Param request body likeCommentRequest true "评论所在页地址"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/posts/{post}/comments/{index}/like [post]
func (h *Handler) LikeComment(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	post, ok := addressParam(c, "post")
	if !ok {
		return
	}
	index, ok := uintParam(c, c.Param("index"), "index")
	if !ok {
		return
	}
	var req likeCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.likeService.LikeComment(c.Request.Context(), who, post, req.Page, index); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// HasLikedComment 位图探测
// @Summary 是否已点赞评论
// @Tags 点赞
// @Produce json
// @Security Bearer
// @Param post path string true "帖子地址"
// @Param index path int true "评论全局序号"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Router /api/v1/posts/{post}/comments/{index}/liked [get]
func (h *Handler) HasLikedComment(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	post, ok := addressParam(c, "post")
	if !ok {
		return
	}
	index, ok := uintParam(c, c.Param("index"), "index")
	if !ok {
		return
	}
	liked, err := h.likeService.HasLikedComment(c.Request.Context(), who, post, index)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"liked": liked})
}

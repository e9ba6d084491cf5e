package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/pkg/response"
)

// CommentPageAddress 计算评论页地址
// @Summary 评论页地址
// @Tags 地址
// @Produce json
// @Param post query string true "帖子地址"
// @Param index query int true "页号"
// @Success 200 {object} response.Response{data=map[string]string}
// @Router /api/v1/addresses/comment-page [get]
func (h *Handler) CommentPageAddress(c *gin.Context) {
	post, ok := addressQuery(c, "post")
	if !ok {
		return
	}
	index, ok := uintParam(c, c.Query("index"), "index")
	if !ok {
		return
	}
	response.Success(c, gin.H{"address": address.CommentPageAddress(post, index)})
}

// CommentLikesAddress 计算评论点赞位图地址
// @Summary 评论点赞位图地址
// @Tags 地址
// @Produce json
// @Param user query string true "用户地址"
// @Param post query string true "帖子地址"
// @Success 200 {object} response.Response{data=map[string]string}
// @Router /api/v1/addresses/comment-likes [get]
func (h *Handler) CommentLikesAddress(c *gin.Context) {
	user, post, ok := userPostQuery(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{"address": address.CommentLikesAddress(user, post)})
}

// UserLikeAddress 计算帖子点赞去重记录地址
// @Summary 帖子点赞记录地址
// @Tags 地址
// @Produce json
// @Param user query string true "用户地址"
// @Param post query string true "帖子地址"
// @Success 200 {object} response.Response{data=map[string]string}
// @Router /api/v1/addresses/user-like [get]
func (h *Handler) UserLikeAddress(c *gin.Context) {
	user, post, ok := userPostQuery(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{"address": address.UserLikeAddress(user, post)})
}

func userPostQuery(c *gin.Context) (user, post address.Address, ok bool) {
	if user, ok = addressQuery(c, "user"); !ok {
		return
	}
	post, ok = addressQuery(c, "post")
	return
}

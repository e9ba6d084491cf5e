package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/pkg/response"
)

type followRequest struct {
	Target address.Address `json:"target" binding:"required" swaggertype:"string"`
}

// Follow 建立关注
// @Summary 关注用户
// @Tags 关系链
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body followRequest true "被关注者地址"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/relations/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.relService.Follow(c.Request.Context(), who, req.Target); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关系链
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body followRequest true "被关注者地址"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/relations/unfollow [post]
func (h *Handler) Unfollow(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.relService.Unfollow(c.Request.Context(), who, req.Target); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// ListFollowing 查询某用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Param user path string true "用户地址"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/relations/{user}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	user, ok := addressParam(c, "user")
	if !ok {
		return
	}
	page, pageSize := pageQuery(c)
	list, err := h.relService.ListFollowing(c.Request.Context(), user, page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// ListFans 查询某用户的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Param user path string true "用户地址"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/relations/{user}/fans [get]
func (h *Handler) ListFans(c *gin.Context) {
	user, ok := addressParam(c, "user")
	if !ok {
		return
	}
	page, pageSize := pageQuery(c)
	list, err := h.relService.ListFans(c.Request.Context(), user, page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/commentlog/pkg/response"
)

// GetProfile 用户聚合计数，无记录时为零值
// @Summary 用户档案
// @Tags 用户
// @Produce json
// @Param user path string true "用户地址"
// @Success 200 {object} response.Response{data=model.UserProfile}
// @Router /api/v1/profiles/{user} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	user, ok := addressParam(c, "user")
	if !ok {
		return
	}
	p, err := h.profileService.GetProfile(c.Request.Context(), user)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, p)
}

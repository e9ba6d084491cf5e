package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/pkg/response"
)

type tipRequest struct {
	Author address.Address `json:"author" binding:"required" swaggertype:"string"`
	Amount uint64          `json:"amount"`
}

type depositRequest struct {
	Amount uint64 `json:"amount"`
}

// TipPost 打赏帖子作者
// @Summary 打赏
// @Tags 钱包
// @Accept json
// @Produce json
// @Security Bearer
// @Param post path string true "帖子地址"
// @Param request body tipRequest true "作者地址与金额"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 402 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/posts/{post}/tips [post]
func (h *Handler) TipPost(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	post, ok := addressParam(c, "post")
	if !ok {
		return
	}
	var req tipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.tipService.TipPost(c.Request.Context(), who, post, req.Author, req.Amount); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// Balance 当前用户余额
// @Summary 余额
// @Tags 钱包
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=map[string]uint64}
// @Router /api/v1/wallet/balance [get]
func (h *Handler) Balance(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	amount, err := h.wallet.Balance(c.Request.Context(), who)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"amount": amount})
}

// Deposit 充值，仅在 wallet.faucet_enabled 开启时注册
// @Summary 充值
// @Tags 钱包
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body depositRequest true "金额"
// @Success 200 {object} response.Response{data=map[string]uint64}
// @Failure 400 {object} response.Response
// @Router /api/v1/wallet/deposit [post]
func (h *Handler) Deposit(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	b, err := h.wallet.Deposit(c.Request.Context(), who, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"amount": b.Amount})
}

// Package handler HTTP 处理器：解析请求、调用服务、映射错误
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/api/middleware"
	"github.com/d60-Lab/commentlog/internal/service"
	"github.com/d60-Lab/commentlog/pkg/response"
)

type Handler struct {
	postService    service.PostService
	likeService    service.LikeService
	tipService     service.TipService
	wallet         *service.Wallet
	relService     service.RelationshipService
	profileService service.ProfileService
}

func New(
	postService service.PostService,
	likeService service.LikeService,
	tipService service.TipService,
	wallet *service.Wallet,
	relService service.RelationshipService,
	profileService service.ProfileService,
) *Handler {
	return &Handler{
		postService:    postService,
		likeService:    likeService,
		tipService:     tipService,
		wallet:         wallet,
		relService:     relService,
		profileService: profileService,
	}
}

// ErrorBody 领域错误放在 data 中
type ErrorBody struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Retryable bool   `json:"retryable"`
}

var notFoundCodes = map[string]bool{
	service.ErrPostNotFound.Code:    true,
	service.ErrPageNotFound.Code:    true,
	service.ErrCommentNotFound.Code: true,
}

// StatusOf 领域错误到 HTTP 状态码
func StatusOf(err *service.Error) int {
	switch err.Kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindCapacity, service.KindDuplication:
		return http.StatusConflict
	case service.KindConsistency:
		if notFoundCodes[err.Code] {
			return http.StatusNotFound
		}
		return http.StatusConflict
	case service.KindTransfer:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	var de *service.Error
	if !errors.As(err, &de) {
		response.InternalError(c, err)
		return
	}
	status := StatusOf(de)
	response.Error(c, status, status*100, de.Message, ErrorBody{
		Error:     de.Code,
		Kind:      de.Kind.String(),
		Retryable: service.Retryable(de),
	})
}

func caller(c *gin.Context) (address.Address, bool) {
	who, ok := middleware.Caller(c)
	if !ok {
		response.Unauthorized(c, "caller identity missing")
	}
	return who, ok
}

// addressParam 解析路径中的十六进制地址
func addressParam(c *gin.Context, name string) (address.Address, bool) {
	a, err := address.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, name+": "+err.Error())
		return address.Zero, false
	}
	return a, true
}

func addressQuery(c *gin.Context, name string) (address.Address, bool) {
	a, err := address.Parse(c.Query(name))
	if err != nil {
		response.BadRequest(c, name+": "+err.Error())
		return address.Zero, false
	}
	return a, true
}

func uintParam(c *gin.Context, raw, name string) (uint64, bool) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.BadRequest(c, name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}

func pageQuery(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, pageSize
}

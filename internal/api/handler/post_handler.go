package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/model"
	"github.com/d60-Lab/commentlog/internal/service"
	"github.com/d60-Lab/commentlog/pkg/response"
)

type createPostRequest struct {
	Topic   string `json:"topic"`
	Content string `json:"content"`
}

// addCommentRequest parent_index 省略或为 null 表示顶层评论
type addCommentRequest struct {
	Page        address.Address `json:"page" binding:"required" swaggertype:"string"`
	Content     string          `json:"content"`
	ParentIndex *uint64         `json:"parent_index"`
}

type postView struct {
	Address address.Address `json:"address" swaggertype:"string"`
	*model.Post
}

func newPostView(p *model.Post) postView { return postView{Address: p.Address(), Post: p} }

// CreatePost 发帖
// @Summary 发帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body createPostRequest true "帖子内容"
// @Success 200 {object} response.Response{data=postView}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.postService.CreatePost(c.Request.Context(), who, req.Topic, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, newPostView(p))
}

// ListPosts 帖子列表（最新在前）
// @Summary 帖子列表
// @Tags 帖子
// @Produce json
// @Param author query string false "作者地址"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	var author *address.Address
	if c.Query("author") != "" {
		a, ok := addressQuery(c, "author")
		if !ok {
			return
		}
		author = &a
	}
	page, pageSize := pageQuery(c)
	posts, err := h.postService.ListPosts(c.Request.Context(), author, page, pageSize)
	if err != nil {
		fail(c, err)
		return
	}
	list := make([]postView, len(posts))
	for i, p := range posts {
		list[i] = newPostView(p)
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// GetPost 帖子详情
// @Summary 帖子详情
// @Tags 帖子
// @Produce json
// @Param post path string true "帖子地址"
// @Success 200 {object} response.Response{data=postView}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post} [get]
func (h *Handler) GetPost(c *gin.Context) {
	post, ok := addressParam(c, "post")
	if !ok {
		return
	}
	p, err := h.postService.GetPost(c.Request.Context(), post)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, newPostView(p))
}

// InitCommentPage 在当前边界分配新评论页
// @Summary 分配评论页
// @Tags 评论
// @Produce json
// @Security Bearer
// @Param post path string true "帖子地址"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/posts/{post}/pages [post]
func (h *Handler) InitCommentPage(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	post, ok := addressParam(c, "post")
	if !ok {
		return
	}
	pg, err := h.postService.InitCommentPage(c.Request.Context(), who, post)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"address": pg.Address(), "page": pg})
}

// GetPage 读取单个评论页
// @Summary 评论页
// @Tags 评论
// @Produce json
// @Param post path string true "帖子地址"
// @Param index path int true "页号"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post}/pages/{index} [get]
func (h *Handler) GetPage(c *gin.Context) {
	post, ok := addressParam(c, "post")
	if !ok {
		return
	}
	index, ok := uintParam(c, c.Param("index"), "index")
	if !ok {
		return
	}
	pg, err := h.postService.GetPage(c.Request.Context(), post, index)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"address": pg.Address(), "page": pg})
}

// AddComment 追加评论到当前页
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security Bearer
// @Param post path string true "帖子地址"
// @Param request body addCommentRequest true "评论内容与目标页地址"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/posts/{post}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	post, ok := addressParam(c, "post")
	if !ok {
		return
	}
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	parent := model.NoParent
	if req.ParentIndex != nil {
		parent = *req.ParentIndex
	}
	index, err := h.postService.AddComment(c.Request.Context(), who, post, req.Page, req.Content, parent)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"index": index, "page_index": model.PageIndex(index), "offset": model.PageOffset(index)})
}

// ListComments 分段读取评论，按全局序号排列
// @Summary 评论列表
// @Tags 评论
// @Produce json
// @Param post path string true "帖子地址"
// @Param from_page query int false "起始页号" default(0)
// @Param pages query int false "读取页数，最多 100" default(100)
// @Success 200 {object} response.Response{data=service.CommentWindow}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	post, ok := addressParam(c, "post")
	if !ok {
		return
	}
	from, ok := uintParam(c, c.DefaultQuery("from_page", "0"), "from_page")
	if !ok {
		return
	}
	pages, _ := strconv.Atoi(c.DefaultQuery("pages", strconv.Itoa(service.MaxListPages)))
	w, err := h.postService.ListComments(c.Request.Context(), post, from, pages)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, w)
}

// Package api 组装 gin 路由
package api

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/commentlog/config"
	_ "github.com/d60-Lab/commentlog/docs"
	"github.com/d60-Lab/commentlog/internal/api/handler"
	"github.com/d60-Lab/commentlog/internal/api/middleware"
	"github.com/d60-Lab/commentlog/pkg/auth"
)

func NewRouter(cfg *config.Config, h *handler.Handler, signer *auth.Signer) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.Sentry(),
		otelgin.Middleware(cfg.Tracing.ServiceName),
		middleware.Metrics(),
		middleware.AccessLog(),
		gzip.Gzip(gzip.DefaultCompression),
	)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limited := func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled {
		limited = middleware.NewRateLimiter(cfg.RateLimit).Middleware()
	}

	v1 := r.Group("/api/v1")

	public := v1.Group("", limited)
	{
		public.GET("/posts", h.ListPosts)
		public.GET("/posts/:post", h.GetPost)
		public.GET("/posts/:post/pages/:index", h.GetPage)
		public.GET("/posts/:post/comments", h.ListComments)
		public.GET("/profiles/:user", h.GetProfile)
		public.GET("/relations/:user/following", h.ListFollowing)
		public.GET("/relations/:user/fans", h.ListFans)
		public.GET("/addresses/comment-page", h.CommentPageAddress)
		public.GET("/addresses/comment-likes", h.CommentLikesAddress)
		public.GET("/addresses/user-like", h.UserLikeAddress)
	}

	authed := v1.Group("", middleware.AuthRequired(signer), limited)
	{
		authed.POST("/posts", h.CreatePost)
		authed.POST("/posts/:post/pages", h.InitCommentPage)
		authed.POST("/posts/:post/comments", h.AddComment)
		authed.POST("/posts/:post/like", h.LikePost)
		authed.GET("/posts/:post/liked", h.HasLikedPost)
		authed.POST("/posts/:post/comments/:index/like", h.LikeComment)
		authed.GET("/posts/:post/comments/:index/liked", h.HasLikedComment)
		authed.POST("/posts/:post/tips", h.TipPost)
		authed.POST("/relations/follow", h.Follow)
		authed.POST("/relations/unfollow", h.Unfollow)
		authed.GET("/wallet/balance", h.Balance)
	}
	if cfg.Wallet.FaucetEnabled {
		authed.POST("/wallet/deposit", h.Deposit)
	}

	return r
}

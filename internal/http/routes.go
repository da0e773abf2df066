package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(Observe())

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := AuthJWT(h.JWTSecret)
	rl := RateLimitWrites(h.Redis, h.RateLimitPerMin)

	api := r.Group("/api/posts")
	{
		api.GET("", h.ListPosts)                // public, bare shape
		api.GET("/:id", h.GetPost)              // public, bare shape
		api.GET("/extended", auth, h.ListExtendedPosts)
		api.GET("/:id/extended", auth, h.GetExtendedPost)
		api.POST("", auth, rl, h.CreatePost)
		api.DELETE("/:id", auth, h.DeletePost)
		api.POST("/:id/comments", auth, rl, h.CreateComment)
		api.DELETE("/:id/comments/:commentId", auth, h.DeleteComment)
		api.POST("/:id/like", auth, rl, h.LikePost)
		api.DELETE("/:id/like", auth, h.DislikePost)
	}
	return r
}

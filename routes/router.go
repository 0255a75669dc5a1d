package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bluecotton/somboard/config"
	"github.com/bluecotton/somboard/controllers"
	"github.com/bluecotton/somboard/middleware"
	"github.com/bluecotton/somboard/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Request log goes to its own rolling file so it stays out of the app log
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Record PV after each request
	r.Use(middleware.PageViewRecorder(db))

	r.Static("/static", "./static")

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	commentController := controllers.NewCommentController(db)
	engagementController := controllers.NewEngagementController(db)
	uploadController := controllers.NewUploadController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public reads
	api.GET("/posts", postController.ListPosts)
	api.GET("/soms", postController.ListSoms)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	// Detail counts a view for the acting member, so it sits behind auth
	protected.GET("/posts/recent", postController.RecentViews)
	protected.GET("/posts/:id", postController.GetPost)
	protected.GET("/posts/:id/edit", postController.GetPostForUpdate)
	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:id", postController.UpdatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)
	protected.POST("/posts/drafts", postController.RegisterDraft)
	protected.POST("/upload", uploadController.UploadImage)

	protected.POST("/posts/:id/comments", commentController.CreateComment)
	protected.DELETE("/comments/:commentId", commentController.DeleteComment)
	protected.POST("/comments/:commentId/replies", commentController.CreateReply)
	protected.DELETE("/replies/:replyId", commentController.DeleteReply)

	protected.POST("/posts/:id/like", engagementController.ToggleLike)
	protected.POST("/posts/:id/report", engagementController.ReportPost)

	protected.GET("/soms/joined", postController.JoinedSoms)
	protected.POST("/soms/:id/join", postController.JoinSom)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}

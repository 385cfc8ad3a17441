package app

import (
	"time"

	"smartenglish_backend/docs"
	"smartenglish_backend/internal/config"
	"smartenglish_backend/internal/middleware"
	"smartenglish_backend/internal/model"
	"smartenglish_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.ActivityMiddleware(repos.user, 5*time.Minute))
	{
		a.registerLearnerRoutes(authGroup, c)

		// 3. 管理员相关接口
		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		a.registerAdminRoutes(admin, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 本地存储的签名下载链接，签名即凭证
		if c.files.Local != nil {
			public.GET("/files/*key", c.files.Serve)
		}
	}
}

func (a *App) registerLearnerRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/profile", c.auth.Profile)

	progress := group.Group("/progress")
	{
		progress.POST("/daily", c.progress.SubmitDaily)
		progress.GET("/daily", c.progress.ListDaily)
		progress.GET("/daily/:date", c.progress.GetDaily)
		progress.POST("/weekly", c.progress.SubmitWeekly)
		progress.GET("/weekly", c.progress.ListWeekly)
		progress.POST("/monthly", c.progress.SubmitMonthly)
		progress.GET("/monthly", c.progress.ListMonthly)
	}

	group.GET("/analytics/summary", c.analytics.Summary)

	recordings := group.Group("/recordings")
	{
		recordings.POST("", c.recording.Upload)
		recordings.GET("", c.recording.List)
		recordings.DELETE("/:id", c.recording.Delete)
	}
}

func (a *App) registerAdminRoutes(admin *gin.RouterGroup, c *controllers) {
	admin.GET("/overview", c.admin.Overview)
	admin.GET("/students/:id", c.admin.StudentDetail)
	admin.GET("/students/:id/recordings", c.admin.StudentRecordings)

	admin.PUT("/progress/daily/:id", c.admin.UpdateDaily)
	admin.DELETE("/progress/daily/:id", c.admin.DeleteDaily)
	admin.DELETE("/progress/weekly/:id", c.admin.DeleteWeekly)
	admin.DELETE("/progress/monthly/:id", c.admin.DeleteMonthly)
}

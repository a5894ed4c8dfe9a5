package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	public.Use(middleware.ActivityMiddleware(repos.user))
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/help", c.menu.HelpTopics)

		// Catalog listings work anonymously; a token adds per-user state.
		public.GET("/courses", middleware.TryAuthMiddleware(cfg), c.course.List)
		public.GET("/courses/:id", middleware.TryAuthMiddleware(cfg), c.course.Get)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/auth/profile", c.auth.Profile)
		authGroup.PUT("/auth/profile", c.auth.UpdateProfile)

		a.registerCourseRoutes(authGroup, c)
		a.registerLearningRoutes(authGroup, c)
		a.registerMenuRoutes(authGroup, c)
	}

	admin := router.Group("/api/dashboard")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		admin.GET("/admin", middleware.RequireCapability(model.ResourceCourses, model.CapWriteAny), c.dashboard.Admin)
		admin.GET("/instructor", middleware.RequireCapability(model.ResourceCourses, model.CapWriteOwn), c.dashboard.Instructor)
	}
}

// Course authoring plus the nested module/chapter/assignment tree.
func (a *App) registerCourseRoutes(g *gin.RouterGroup, c *controllers) {
	courses := g.Group("/courses")
	{
		write := courses.Group("")
		write.Use(middleware.RequireCapability(model.ResourceCourses, model.CapWriteOwn))
		{
			write.POST("", c.course.Create)
			write.GET("/my_courses", c.course.MyCourses)
			write.PUT("/:id", c.course.Update)
			write.DELETE("/:id", c.course.Delete)
			write.POST("/:id/modules/:module_id/chapters", c.chapter.Create)
			write.POST("/:id/modules/:module_id/assignments", c.assignment.Create)
		}

		courses.GET("/in_progress", c.course.InProgress)
		courses.GET("/completed", c.course.Completed)
		courses.GET("/:id/modules", c.module.List)
		courses.GET("/:id/modules/:module_id", c.module.Get)
		courses.GET("/:id/modules/:module_id/chapters", c.chapter.List)
		courses.GET("/:id/modules/:module_id/assignments", c.assignment.List)
		courses.PATCH("/:id/modules/:module_id/progress",
			middleware.RequireCapability(model.ResourceProgress, model.CapWriteOwn), c.progress.Update)
	}

	g.POST("/upload/video", middleware.RequireCapability(model.ResourceCourses, model.CapWriteOwn), c.media.UploadVideo)
}

func (a *App) registerLearningRoutes(g *gin.RouterGroup, c *controllers) {
	g.POST("/enrollments", middleware.RequireCapability(model.ResourceEnrollments, model.CapWriteOwn), c.enrollment.Enroll)
	g.GET("/enrollments", c.enrollment.List)
	g.POST("/enrollments/:id/mark_completed",
		middleware.RequireCapability(model.ResourceEnrollments, model.CapWriteOwn), c.enrollment.MarkCompleted)

	g.GET("/progress", c.progress.List)

	g.POST("/assignments/:id/submissions",
		middleware.RequireCapability(model.ResourceSubmissions, model.CapWriteOwn), c.assignment.Submit)
	g.GET("/assignments/:id/submissions", c.assignment.Submissions)
	g.GET("/submissions/my_submissions", c.assignment.MySubmissions)
	g.POST("/submissions/:id/grade",
		middleware.RequireCapability(model.ResourceSubmissions, model.CapWriteOwn), c.assignment.Grade)
}

func (a *App) registerMenuRoutes(g *gin.RouterGroup, c *controllers) {
	g.POST("/wishlist", c.menu.AddToWishlist)
	g.GET("/wishlist", c.menu.Wishlist)
	g.DELETE("/wishlist/:course_id", c.menu.RemoveFromWishlist)

	g.GET("/notifications", c.menu.Notifications)
	g.POST("/notifications/:id/read", c.menu.MarkNotificationRead)
}

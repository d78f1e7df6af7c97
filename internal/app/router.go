package app

import (
	"github.com/linoyezra1/learning-system/internal/config"
	"github.com/linoyezra1/learning-system/internal/middleware"
	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/auth/login", c.auth.Login)
		public.POST("/auth/register", c.auth.Register)
		public.GET("/auth/verify", c.auth.Verify)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
	}
}

// Routes every authenticated user can reach.
func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/courses", c.course.ListCourses)
	group.GET("/courses/:courseId", c.course.GetCourse)

	group.GET("/slides/module/:moduleId", c.slide.ListSlides)
	group.GET("/slides/:slideId", c.slide.GetSlide)
	group.POST("/slides/:slideId/progress", c.progress.RecordSlideProgress)
	group.GET("/slides/:slideId/progress", c.progress.GetSlideProgress)

	group.GET("/materials/download", c.slide.DownloadHandbook)

	group.GET("/progress/my-progress", c.progress.MyProgress)
	group.GET("/progress/my-progress/detailed", c.progress.DetailedProgress)

	group.GET("/questions", c.question.ListPractice)
	group.POST("/questions/:questionId/answer", c.question.SubmitPracticeAnswer)
	group.POST("/questions/ask", c.question.Ask)
	group.GET("/questions/my-questions", c.question.MyQuestions)

	group.GET("/reports/user/:userId",
		middleware.SelfOrRole("userId", model.Instructor), c.report.ListForUser)
	group.GET("/reports/:reportId", c.report.Get)

	group.GET("/users/:userId",
		middleware.SelfOrRole("userId", model.Instructor), c.user.Get)
}

func (a *App) registerInstructorRoutes(group *gin.RouterGroup, c *controllers) {
	instructor := group.Group("")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.POST("/courses/:courseId/modules", c.course.CreateModule)
		instructor.POST("/slides", c.slide.CreateSlide)
		instructor.POST("/slides/media", c.slide.UploadMedia)

		instructor.GET("/progress/all", c.progress.AllStudents)
		instructor.GET("/progress/student/:userId", c.progress.StudentSlides)

		instructor.POST("/questions/practice", c.question.CreatePractice)
		instructor.GET("/questions/all-questions", c.question.AllQuestions)
		instructor.POST("/questions/:questionId/answer-instructor", c.question.AnswerQuestion)

		instructor.GET("/reports/completion/:userId", c.report.GenerateCompletion)

		instructor.GET("/users", c.user.List)
		instructor.POST("/users", c.user.Create)
		instructor.POST("/users/update-from-excel", c.user.UpdateFromExcel)
		instructor.POST("/users/sync-from-excel", c.user.SyncFromExcel)
	}
}

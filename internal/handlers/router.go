package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conjugo/quiz-service/internal/auth"
	"github.com/conjugo/quiz-service/internal/content"
	"github.com/conjugo/quiz-service/internal/services"
	"github.com/conjugo/quiz-service/internal/utils"
)

type HandlerManager struct {
	quizHandler       *QuizHandler
	submissionHandler *SubmissionHandler
	teacherHandler    *TeacherHandler
}

func NewHandlerManager(
	store content.Store,
	submissions services.SubmissionService,
	stats services.StatsService,
	export services.ExportService,
	sessions auth.SessionService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:       NewQuizHandler(store, logger),
		submissionHandler: NewSubmissionHandler(submissions, logger),
		teacherHandler:    NewTeacherHandler(sessions, stats, export, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "quiz-service",
		})
	})

	v1 := router.Group("/api/v1")
	{
		weeks := v1.Group("/weeks")
		{
			weeks.GET("", hm.quizHandler.ListWeeks)
			weeks.GET("/:id", hm.quizHandler.GetWeek)
		}

		v1.POST("/submissions", hm.submissionHandler.Submit)

		teacher := v1.Group("/teacher")
		{
			teacher.POST("/login", hm.teacherHandler.Login)

			gated := teacher.Group("")
			gated.Use(hm.teacherHandler.SessionMiddleware())
			{
				gated.POST("/logout", hm.teacherHandler.Logout)
				gated.GET("/dashboard", hm.teacherHandler.Dashboard)
				gated.GET("/export", hm.teacherHandler.Export)
			}
		}
	}
}

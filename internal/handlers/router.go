package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/nova-scholar-service/internal/identity"
	"github.com/SAP-F-2025/nova-scholar-service/internal/services"
	"github.com/SAP-F-2025/nova-scholar-service/internal/utils"
)

type HandlerManager struct {
	systemHandler  *SystemHandler
	userHandler    *UserHandler
	courseHandler  *CourseHandler
	teacherHandler *TeacherHandler
	tutorHandler   *TutorHandler
	careerHandler  *CareerHandler
	callerMW       gin.HandlerFunc
}

type HandlerConfig struct {
	// StrictStatus answers application errors with HTTP error codes
	StrictStatus bool
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	verifier identity.Verifier,
	logger utils.Logger,
	config HandlerConfig,
) *HandlerManager {
	strict := config.StrictStatus

	return &HandlerManager{
		systemHandler:  NewSystemHandler(serviceManager, logger),
		userHandler:    NewUserHandler(serviceManager.User(), logger, strict),
		courseHandler:  NewCourseHandler(serviceManager.Course(), logger, strict),
		teacherHandler: NewTeacherHandler(serviceManager.Roster(), serviceManager.Export(), logger, strict),
		tutorHandler:   NewTutorHandler(serviceManager.Tutor(), logger, strict),
		careerHandler:  NewCareerHandler(serviceManager.Career(), logger, strict),
		callerMW:       CallerMiddleware(verifier, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// System routes
	router.GET("/", hm.systemHandler.Root)
	router.GET("/health", hm.systemHandler.Health)
	router.GET("/metrics", hm.systemHandler.Metrics())

	api := router.Group("")
	api.Use(hm.callerMW)
	{
		// Identity and profile
		api.POST("/auth/sync", hm.userHandler.SyncUser)
		api.GET("/student/profile", hm.userHandler.GetProfile)
		api.PUT("/student/profile", hm.userHandler.UpdateProfile)

		// Courses
		courses := api.Group("/courses")
		{
			courses.POST("", hm.courseHandler.CreateCourse)
			courses.GET("", hm.courseHandler.ListCourses)
			courses.POST("/enroll", hm.courseHandler.Enroll)
			courses.POST("/doubts", hm.courseHandler.AskDoubt)
			courses.DELETE("/:id", hm.courseHandler.DeleteCourse)
			courses.POST("/:id/syllabus", hm.courseHandler.UploadSyllabus)
		}

		// Teacher dashboard
		api.POST("/teacher/students", hm.teacherHandler.GetStudents)
		api.POST("/teacher/students/export", hm.teacherHandler.ExportStudents)
		api.POST("/admin/stats", hm.teacherHandler.GetStats)

		// AI tutor
		api.POST("/solve-doubt", hm.tutorHandler.SolveDoubt)
		api.POST("/generate-quiz", hm.tutorHandler.GenerateQuiz)
		api.POST("/predict", hm.tutorHandler.Predict)

		// Career
		api.POST("/analyze-resume", hm.careerHandler.AnalyzeResume)
		api.GET("/placement-drives", hm.careerHandler.PlacementDrives)
		api.POST("/placement-progress", hm.careerHandler.SaveProgress)
		api.GET("/placement-progress", hm.careerHandler.GetProgress)
	}
}

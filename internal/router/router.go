// Package router mounts the portal handlers on a gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarhub-api/internal/handler"
	"github.com/noah-isme/scholarhub-api/internal/middleware"
	"github.com/noah-isme/scholarhub-api/internal/service"
	"github.com/noah-isme/scholarhub-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/scholarhub-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/scholarhub-api/pkg/middleware/requestid"
)

// Options toggles optional surfaces of the router.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	RequireSession bool
	EnableMetrics  bool
	EnableDocs     bool
}

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Students      *handler.StudentHandler
	Courses       *handler.CourseHandler
	Grades        *handler.GradeHandler
	Events        *handler.EventHandler
	Announcements *handler.AnnouncementHandler
	Views         *handler.ViewHandler
	Navigation    *handler.NavigationHandler
	Sessions      *handler.SessionHandler
	Exports       *handler.ExportHandler
	Metrics       *handler.MetricsHandler
}

// New builds the engine. sessions resolves the current student; metrics may be nil.
func New(opts Options, logr *zap.Logger, sessions *service.SessionService, metrics *service.MetricsService, h Handlers) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/api/v1"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	if opts.EnableMetrics {
		r.GET("/metrics", h.Metrics.Prometheus)
	}
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)
	api.POST("/session", h.Sessions.Open)
	api.GET("/navigation", h.Navigation.Get)
	// Download links are bearer tokens of their own.
	api.GET("/exports/download/:token", h.Exports.Download)

	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(logr, action, resource)
	}

	secured := api.Group("")
	secured.Use(middleware.Session(sessions, opts.RequireSession))
	secured.GET("/session", h.Sessions.Current)
	secured.GET("/metrics/system", h.Metrics.System)

	views := secured.Group("/views")
	views.GET("/dashboard", h.Views.Dashboard)
	views.GET("/courses", h.Views.Courses)
	views.GET("/grades", h.Views.Grades)
	views.GET("/calendar", h.Views.Calendar)
	views.GET("/announcements", h.Views.Announcements)
	views.GET("/profile", h.Views.Profile)
	views.PUT("/profile", audit("update_profile", "student"), h.Views.UpdateProfile)

	students := secured.Group("/students")
	students.GET("", h.Students.List)
	students.POST("", audit("create", "student"), h.Students.Create)
	students.GET("/:id", h.Students.Get)
	students.PUT("/:id", audit("update", "student"), h.Students.Update)
	students.DELETE("/:id", audit("delete", "student"), h.Students.Delete)

	courses := secured.Group("/courses")
	courses.GET("", h.Courses.List)
	courses.POST("", audit("create", "course"), h.Courses.Create)
	courses.GET("/enrolled", h.Courses.Enrolled)
	courses.GET("/available", h.Courses.Available)
	courses.GET("/:id", h.Courses.Get)
	courses.PUT("/:id", audit("update", "course"), h.Courses.Update)
	courses.DELETE("/:id", audit("delete", "course"), h.Courses.Delete)
	courses.POST("/:id/enroll", audit("enroll", "course"), h.Courses.Enroll)
	courses.POST("/:id/drop", audit("drop", "course"), h.Courses.Drop)

	grades := secured.Group("/grades")
	grades.GET("", h.Grades.List)
	grades.POST("", audit("create", "grade"), h.Grades.Create)
	grades.GET("/gpa", h.Grades.GPA)
	grades.GET("/semesters", h.Grades.Semesters)
	grades.GET("/transcript", h.Grades.Transcript)
	grades.GET("/:id", h.Grades.Get)
	grades.PUT("/:id", audit("update", "grade"), h.Grades.Update)
	grades.DELETE("/:id", audit("delete", "grade"), h.Grades.Delete)

	events := secured.Group("/events")
	events.GET("", h.Events.List)
	events.POST("", audit("create", "event"), h.Events.Create)
	events.GET("/upcoming", h.Events.Upcoming)
	events.GET("/deadlines", h.Events.Deadlines)
	events.GET("/today", h.Events.Today)
	events.GET("/:id", h.Events.Get)
	events.PUT("/:id", audit("update", "event"), h.Events.Update)
	events.DELETE("/:id", audit("delete", "event"), h.Events.Delete)

	announcements := secured.Group("/announcements")
	announcements.GET("", h.Announcements.List)
	announcements.POST("", audit("create", "announcement"), h.Announcements.Create)
	announcements.GET("/recent", h.Announcements.Recent)
	announcements.POST("/read-all", audit("mark_all_read", "announcement"), h.Announcements.MarkAllRead)
	announcements.GET("/:id", h.Announcements.Get)
	announcements.PUT("/:id", audit("update", "announcement"), h.Announcements.Update)
	announcements.DELETE("/:id", audit("delete", "announcement"), h.Announcements.Delete)
	announcements.POST("/:id/read", audit("mark_read", "announcement"), h.Announcements.MarkRead)

	exports := secured.Group("/exports")
	exports.POST("/transcript", audit("request_export", "transcript"), h.Exports.Request)
	exports.GET("/:id", h.Exports.Status)

	return r
}

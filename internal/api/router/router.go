package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aaronpaddy/smart-course-scheduler/config"
	"github.com/aaronpaddy/smart-course-scheduler/internal/api/handler"
	"github.com/aaronpaddy/smart-course-scheduler/internal/api/middleware"
	"github.com/aaronpaddy/smart-course-scheduler/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(8 << 20)) // 8MB，覆盖课程数据集上传

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 课程模块
		courses := v1.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.GET("/:id", h.Course.GetCourse)
			courses.POST("", h.Course.CreateCourse)
			courses.POST("/import",
				middleware.RateLimit(rdb, 10, time.Minute), h.Course.ImportCourses)
			courses.GET("/export", h.Course.ExportCourses)
			courses.DELETE("", h.Course.ClearCourses)
		}

		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("", h.User.CreateUser)
			users.GET("/:id", h.User.GetUser)
			users.PUT("/:id", h.User.UpdateUser)
			users.GET("/:id/preferences", h.User.GetPreferences)
			users.PUT("/:id/preferences", h.User.UpdatePreferences)
			users.GET("/:id/schedules", h.User.ListSchedules)
		}

		// 选课模块
		schedules := v1.Group("/schedules")
		{
			schedules.POST("/generate", h.Schedule.GenerateSchedule)
			schedules.POST("/check-conflicts", h.Schedule.CheckConflicts)
			schedules.GET("/:id", h.Schedule.GetSchedule)
			schedules.PUT("/:id", h.Schedule.UpdateSchedule)
			schedules.DELETE("/:id", h.Schedule.DeleteSchedule)
			schedules.GET("/:id/weekly", h.Schedule.GetWeeklyView)
			schedules.GET("/:id/export.ics", h.Export.ExportICS)
			schedules.GET("/:id/export.xlsx", h.Export.ExportXLSX)
		}

		// 培养方案模块
		v1.GET("/requirements/:major", h.Requirement.GetRequirements)
	}

	return r
}

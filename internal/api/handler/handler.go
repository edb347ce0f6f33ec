package handler

import "github.com/aaronpaddy/smart-course-scheduler/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Course      *CourseHandler
	User        *UserHandler
	Schedule    *ScheduleHandler
	Export      *ExportHandler
	Requirement *RequirementHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Course:      NewCourseHandler(svc.Course),
		User:        NewUserHandler(svc.User, svc.Schedule),
		Schedule:    NewScheduleHandler(svc.Schedule),
		Export:      NewExportHandler(svc.Export),
		Requirement: NewRequirementHandler(svc.Requirement),
	}
}

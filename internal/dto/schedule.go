package dto

import (
	"github.com/aaronpaddy/smart-course-scheduler/internal/model"
	"github.com/aaronpaddy/smart-course-scheduler/internal/scheduler"
)

// GenerateScheduleRequest 生成选课表请求
type GenerateScheduleRequest struct {
	UserID     uint   `json:"user_id" binding:"required"`
	Semester   string `json:"semester" binding:"required,oneof=Fall Spring"`
	Year       int    `json:"year" binding:"required,min=2000,max=2100"`
	MaxCredits int    `json:"max_credits" binding:"omitempty,min=1,max=30"`
}

// UpdateScheduleRequest 手动调整选课表请求
// ForceUpdate 为 true 时允许带冲突保存，响应中附告警
type UpdateScheduleRequest struct {
	CourseIDs   []uint `json:"course_ids" binding:"required"`
	ForceUpdate bool   `json:"force_update"`
}

// RejectedCourse 落选课程及其冲突对端
type RejectedCourse struct {
	Course           *model.Course `json:"course"`
	ConflictingCodes []string      `json:"conflicting_codes"`
	Reasons          []string      `json:"reasons,omitempty"`
}

// SelectedCourse 入选课程及入选理由
type SelectedCourse struct {
	Course  *model.Course `json:"course"`
	Reasons []string      `json:"reasons"`
}

// ScheduleResponse 选课表详情响应
type ScheduleResponse struct {
	ID           uint             `json:"id"`
	UserID       uint             `json:"user_id"`
	Semester     string           `json:"semester"`
	Year         int              `json:"year"`
	TotalCredits int              `json:"total_credits"`
	Courses      []*model.Course  `json:"courses"`
	Selected     []SelectedCourse `json:"selected,omitempty"`
	Rejected     []RejectedCourse `json:"rejected,omitempty"`
	Warnings     []string         `json:"warnings,omitempty"`
}

// WeeklyViewResponse 周视图响应
type WeeklyViewResponse struct {
	ScheduleID   uint                               `json:"schedule_id"`
	Semester     string                             `json:"semester"`
	Year         int                                `json:"year"`
	TotalCredits int                                `json:"total_credits"`
	Days         map[string][]scheduler.WeeklyEntry `json:"days"`
}

// ConflictCheckRequest 外部课表冲突校验请求
type ConflictCheckRequest struct {
	CourseIDs []uint `json:"course_ids" binding:"required,min=1"`
}

// ConflictCheckResponse 冲突校验响应
type ConflictCheckResponse struct {
	HasConflicts bool                 `json:"has_conflicts"`
	Conflicts    []scheduler.Conflict `json:"conflicts"`
}

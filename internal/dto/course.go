package dto

import "github.com/aaronpaddy/smart-course-scheduler/internal/model"

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Code        string           `json:"code" binding:"required,max=20"`
	Name        string           `json:"name" binding:"required,max=200"`
	Credits     int              `json:"credits" binding:"required,min=0,max=20"`
	Department  string           `json:"department" binding:"max=100"`
	Description string           `json:"description"`
	Semester    string           `json:"semester" binding:"omitempty,oneof=Fall Spring Both"`
	Year        *int             `json:"year"`
	TimeSlots   []model.TimeSlot `json:"time_slots"`
	MaxCapacity int              `json:"max_capacity" binding:"min=0"`
}

// ListCoursesQuery 课程列表查询参数
type ListCoursesQuery struct {
	Semester   string `form:"semester" binding:"omitempty,oneof=Fall Spring Both"`
	Department string `form:"department"`
	Search     string `form:"search"`
}

// ImportResult 课程导入结果
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

package dto

import "github.com/aaronpaddy/smart-course-scheduler/internal/model"

// CreateUserRequest 创建学生账号请求
type CreateUserRequest struct {
	Username       string             `json:"username" binding:"required,min=3,max=80"`
	Email          string             `json:"email" binding:"required,email,max=120"`
	Major          string             `json:"major" binding:"max=100"`
	GraduationYear *int               `json:"graduation_year"`
	Preferences    *model.Preferences `json:"preferences"`
}

// UpdateUserRequest 更新学生账号请求；指针字段缺省表示不修改
type UpdateUserRequest struct {
	Email          *string `json:"email" binding:"omitempty,email,max=120"`
	Major          *string `json:"major" binding:"omitempty,max=100"`
	GraduationYear *int    `json:"graduation_year"`
}

// UpdatePreferencesRequest 更新选课偏好请求
type UpdatePreferencesRequest struct {
	Preferences model.Preferences `json:"preferences" binding:"required"`
}

// PreferencesResponse 偏好查询响应，附带专业培养方案（可能为空）
type PreferencesResponse struct {
	UserID                 uint              `json:"user_id"`
	Preferences            model.Preferences `json:"preferences"`
	Major                  string            `json:"major"`
	GraduationYear         *int              `json:"graduation_year"`
	CurriculumRequirements interface{}       `json:"curriculum_requirements"`
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/aaronpaddy/smart-course-scheduler/internal/dto"
	"github.com/aaronpaddy/smart-course-scheduler/internal/service"
	"github.com/aaronpaddy/smart-course-scheduler/pkg/response"
)

// UserHandler 用户模块 Handler
type UserHandler struct {
	svc         service.UserService
	scheduleSvc service.ScheduleService
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(svc service.UserService, scheduleSvc service.ScheduleService) *UserHandler {
	return &UserHandler{svc: svc, scheduleSvc: scheduleSvc}
}

// CreateUser 创建学生账号
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12000, err.Error())
		return
	}

	user, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.Created(c, user)
}

// GetUser 查询学生账号
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.OK(c, user)
}

// UpdateUser 更新学生账号
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12000, err.Error())
		return
	}

	user, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.OK(c, user)
}

// GetPreferences 查询选课偏好与培养方案
// GET /api/v1/users/:id/preferences
func (h *UserHandler) GetPreferences(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.svc.GetPreferences(c.Request.Context(), id)
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.OK(c, resp)
}

// UpdatePreferences 更新选课偏好
// PUT /api/v1/users/:id/preferences
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12000, err.Error())
		return
	}

	user, err := h.svc.UpdatePreferences(c.Request.Context(), id, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.OK(c, gin.H{
		"message":     "偏好更新成功",
		"preferences": user.Preferences,
	})
}

// ListSchedules 查询学生的全部选课表
// GET /api/v1/users/:id/schedules
func (h *UserHandler) ListSchedules(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	schedules, err := h.scheduleSvc.ListByUser(c.Request.Context(), id)
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.OK(c, schedules)
}

// handleUserError 统一用户模块错误映射
func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrUsernameExists):
		response.Conflict(c, 12002, err.Error())
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 12003, err.Error())
	default:
		response.InternalError(c)
	}
}

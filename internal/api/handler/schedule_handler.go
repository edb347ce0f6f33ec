package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aaronpaddy/smart-course-scheduler/internal/dto"
	"github.com/aaronpaddy/smart-course-scheduler/internal/service"
	"github.com/aaronpaddy/smart-course-scheduler/pkg/response"
)

// ScheduleHandler 选课模块 Handler
type ScheduleHandler struct {
	svc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler 实例
func NewScheduleHandler(svc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// GenerateSchedule 生成选课表
// POST /api/v1/schedules/generate
func (h *ScheduleHandler) GenerateSchedule(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13000, err.Error())
		return
	}

	resp, err := h.svc.Generate(c.Request.Context(), &req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Created(c, resp)
}

// GetSchedule 查询选课表详情
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.OK(c, resp)
}

// UpdateSchedule 手动调整选课表
// PUT /api/v1/schedules/:id
// force_update 为 true 时允许带冲突保存
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13000, err.Error())
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.OK(c, resp)
}

// DeleteSchedule 删除选课表
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleScheduleError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "选课表已删除"})
}

// GetWeeklyView 查询周视图
// GET /api/v1/schedules/:id/weekly
func (h *ScheduleHandler) GetWeeklyView(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.svc.WeeklyView(c.Request.Context(), id)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.OK(c, view)
}

// CheckConflicts 校验任意课程组合的时间冲突
// POST /api/v1/schedules/check-conflicts
func (h *ScheduleHandler) CheckConflicts(c *gin.Context) {
	var req dto.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13000, err.Error())
		return
	}

	resp, err := h.svc.CheckConflicts(c.Request.Context(), &req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.OK(c, resp)
}

// handleScheduleError 统一选课模块错误映射
func handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 13001, service.ErrUserNotFound.Error())
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13002, err.Error())
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13003, service.ErrCourseNotFound.Error())
	case errors.Is(err, service.ErrNoCandidateCourses):
		response.BadRequest(c, 13004, err.Error())
	case errors.Is(err, service.ErrScheduleConflicts):
		response.ErrorWithDetails(c, http.StatusConflict, 13005,
			service.ErrScheduleConflicts.Error(), err.Error())
	default:
		response.InternalError(c)
	}
}

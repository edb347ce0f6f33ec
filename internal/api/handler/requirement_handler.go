package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/aaronpaddy/smart-course-scheduler/internal/service"
	"github.com/aaronpaddy/smart-course-scheduler/pkg/response"
)

// RequirementHandler 培养方案模块 Handler
type RequirementHandler struct {
	svc service.RequirementService
}

// NewRequirementHandler 创建 RequirementHandler 实例
func NewRequirementHandler(svc service.RequirementService) *RequirementHandler {
	return &RequirementHandler{svc: svc}
}

// GetRequirements 按专业查询培养方案
// GET /api/v1/requirements/:major
func (h *RequirementHandler) GetRequirements(c *gin.Context) {
	major := c.Param("major")
	if major == "" {
		response.BadRequest(c, 14000, "专业名称不能为空")
		return
	}

	degree, err := h.svc.Get(c.Request.Context(), major)
	if err != nil {
		if errors.Is(err, service.ErrMajorNotFound) {
			response.NotFound(c, 14001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, degree)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aaronpaddy/smart-course-scheduler/internal/dto"
	"github.com/aaronpaddy/smart-course-scheduler/internal/service"
	"github.com/aaronpaddy/smart-course-scheduler/pkg/response"
)

// CourseHandler 课程模块 Handler
type CourseHandler struct {
	svc service.CourseService
}

// NewCourseHandler 创建 CourseHandler 实例
func NewCourseHandler(svc service.CourseService) *CourseHandler {
	return &CourseHandler{svc: svc}
}

// ListCourses 查询课程列表
// GET /api/v1/courses?semester=&department=&search=
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var query dto.ListCoursesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 11000, err.Error())
		return
	}

	courses, err := h.svc.List(c.Request.Context(), &query)
	if err != nil {
		handleCourseError(c, err)
		return
	}
	response.OK(c, courses)
}

// GetCourse 查询单门课程
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handleCourseError(c, err)
		return
	}
	response.OK(c, course)
}

// CreateCourse 创建课程
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11000, err.Error())
		return
	}

	course, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleCourseError(c, err)
		return
	}
	response.Created(c, course)
}

// ImportCourses 从 CSV / JSON 数据集导入课程
// POST /api/v1/courses/import
// multipart/form-data, field="file"
func (h *CourseHandler) ImportCourses(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 11004, "请上传课程数据集文件")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		response.BadRequest(c, 11004, "请上传课程数据集文件")
		return
	}

	result, err := h.svc.Import(c.Request.Context(), header.Filename, file)
	if err != nil {
		handleCourseError(c, err)
		return
	}
	response.OK(c, result)
}

// ExportCourses 导出全部课程为 CSV
// GET /api/v1/courses/export
func (h *CourseHandler) ExportCourses(c *gin.Context) {
	buf, filename, err := h.svc.ExportCSV(c.Request.Context())
	if err != nil {
		handleCourseError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ClearCourses 清空全部课程
// DELETE /api/v1/courses
func (h *CourseHandler) ClearCourses(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context()); err != nil {
		handleCourseError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "全部课程已清空"})
}

// handleCourseError 统一课程模块错误映射
func handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 11001, err.Error())
	case errors.Is(err, service.ErrCourseCodeExists):
		response.Conflict(c, 11002, err.Error())
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.BadRequest(c, 11003, err.Error())
	case errors.Is(err, service.ErrNoValidCourses):
		response.BadRequest(c, 11005, err.Error())
	default:
		response.InternalError(c)
	}
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aaronpaddy/smart-course-scheduler/pkg/response"
)

// MustGetIDParam 从路径参数中安全提取数字 ID。
// 解析失败时写入 400 响应并返回 false，调用方应直接 return。
func MustGetIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "无效的 "+name+" 参数")
		return 0, false
	}
	return uint(id), true
}

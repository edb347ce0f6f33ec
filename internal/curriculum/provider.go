package curriculum

import (
	"context"
	"errors"

	"github.com/aaronpaddy/smart-course-scheduler/internal/scheduler"
)

// ── 培养方案提供方 ──────────────────────────────────────────
//
// 培养方案来自外部院系服务，这里按"装饰器链"组织：
//   HTTPProvider    远端院系服务
//   CachedProvider  Redis 缓存装饰
//   StaticProvider  内置目录，远端不可用时的兜底
// ─────────────────────────────────────────────────────────────

// ErrMajorNotFound 专业不存在
var ErrMajorNotFound = errors.New("未找到该专业的培养方案")

// Degree 一个专业的完整培养方案
type Degree struct {
	Major               string              `json:"major,omitempty"`
	TotalCredits        int                 `json:"total_credits"`
	CoreCourses         []string            `json:"core_courses"`
	MathRequirements    []string            `json:"math_requirements"`
	ScienceRequirements []string            `json:"science_requirements"`
	GeneralEducation    []string            `json:"general_education"`
	Electives           int                 `json:"electives"`
	SemesterBreakdown   map[string][]string `json:"semester_breakdown,omitempty"`
}

// ToEngine 转换为引擎打分用的四桶结构
func (d *Degree) ToEngine() *scheduler.Requirements {
	if d == nil {
		return nil
	}
	return &scheduler.Requirements{
		CoreCourses:         d.CoreCourses,
		MathRequirements:    d.MathRequirements,
		ScienceRequirements: d.ScienceRequirements,
		GeneralEducation:    d.GeneralEducation,
	}
}

// Provider 培养方案查询接口
type Provider interface {
	// Requirements 按专业名查询培养方案；专业不存在时返回 ErrMajorNotFound
	Requirements(ctx context.Context, major string) (*Degree, error)
}

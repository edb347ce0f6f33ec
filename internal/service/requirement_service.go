package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aaronpaddy/smart-course-scheduler/internal/curriculum"
)

// ErrMajorNotFound 专业不存在
var ErrMajorNotFound = curriculum.ErrMajorNotFound

// RequirementService 培养方案查询业务接口
type RequirementService interface {
	Get(ctx context.Context, major string) (*curriculum.Degree, error)
}

type requirementService struct {
	provider curriculum.Provider
	logger   *zap.Logger
}

// NewRequirementService 创建 RequirementService 实例
func NewRequirementService(provider curriculum.Provider, logger *zap.Logger) RequirementService {
	return &requirementService{provider: provider, logger: logger}
}

func (s *requirementService) Get(ctx context.Context, major string) (*curriculum.Degree, error) {
	degree, err := s.provider.Requirements(ctx, major)
	if err != nil {
		if errors.Is(err, curriculum.ErrMajorNotFound) {
			return nil, ErrMajorNotFound
		}
		s.logger.Error("培养方案查询失败", zap.String("major", major), zap.Error(err))
		return nil, err
	}
	return degree, nil
}

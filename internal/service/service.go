package service

import (
	"go.uber.org/zap"

	"github.com/aaronpaddy/smart-course-scheduler/config"
	"github.com/aaronpaddy/smart-course-scheduler/internal/curriculum"
	"github.com/aaronpaddy/smart-course-scheduler/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Course      CourseService
	User        UserService
	Schedule    ScheduleService
	Export      ExportService
	Requirement RequirementService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repositories,
	provider curriculum.Provider,
	logger *zap.Logger,
) *Service {
	return &Service{
		Course:      NewCourseService(repo, logger),
		User:        NewUserService(repo, provider, logger),
		Schedule:    NewScheduleService(cfg, repo, provider, logger),
		Export:      NewExportService(cfg, repo, logger),
		Requirement: NewRequirementService(provider, logger),
	}
}

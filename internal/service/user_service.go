package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aaronpaddy/smart-course-scheduler/internal/curriculum"
	"github.com/aaronpaddy/smart-course-scheduler/internal/dto"
	"github.com/aaronpaddy/smart-course-scheduler/internal/model"
	"github.com/aaronpaddy/smart-course-scheduler/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound   = errors.New("用户不存在")
	ErrUsernameExists = errors.New("用户名已被占用")
	ErrEmailExists    = errors.New("邮箱已被注册")
)

// UserService 学生账号业务接口
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*model.User, error)
	// GetPreferences 查询选课偏好，专业已设置时附带培养方案；
	// 培养方案查询失败只降级不报错
	GetPreferences(ctx context.Context, id uint) (*dto.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, id uint, req *dto.UpdatePreferencesRequest) (*model.User, error)
}

type userService struct {
	repo     *repository.Repositories
	provider curriculum.Provider
	logger   *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repositories, provider curriculum.Provider, logger *zap.Logger) UserService {
	return &userService{repo: repo, provider: provider, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*model.User, error) {
	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		Major:          req.Major,
		GraduationYear: req.GraduationYear,
	}
	if req.Preferences != nil {
		user.Preferences = *req.Preferences
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户创建成功", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Uint("user_id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.User.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Major != nil {
		user.Major = *req.Major
	}
	if req.GraduationYear != nil {
		user.GraduationYear = req.GraduationYear
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.Uint("user_id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *userService) GetPreferences(ctx context.Context, id uint) (*dto.PreferencesResponse, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.PreferencesResponse{
		UserID:         user.ID,
		Preferences:    user.Preferences,
		Major:          user.Major,
		GraduationYear: user.GraduationYear,
	}

	if user.Major != "" {
		degree, err := s.provider.Requirements(ctx, user.Major)
		if err == nil {
			resp.CurriculumRequirements = degree
		} else if !errors.Is(err, curriculum.ErrMajorNotFound) {
			s.logger.Warn("培养方案查询失败，偏好响应降级",
				zap.String("major", user.Major), zap.Error(err))
		}
	}

	return resp, nil
}

func (s *userService) UpdatePreferences(ctx context.Context, id uint, req *dto.UpdatePreferencesRequest) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Preferences = req.Preferences
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新偏好失败", zap.Uint("user_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("偏好更新成功", zap.Uint("user_id", id))
	return user, nil
}

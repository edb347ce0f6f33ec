package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/aaronpaddy/smart-course-scheduler/internal/curriculum"
	"github.com/aaronpaddy/smart-course-scheduler/internal/dto"
	"github.com/aaronpaddy/smart-course-scheduler/internal/model"
)

func newTestUserService() (UserService, *mockUserRepo) {
	repos, userRepo, _, _ := newMockRepos()
	svc := NewUserService(repos, curriculum.NewStaticProvider(), zap.NewNop())
	return svc, userRepo
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	req := &dto.CreateUserRequest{Username: "alice", Email: "a@example.com"}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}

	req2 := &dto.CreateUserRequest{Username: "alice", Email: "b@example.com"}
	if _, err := svc.Create(ctx, req2); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("重复用户名应返回 ErrUsernameExists，实际 %v", err)
	}

	req3 := &dto.CreateUserRequest{Username: "bob", Email: "a@example.com"}
	if _, err := svc.Create(ctx, req3); !errors.Is(err, ErrEmailExists) {
		t.Errorf("重复邮箱应返回 ErrEmailExists，实际 %v", err)
	}
}

func TestUserUpdate_PartialFields(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	user, err := svc.Create(ctx, &dto.CreateUserRequest{
		Username: "alice", Email: "a@example.com", Major: "Mathematics",
	})
	if err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	major := "Computer Science"
	updated, err := svc.Update(ctx, user.ID, &dto.UpdateUserRequest{Major: &major})
	if err != nil {
		t.Fatalf("更新用户失败: %v", err)
	}
	if updated.Major != "Computer Science" {
		t.Errorf("专业未更新: %s", updated.Major)
	}
	if updated.Email != "a@example.com" {
		t.Errorf("未指定的字段不应变化: %s", updated.Email)
	}
}

func TestGetPreferences_WithCurriculum(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	user, _ := svc.Create(ctx, &dto.CreateUserRequest{
		Username: "alice", Email: "a@example.com", Major: "Computer Science",
		Preferences: &model.Preferences{PreferredDepartments: []string{"CS"}},
	})

	resp, err := svc.GetPreferences(ctx, user.ID)
	if err != nil {
		t.Fatalf("查询偏好失败: %v", err)
	}
	if resp.CurriculumRequirements == nil {
		t.Error("专业已设置时应附带培养方案")
	}
	if len(resp.Preferences.PreferredDepartments) != 1 {
		t.Errorf("偏好内容错误: %+v", resp.Preferences)
	}
}

func TestGetPreferences_DegradesOnProviderFailure(t *testing.T) {
	repos, _, _, _ := newMockRepos()
	svc := NewUserService(repos, brokenProvider{}, zap.NewNop())
	ctx := context.Background()

	user, _ := svc.Create(ctx, &dto.CreateUserRequest{
		Username: "alice", Email: "a@example.com", Major: "Computer Science",
	})

	resp, err := svc.GetPreferences(ctx, user.ID)
	if err != nil {
		t.Fatalf("培养方案不可用时偏好查询应降级成功: %v", err)
	}
	if resp.CurriculumRequirements != nil {
		t.Error("降级响应的培养方案应为空")
	}
}

func TestUpdatePreferences(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	user, _ := svc.Create(ctx, &dto.CreateUserRequest{Username: "alice", Email: "a@example.com"})

	updated, err := svc.UpdatePreferences(ctx, user.ID, &dto.UpdatePreferencesRequest{
		Preferences: model.Preferences{
			CompletedCourses: []string{"CS101"},
			PreferredTimes:   []string{"09:"},
		},
	})
	if err != nil {
		t.Fatalf("更新偏好失败: %v", err)
	}
	if len(updated.Preferences.CompletedCourses) != 1 || updated.Preferences.CompletedCourses[0] != "CS101" {
		t.Errorf("偏好未保存: %+v", updated.Preferences)
	}

	if _, err := svc.UpdatePreferences(ctx, 99, &dto.UpdatePreferencesRequest{}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("不存在的用户应返回 ErrUserNotFound，实际 %v", err)
	}
}

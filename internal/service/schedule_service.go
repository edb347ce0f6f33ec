package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aaronpaddy/smart-course-scheduler/config"
	"github.com/aaronpaddy/smart-course-scheduler/internal/curriculum"
	"github.com/aaronpaddy/smart-course-scheduler/internal/dto"
	"github.com/aaronpaddy/smart-course-scheduler/internal/model"
	"github.com/aaronpaddy/smart-course-scheduler/internal/repository"
	"github.com/aaronpaddy/smart-course-scheduler/internal/scheduler"
)

// ── 选课模块业务错误 ──

var (
	ErrScheduleNotFound   = errors.New("选课表不存在")
	ErrNoCandidateCourses = errors.New("该学期没有可选课程")
	ErrScheduleConflicts  = errors.New("课程时间冲突")
)

// ScheduleService 选课业务接口
type ScheduleService interface {
	// Generate 为指定用户生成一学期的选课表。
	// 同一 (用户, 学期, 年份) 已有选课表时整体替换。
	Generate(ctx context.Context, req *dto.GenerateScheduleRequest) (*dto.ScheduleResponse, error)
	Get(ctx context.Context, id uint) (*dto.ScheduleResponse, error)
	// Update 手动调整选课表的课程集合。
	// 任一课程 ID 无效时整体拒绝；存在时间冲突且未指定强制保存时
	// 返回 ErrScheduleConflicts，强制保存则在响应中附告警。
	Update(ctx context.Context, id uint, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint) ([]model.Schedule, error)
	WeeklyView(ctx context.Context, id uint) (*dto.WeeklyViewResponse, error)
	// CheckConflicts 对任意课程组合做冲突校验，不落库
	CheckConflicts(ctx context.Context, req *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error)
}

type scheduleService struct {
	cfg      *config.Config
	repo     *repository.Repositories
	provider curriculum.Provider
	logger   *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(
	cfg *config.Config,
	repo *repository.Repositories,
	provider curriculum.Provider,
	logger *zap.Logger,
) ScheduleService {
	return &scheduleService{cfg: cfg, repo: repo, provider: provider, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Generate — 生成选课表
// ═══════════════════════════════════════════════════════════
//
// 流程：
//  1. 校验用户存在（不自动创建默认用户）
//  2. 拉取该学期候选课程（含 "Both" 学期课程）
//  3. 专业已设置时查询培养方案，查询失败降级为无方案打分
//  4. 引擎排序 + 贪心选课
//  5. 持久化：已有同学期选课表时整体替换，否则新建

func (s *scheduleService) Generate(ctx context.Context, req *dto.GenerateScheduleRequest) (*dto.ScheduleResponse, error) {
	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Uint("user_id", req.UserID), zap.Error(err))
		return nil, err
	}

	candidates, err := s.repo.Course.List(ctx, repository.CourseFilter{Semester: req.Semester})
	if err != nil {
		s.logger.Error("查询候选课程失败", zap.Error(err))
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidateCourses
	}

	byCode := make(map[string]*model.Course, len(candidates))
	engineCourses := make([]scheduler.Course, len(candidates))
	for i := range candidates {
		byCode[candidates[i].Code] = &candidates[i]
		engineCourses[i] = candidates[i].ToEngine()
	}

	profile := user.ToProfile()
	requirements := s.lookupRequirements(ctx, user.Major)

	maxCredits := req.MaxCredits
	if maxCredits <= 0 {
		maxCredits = s.cfg.Scheduler.DefaultMaxCredits
	}

	ranked := scheduler.Rank(engineCourses, profile, requirements)
	selection := scheduler.Select(ranked, maxCredits)

	courseIDs := make([]uint, len(selection.Selected))
	for i, c := range selection.Selected {
		courseIDs[i] = byCode[c.Code].ID
	}

	schedule, err := s.persistSelection(ctx, user.ID, req.Semester, req.Year, courseIDs, selection.TotalCredits)
	if err != nil {
		s.logger.Error("保存选课表失败", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("选课表生成成功",
		zap.Uint("schedule_id", schedule.ID),
		zap.Uint("user_id", user.ID),
		zap.String("semester", req.Semester),
		zap.Int("year", req.Year),
		zap.Int("selected", len(selection.Selected)),
		zap.Int("rejected", len(selection.Rejected)),
		zap.Int("total_credits", selection.TotalCredits))

	resp := &dto.ScheduleResponse{
		ID:           schedule.ID,
		UserID:       user.ID,
		Semester:     req.Semester,
		Year:         req.Year,
		TotalCredits: selection.TotalCredits,
	}
	for _, c := range selection.Selected {
		course := byCode[c.Code]
		resp.Courses = append(resp.Courses, course)
		resp.Selected = append(resp.Selected, dto.SelectedCourse{
			Course:  course,
			Reasons: scheduler.ExplainSelection(c, profile, requirements),
		})
	}
	for _, rej := range selection.Rejected {
		resp.Rejected = append(resp.Rejected, dto.RejectedCourse{
			Course:           byCode[rej.Course.Code],
			ConflictingCodes: rej.ConflictingCodes,
		})
	}
	return resp, nil
}

// lookupRequirements 查询培养方案；失败时降级为 nil，引擎退回无方案打分
func (s *scheduleService) lookupRequirements(ctx context.Context, major string) *scheduler.Requirements {
	if major == "" {
		return nil
	}
	degree, err := s.provider.Requirements(ctx, major)
	if err != nil {
		if !errors.Is(err, curriculum.ErrMajorNotFound) {
			s.logger.Warn("培养方案查询失败，按无方案生成",
				zap.String("major", major), zap.Error(err))
		}
		return nil
	}
	return degree.ToEngine()
}

// persistSelection 落库选课结果；同学期已有选课表时整体替换
func (s *scheduleService) persistSelection(ctx context.Context, userID uint, semester string, year int, courseIDs []uint, totalCredits int) (*model.Schedule, error) {
	existing, err := s.repo.Schedule.GetByUserAndTerm(ctx, userID, semester, year)
	if err == nil {
		if err := s.repo.Schedule.ReplaceCourses(ctx, existing.ID, courseIDs, totalCredits); err != nil {
			return nil, err
		}
		existing.TotalCredits = totalCredits
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	schedule := &model.Schedule{
		UserID:       userID,
		Semester:     semester,
		Year:         year,
		TotalCredits: totalCredits,
	}
	if err := s.repo.Schedule.Create(ctx, schedule, courseIDs); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) Get(ctx context.Context, id uint) (*dto.ScheduleResponse, error) {
	schedule, err := s.getSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.ScheduleResponse{
		ID:           schedule.ID,
		UserID:       schedule.UserID,
		Semester:     schedule.Semester,
		Year:         schedule.Year,
		TotalCredits: schedule.TotalCredits,
	}
	for _, sc := range schedule.Courses {
		if sc.Course != nil {
			resp.Courses = append(resp.Courses, sc.Course)
		}
	}
	return resp, nil
}

func (s *scheduleService) Update(ctx context.Context, id uint, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule, err := s.getSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	courseIDs := uniqueIDs(req.CourseIDs)
	courses, err := s.repo.Course.GetByIDs(ctx, courseIDs)
	if err != nil {
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}
	// 任一 ID 无效时整体拒绝，不做部分应用
	if len(courses) != len(courseIDs) {
		return nil, ErrCourseNotFound
	}

	byID := make(map[uint]*model.Course, len(courses))
	for i := range courses {
		byID[courses[i].ID] = &courses[i]
	}

	ordered := make([]*model.Course, 0, len(courseIDs))
	engineCourses := make([]scheduler.Course, 0, len(courseIDs))
	totalCredits := 0
	for _, courseID := range courseIDs {
		course, ok := byID[courseID]
		if !ok {
			return nil, ErrCourseNotFound
		}
		ordered = append(ordered, course)
		engineCourses = append(engineCourses, course.ToEngine())
		totalCredits += course.Credits
	}

	conflicts := scheduler.CheckConflicts(engineCourses)
	if len(conflicts) > 0 && !req.ForceUpdate {
		return nil, fmt.Errorf("%w: %s", ErrScheduleConflicts, joinConflicts(conflicts))
	}

	if err := s.repo.Schedule.ReplaceCourses(ctx, schedule.ID, courseIDs, totalCredits); err != nil {
		s.logger.Error("替换选课表课程失败", zap.Uint("schedule_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("选课表更新成功",
		zap.Uint("schedule_id", id),
		zap.Int("courses", len(ordered)),
		zap.Bool("force_update", req.ForceUpdate),
		zap.Int("conflicts", len(conflicts)))

	resp := &dto.ScheduleResponse{
		ID:           schedule.ID,
		UserID:       schedule.UserID,
		Semester:     schedule.Semester,
		Year:         schedule.Year,
		TotalCredits: totalCredits,
		Courses:      ordered,
	}
	if len(conflicts) > 0 {
		resp.Warnings = append(resp.Warnings, "选课表存在时间冲突，已按强制保存写入")
		for _, cf := range conflicts {
			resp.Warnings = append(resp.Warnings, cf.String())
		}
	}
	return resp, nil
}

func (s *scheduleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.getSchedule(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Schedule.Delete(ctx, id); err != nil {
		s.logger.Error("删除选课表失败", zap.Uint("schedule_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("选课表已删除", zap.Uint("schedule_id", id))
	return nil
}

func (s *scheduleService) ListByUser(ctx context.Context, userID uint) ([]model.Schedule, error) {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	schedules, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户选课表失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return schedules, nil
}

func (s *scheduleService) WeeklyView(ctx context.Context, id uint) (*dto.WeeklyViewResponse, error) {
	schedule, err := s.getSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	engineCourses := scheduleEngineCourses(schedule)
	return &dto.WeeklyViewResponse{
		ScheduleID:   schedule.ID,
		Semester:     schedule.Semester,
		Year:         schedule.Year,
		TotalCredits: schedule.TotalCredits,
		Days:         scheduler.BuildWeeklyView(engineCourses),
	}, nil
}

func (s *scheduleService) CheckConflicts(ctx context.Context, req *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
	courses, err := s.repo.Course.GetByIDs(ctx, req.CourseIDs)
	if err != nil {
		return nil, err
	}
	if len(courses) != len(uniqueIDs(req.CourseIDs)) {
		return nil, ErrCourseNotFound
	}

	engineCourses := make([]scheduler.Course, len(courses))
	for i := range courses {
		engineCourses[i] = courses[i].ToEngine()
	}

	conflicts := scheduler.CheckConflicts(engineCourses)
	resp := &dto.ConflictCheckResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	}
	if resp.Conflicts == nil {
		resp.Conflicts = []scheduler.Conflict{}
	}
	return resp, nil
}

func (s *scheduleService) getSchedule(ctx context.Context, id uint) (*model.Schedule, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询选课表失败", zap.Uint("schedule_id", id), zap.Error(err))
		return nil, err
	}
	return schedule, nil
}

// scheduleEngineCourses 把选课表的关联课程按入选顺序转为引擎记录
func scheduleEngineCourses(schedule *model.Schedule) []scheduler.Course {
	var engineCourses []scheduler.Course
	for _, sc := range schedule.Courses {
		if sc.Course != nil {
			engineCourses = append(engineCourses, sc.Course.ToEngine())
		}
	}
	return engineCourses
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}

func joinConflicts(conflicts []scheduler.Conflict) string {
	parts := make([]string, len(conflicts))
	for i, cf := range conflicts {
		parts[i] = cf.String()
	}
	return strings.Join(parts, "; ")
}

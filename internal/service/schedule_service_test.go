package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/aaronpaddy/smart-course-scheduler/config"
	"github.com/aaronpaddy/smart-course-scheduler/internal/curriculum"
	"github.com/aaronpaddy/smart-course-scheduler/internal/dto"
	"github.com/aaronpaddy/smart-course-scheduler/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		Scheduler: config.SchedulerConfig{
			DefaultMaxCredits: 18,
			TermStart:         "2025-09-01",
		},
	}
}

func intPtr(n int) *int { return &n }

func mondayCourse(code, name string, credits int, dept, start, end string) model.Course {
	return model.Course{
		Code: code, Name: name, Credits: credits, Department: dept,
		Semester: "Fall", Year: intPtr(2025),
		TimeSlots: model.TimeSlots{{Day: "Monday", StartTime: start, EndTime: end, Room: "101"}},
	}
}

func newTestScheduleService() (ScheduleService, *mockUserRepo, *mockCourseRepo, *mockScheduleRepo) {
	repos, userRepo, courseRepo, scheduleRepo := newMockRepos()
	svc := NewScheduleService(testConfig(), repos, curriculum.NewStaticProvider(), zap.NewNop())
	return svc, userRepo, courseRepo, scheduleRepo
}

func TestGenerate_UserNotFound(t *testing.T) {
	svc, _, _, _ := newTestScheduleService()

	_, err := svc.Generate(context.Background(), &dto.GenerateScheduleRequest{
		UserID: 42, Semester: "Fall", Year: 2025,
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("不存在的用户应返回 ErrUserNotFound，实际 %v", err)
	}
}

func TestGenerate_NoCandidates(t *testing.T) {
	svc, userRepo, _, _ := newTestScheduleService()
	userRepo.Create(context.Background(), &model.User{Username: "alice", Email: "a@example.com"})

	_, err := svc.Generate(context.Background(), &dto.GenerateScheduleRequest{
		UserID: 1, Semester: "Fall", Year: 2025,
	})
	if !errors.Is(err, ErrNoCandidateCourses) {
		t.Errorf("无候选课程应返回 ErrNoCandidateCourses，实际 %v", err)
	}
}

func TestGenerate_SelectsAndPersists(t *testing.T) {
	svc, userRepo, courseRepo, scheduleRepo := newTestScheduleService()
	ctx := context.Background()

	userRepo.Create(ctx, &model.User{
		Username: "alice", Email: "a@example.com", Major: "Computer Science",
		Preferences: model.Preferences{PreferredDepartments: []string{"CS"}},
	})

	courseRepo.add(mondayCourse("CS225", "Data Structures", 4, "CS", "09:00", "10:30"))
	courseRepo.add(mondayCourse("MATH241", "Calculus III", 4, "MATH", "10:00", "11:30"))
	courseRepo.add(model.Course{
		Code: "PHYS211", Name: "University Physics Mechanics", Credits: 4, Department: "PHYS",
		Semester: "Fall", Year: intPtr(2025),
		TimeSlots: model.TimeSlots{{Day: "Tuesday", StartTime: "09:00", EndTime: "10:30", Room: "201"}},
	})

	resp, err := svc.Generate(ctx, &dto.GenerateScheduleRequest{
		UserID: 1, Semester: "Fall", Year: 2025, MaxCredits: 18,
	})
	if err != nil {
		t.Fatalf("生成选课表失败: %v", err)
	}

	// CS225 因偏好院系加分排在最前；MATH241 与其周一时段冲突落选；PHYS211 入选
	if len(resp.Courses) != 2 {
		t.Fatalf("期望入选 2 门，实际 %d 门", len(resp.Courses))
	}
	if resp.Courses[0].Code != "CS225" {
		t.Errorf("核心课应优先入选，第一位实际为 %s", resp.Courses[0].Code)
	}
	if resp.TotalCredits != 8 {
		t.Errorf("总学分应为 8，实际 %d", resp.TotalCredits)
	}
	if len(resp.Rejected) != 1 || resp.Rejected[0].Course.Code != "MATH241" {
		t.Fatalf("MATH241 应因冲突落选，实际 %+v", resp.Rejected)
	}
	if len(resp.Rejected[0].ConflictingCodes) != 1 || resp.Rejected[0].ConflictingCodes[0] != "CS225" {
		t.Errorf("落选记录应标注冲突对端 CS225，实际 %v", resp.Rejected[0].ConflictingCodes)
	}
	if len(resp.Selected) != 2 || len(resp.Selected[0].Reasons) == 0 {
		t.Errorf("入选课程应附理由，实际 %+v", resp.Selected)
	}

	saved, err := scheduleRepo.GetByID(ctx, resp.ID)
	if err != nil {
		t.Fatalf("选课表未落库: %v", err)
	}
	if len(saved.Courses) != 2 || saved.TotalCredits != 8 {
		t.Errorf("落库内容错误: 课程 %d 门，学分 %d", len(saved.Courses), saved.TotalCredits)
	}
}

func TestGenerate_ReplacesExistingTermAtomically(t *testing.T) {
	svc, userRepo, courseRepo, scheduleRepo := newTestScheduleService()
	ctx := context.Background()

	userRepo.Create(ctx, &model.User{Username: "alice", Email: "a@example.com"})
	courseRepo.add(mondayCourse("CS225", "Data Structures", 4, "CS", "09:00", "10:30"))

	req := &dto.GenerateScheduleRequest{UserID: 1, Semester: "Fall", Year: 2025}
	first, err := svc.Generate(ctx, req)
	if err != nil {
		t.Fatalf("首次生成失败: %v", err)
	}

	second, err := svc.Generate(ctx, req)
	if err != nil {
		t.Fatalf("重复生成失败: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("同学期重复生成应复用同一份选课表，实际 %d / %d", first.ID, second.ID)
	}
	if len(scheduleRepo.schedules) != 1 {
		t.Errorf("同一 (用户, 学期, 年份) 只应存在一份选课表，实际 %d 份", len(scheduleRepo.schedules))
	}
	// 替换必须走仓储的单事务原子替换入口
	if len(scheduleRepo.replaceCalls) != 1 {
		t.Errorf("重复生成应触发 1 次原子替换，实际 %d 次", len(scheduleRepo.replaceCalls))
	}
}

func TestGenerate_DefaultCreditCap(t *testing.T) {
	svc, userRepo, courseRepo, _ := newTestScheduleService()
	ctx := context.Background()

	userRepo.Create(ctx, &model.User{Username: "alice", Email: "a@example.com"})
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Monday"}
	codes := []string{"CS101", "CS102", "CS103", "CS104", "CS105", "CS106"}
	for i, code := range codes {
		courseRepo.add(model.Course{
			Code: code, Name: code + " Sample Course", Credits: 4, Department: "CS",
			Semester: "Fall",
			TimeSlots: model.TimeSlots{{
				Day: days[i], StartTime: "13:00", EndTime: "14:30",
			}},
		})
	}

	resp, err := svc.Generate(ctx, &dto.GenerateScheduleRequest{
		UserID: 1, Semester: "Fall", Year: 2025,
	})
	if err != nil {
		t.Fatalf("生成选课表失败: %v", err)
	}
	// 未指定上限时使用默认 18 学分：4 学分课程最多入选 4 门
	if resp.TotalCredits > 18 {
		t.Errorf("总学分 %d 超过默认上限 18", resp.TotalCredits)
	}
	if len(resp.Courses) != 4 {
		t.Errorf("默认上限下应入选 4 门，实际 %d 门", len(resp.Courses))
	}
}

type brokenProvider struct{}

func (brokenProvider) Requirements(context.Context, string) (*curriculum.Degree, error) {
	return nil, errors.New("连接被拒绝")
}

func TestGenerate_DegradesWhenProviderFails(t *testing.T) {
	repos, userRepo, courseRepo, _ := newMockRepos()
	svc := NewScheduleService(testConfig(), repos, brokenProvider{}, zap.NewNop())
	ctx := context.Background()

	userRepo.Create(ctx, &model.User{
		Username: "alice", Email: "a@example.com", Major: "Computer Science",
	})
	courseRepo.add(mondayCourse("CS225", "Data Structures", 4, "CS", "09:00", "10:30"))

	resp, err := svc.Generate(ctx, &dto.GenerateScheduleRequest{
		UserID: 1, Semester: "Fall", Year: 2025,
	})
	if err != nil {
		t.Fatalf("培养方案服务不可用时应降级生成: %v", err)
	}
	if len(resp.Courses) != 1 {
		t.Errorf("降级生成应仍有结果，实际 %d 门", len(resp.Courses))
	}
}

func TestUpdate_InvalidCourseRejectsAll(t *testing.T) {
	svc, userRepo, courseRepo, scheduleRepo := newTestScheduleService()
	ctx := context.Background()

	userRepo.Create(ctx, &model.User{Username: "alice", Email: "a@example.com"})
	c := courseRepo.add(mondayCourse("CS225", "Data Structures", 4, "CS", "09:00", "10:30"))
	scheduleRepo.Create(ctx, &model.Schedule{UserID: 1, Semester: "Fall", Year: 2025}, []uint{c.ID})

	_, err := svc.Update(ctx, 1, &dto.UpdateScheduleRequest{CourseIDs: []uint{c.ID, 999}})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("无效课程 ID 应返回 ErrCourseNotFound，实际 %v", err)
	}
	if len(scheduleRepo.replaceCalls) != 0 {
		t.Errorf("校验失败时不应有任何写入，实际 %d 次替换", len(scheduleRepo.replaceCalls))
	}
}

func TestUpdate_ConflictWithoutForce(t *testing.T) {
	svc, userRepo, courseRepo, scheduleRepo := newTestScheduleService()
	ctx := context.Background()

	userRepo.Create(ctx, &model.User{Username: "alice", Email: "a@example.com"})
	a := courseRepo.add(mondayCourse("CS225", "Data Structures", 4, "CS", "09:00", "10:30"))
	b := courseRepo.add(mondayCourse("MATH241", "Calculus III", 4, "MATH", "10:00", "11:30"))
	scheduleRepo.Create(ctx, &model.Schedule{UserID: 1, Semester: "Fall", Year: 2025}, nil)

	_, err := svc.Update(ctx, 1, &dto.UpdateScheduleRequest{CourseIDs: []uint{a.ID, b.ID}})
	if !errors.Is(err, ErrScheduleConflicts) {
		t.Fatalf("冲突未强制保存应返回 ErrScheduleConflicts，实际 %v", err)
	}
	if len(scheduleRepo.replaceCalls) != 0 {
		t.Errorf("冲突拒绝时不应写入，实际 %d 次替换", len(scheduleRepo.replaceCalls))
	}
}

func TestUpdate_ForceSavesWithWarnings(t *testing.T) {
	svc, userRepo, courseRepo, scheduleRepo := newTestScheduleService()
	ctx := context.Background()

	userRepo.Create(ctx, &model.User{Username: "alice", Email: "a@example.com"})
	a := courseRepo.add(mondayCourse("CS225", "Data Structures", 4, "CS", "09:00", "10:30"))
	b := courseRepo.add(mondayCourse("MATH241", "Calculus III", 4, "MATH", "10:00", "11:30"))
	scheduleRepo.Create(ctx, &model.Schedule{UserID: 1, Semester: "Fall", Year: 2025}, nil)

	resp, err := svc.Update(ctx, 1, &dto.UpdateScheduleRequest{
		CourseIDs: []uint{a.ID, b.ID}, ForceUpdate: true,
	})
	if err != nil {
		t.Fatalf("强制保存失败: %v", err)
	}
	if len(resp.Warnings) == 0 {
		t.Error("强制保存冲突课表应附告警")
	}
	if resp.TotalCredits != 8 {
		t.Errorf("总学分应为 8，实际 %d", resp.TotalCredits)
	}
	if len(scheduleRepo.replaceCalls) != 1 {
		t.Errorf("强制保存应触发 1 次原子替换，实际 %d 次", len(scheduleRepo.replaceCalls))
	}
}

func TestWeeklyView(t *testing.T) {
	svc, userRepo, courseRepo, scheduleRepo := newTestScheduleService()
	ctx := context.Background()

	userRepo.Create(ctx, &model.User{Username: "alice", Email: "a@example.com"})
	c := courseRepo.add(model.Course{
		Code: "CS225", Name: "Data Structures", Credits: 4, Department: "CS",
		Semester: "Fall",
		TimeSlots: model.TimeSlots{{
			Day: "Monday,Wednesday", StartTime: "09:00", EndTime: "10:30", Room: "Siebel 1404",
		}},
	})

	schedule := &model.Schedule{UserID: 1, Semester: "Fall", Year: 2025, TotalCredits: 4}
	scheduleRepo.Create(ctx, schedule, []uint{c.ID})
	// 预加载关联课程
	schedule.Courses[0].Course = &courseRepo.courses[0]

	view, err := svc.WeeklyView(ctx, schedule.ID)
	if err != nil {
		t.Fatalf("周视图查询失败: %v", err)
	}
	if len(view.Days["Monday"]) != 1 || len(view.Days["Wednesday"]) != 1 {
		t.Errorf("多天记法应展开到周一和周三，实际 %+v", view.Days)
	}
	if len(view.Days["Friday"]) != 0 {
		t.Errorf("周五不应有课程")
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _, _ := newTestScheduleService()
	if err := svc.Delete(context.Background(), 99); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("删除不存在的选课表应返回 ErrScheduleNotFound，实际 %v", err)
	}
}

func TestCheckConflicts(t *testing.T) {
	svc, _, courseRepo, _ := newTestScheduleService()
	ctx := context.Background()

	a := courseRepo.add(mondayCourse("CS225", "Data Structures", 4, "CS", "09:00", "10:30"))
	b := courseRepo.add(mondayCourse("MATH241", "Calculus III", 4, "MATH", "10:00", "11:30"))

	resp, err := svc.CheckConflicts(ctx, &dto.ConflictCheckRequest{CourseIDs: []uint{a.ID, b.ID}})
	if err != nil {
		t.Fatalf("冲突校验失败: %v", err)
	}
	if !resp.HasConflicts || len(resp.Conflicts) != 1 {
		t.Errorf("应检出 1 条冲突，实际 %+v", resp)
	}
}

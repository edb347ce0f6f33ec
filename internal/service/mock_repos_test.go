package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/aaronpaddy/smart-course-scheduler/internal/model"
	"github.com/aaronpaddy/smart-course-scheduler/internal/repository"
)

// ── 测试用内存仓储 ──────────────────────────────────────────

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[uint]*model.User{}, nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

type mockCourseRepo struct {
	courses []model.Course
	nextID  uint
	upserts int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{nextID: 1}
}

func (m *mockCourseRepo) add(course model.Course) model.Course {
	course.ID = m.nextID
	m.nextID++
	m.courses = append(m.courses, course)
	return course
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	*course = m.add(*course)
	return nil
}

func (m *mockCourseRepo) Upsert(_ context.Context, course *model.Course) error {
	m.upserts++
	for i := range m.courses {
		if m.courses[i].Code == course.Code {
			course.ID = m.courses[i].ID
			m.courses[i] = *course
			return nil
		}
	}
	*course = m.add(*course)
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id uint) (*model.Course, error) {
	for i := range m.courses {
		if m.courses[i].ID == id {
			return &m.courses[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByCode(_ context.Context, code string) (*model.Course, error) {
	for i := range m.courses {
		if m.courses[i].Code == code {
			return &m.courses[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByIDs(_ context.Context, ids []uint) ([]model.Course, error) {
	var result []model.Course
	for _, id := range ids {
		for i := range m.courses {
			if m.courses[i].ID == id {
				result = append(result, m.courses[i])
				break
			}
		}
	}
	return result, nil
}

func (m *mockCourseRepo) List(_ context.Context, filter repository.CourseFilter) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if filter.Semester != "" && c.Semester != filter.Semester && c.Semester != "Both" {
			continue
		}
		if filter.Department != "" && c.Department != filter.Department {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCourseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.courses)), nil
}

func (m *mockCourseRepo) DeleteAll(_ context.Context) error {
	m.courses = nil
	return nil
}

// replaceCall 记录一次原子替换调用：删旧插新必须走同一个仓储事务
type replaceCall struct {
	scheduleID   uint
	courseIDs    []uint
	totalCredits int
}

type mockScheduleRepo struct {
	schedules    map[uint]*model.Schedule
	nextID       uint
	replaceCalls []replaceCall
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: map[uint]*model.Schedule{}, nextID: 1}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule, courseIDs []uint) error {
	schedule.ID = m.nextID
	m.nextID++
	for i, courseID := range courseIDs {
		schedule.Courses = append(schedule.Courses, model.ScheduleCourse{
			ScheduleID: schedule.ID,
			CourseID:   courseID,
			Position:   i,
		})
	}
	m.schedules[schedule.ID] = schedule
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id uint) (*model.Schedule, error) {
	schedule, ok := m.schedules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return schedule, nil
}

func (m *mockScheduleRepo) GetByUserAndTerm(_ context.Context, userID uint, semester string, year int) (*model.Schedule, error) {
	for _, s := range m.schedules {
		if s.UserID == userID && s.Semester == semester && s.Year == year {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListByUser(_ context.Context, userID uint) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) ReplaceCourses(_ context.Context, scheduleID uint, courseIDs []uint, totalCredits int) error {
	m.replaceCalls = append(m.replaceCalls, replaceCall{
		scheduleID:   scheduleID,
		courseIDs:    append([]uint{}, courseIDs...),
		totalCredits: totalCredits,
	})

	schedule, ok := m.schedules[scheduleID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	schedule.Courses = nil
	for i, courseID := range courseIDs {
		schedule.Courses = append(schedule.Courses, model.ScheduleCourse{
			ScheduleID: scheduleID,
			CourseID:   courseID,
			Position:   i,
		})
	}
	schedule.TotalCredits = totalCredits
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id uint) error {
	delete(m.schedules, id)
	return nil
}

func newMockRepos() (*repository.Repositories, *mockUserRepo, *mockCourseRepo, *mockScheduleRepo) {
	userRepo := newMockUserRepo()
	courseRepo := newMockCourseRepo()
	scheduleRepo := newMockScheduleRepo()
	repos := &repository.Repositories{
		User:     userRepo,
		Course:   courseRepo,
		Schedule: scheduleRepo,
	}
	return repos, userRepo, courseRepo, scheduleRepo
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/aaronpaddy/smart-course-scheduler/internal/model"
)

// ScheduleRepository 选课表仓储接口
type ScheduleRepository interface {
	// Create 创建选课表并写入课程关联，整体在一个事务内
	Create(ctx context.Context, schedule *model.Schedule, courseIDs []uint) error
	GetByID(ctx context.Context, id uint) (*model.Schedule, error)
	GetByUserAndTerm(ctx context.Context, userID uint, semester string, year int) (*model.Schedule, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Schedule, error)
	// ReplaceCourses 整体替换选课表的课程集合并更新总学分。
	// 删旧、插新、改总学分在同一个事务内提交，并发读取方只会
	// 看到替换前或替换后的完整状态。
	ReplaceCourses(ctx context.Context, scheduleID uint, courseIDs []uint, totalCredits int) error
	Delete(ctx context.Context, id uint) error
}

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository 创建选课表仓储
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *model.Schedule, courseIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(schedule).Error; err != nil {
			return err
		}
		return insertScheduleCourses(tx, schedule.ID, courseIDs)
	})
}

func (r *scheduleRepository) GetByID(ctx context.Context, id uint) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Courses.Course").
		First(&schedule, id).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) GetByUserAndTerm(ctx context.Context, userID uint, semester string, year int) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND semester = ? AND year = ?", userID, semester, year).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) ListByUser(ctx context.Context, userID uint) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("year DESC, semester").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepository) ReplaceCourses(ctx context.Context, scheduleID uint, courseIDs []uint, totalCredits int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", scheduleID).
			Delete(&model.ScheduleCourse{}).Error; err != nil {
			return err
		}
		if err := insertScheduleCourses(tx, scheduleID, courseIDs); err != nil {
			return err
		}
		return tx.Model(&model.Schedule{}).
			Where("id = ?", scheduleID).
			Update("total_credits", totalCredits).Error
	})
}

func (r *scheduleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", id).
			Delete(&model.ScheduleCourse{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Schedule{}, id).Error
	})
}

func insertScheduleCourses(tx *gorm.DB, scheduleID uint, courseIDs []uint) error {
	if len(courseIDs) == 0 {
		return nil
	}
	records := make([]model.ScheduleCourse, len(courseIDs))
	for i, courseID := range courseIDs {
		records[i] = model.ScheduleCourse{
			ScheduleID: scheduleID,
			CourseID:   courseID,
			Position:   i,
		}
	}
	return tx.Create(&records).Error
}

package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aaronpaddy/smart-course-scheduler/internal/model"
)

// CourseFilter 课程列表过滤条件
type CourseFilter struct {
	Semester   string
	Department string
	Search     string
}

// CourseRepository 课程仓储接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	// Upsert 按课程代码幂等写入：已存在时整体更新
	Upsert(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id uint) (*model.Course, error)
	GetByCode(ctx context.Context, code string) (*model.Course, error)
	GetByIDs(ctx context.Context, ids []uint) ([]model.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]model.Course, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository 创建课程仓储
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Upsert(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "credits", "department", "description", "prerequisites",
			"semester", "year", "time_slots", "max_capacity", "updated_at",
		}),
	}).Create(course).Error
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) GetByIDs(ctx context.Context, ids []uint) ([]model.Course, error) {
	var courses []model.Course
	if len(ids) == 0 {
		return courses, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) List(ctx context.Context, filter CourseFilter) ([]model.Course, error) {
	query := r.db.WithContext(ctx).Model(&model.Course{})

	if filter.Semester != "" {
		// "Both" 学期的课程春秋两季均可选
		query = query.Where("semester = ? OR semester = ?", filter.Semester, "Both")
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", like, like)
	}

	var courses []model.Course
	if err := query.Order("code").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *courseRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Course{}).Error
}

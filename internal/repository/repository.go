package repository

import "gorm.io/gorm"

// Repositories 仓储层聚合
type Repositories struct {
	User     UserRepository
	Course   CourseRepository
	Schedule ScheduleRepository
}

// New 创建仓储层聚合
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Course:   NewCourseRepository(db),
		Schedule: NewScheduleRepository(db),
	}
}

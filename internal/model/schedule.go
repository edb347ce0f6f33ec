package model

// Schedule 一份选课表：每个 (用户, 学期, 年份) 至多一份
type Schedule struct {
	BaseModel
	UserID       uint   `gorm:"not null;uniqueIndex:uq_schedules_user_term" json:"user_id"`
	Semester     string `gorm:"size:20;not null;uniqueIndex:uq_schedules_user_term" json:"semester"`
	Year         int    `gorm:"not null;uniqueIndex:uq_schedules_user_term" json:"year"`
	TotalCredits int    `gorm:"not null;default:0" json:"total_credits"`

	User    *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Courses []ScheduleCourse `gorm:"foreignKey:ScheduleID" json:"courses,omitempty"`
}

// TableName 指定表名
func (Schedule) TableName() string {
	return "schedules"
}

// ScheduleCourse 选课表与课程的关联记录，Position 保持入选顺序
type ScheduleCourse struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ScheduleID uint `gorm:"not null;uniqueIndex:uq_schedule_courses" json:"schedule_id"`
	CourseID   uint `gorm:"not null;uniqueIndex:uq_schedule_courses" json:"course_id"`
	Position   int  `gorm:"not null;default:0" json:"position"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (ScheduleCourse) TableName() string {
	return "schedule_courses"
}

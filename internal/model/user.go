package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaronpaddy/smart-course-scheduler/internal/scheduler"
)

// Preferences 学生选课偏好，数据库中以 JSONB 存储
type Preferences struct {
	CompletedCourses     []string `json:"completed_courses"`
	PreferredDepartments []string `json:"preferred_departments"`
	PreferredTimes       []string `json:"preferred_times"`
}

// Value 实现 driver.Valuer 接口
func (p Preferences) Value() (driver.Value, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 实现 sql.Scanner 接口
func (p *Preferences) Scan(value interface{}) error {
	if value == nil {
		*p = Preferences{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("Preferences: 不支持的数据库类型")
	}

	if len(data) == 0 {
		*p = Preferences{}
		return nil
	}
	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("Preferences 反序列化失败: %w", err)
	}
	return nil
}

// User 学生账号
type User struct {
	BaseModel
	Username       string      `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email          string      `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Major          string      `gorm:"size:100;not null;default:''" json:"major"`
	GraduationYear *int        `json:"graduation_year"`
	Preferences    Preferences `gorm:"type:jsonb;not null;default:'{}'" json:"preferences"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// ToProfile 转换为引擎打分用的学生画像
func (u *User) ToProfile() *scheduler.Profile {
	return &scheduler.Profile{
		Major:                u.Major,
		CompletedCourses:     u.Preferences.CompletedCourses,
		PreferredDepartments: u.Preferences.PreferredDepartments,
		PreferredTimes:       u.Preferences.PreferredTimes,
	}
}

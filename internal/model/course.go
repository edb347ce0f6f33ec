package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaronpaddy/smart-course-scheduler/internal/scheduler"
)

// TimeSlot 课程的一个上课时段
// Day 允许逗号分隔的多天记法，如 "Monday,Wednesday"
type TimeSlot struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      string `json:"room"`
}

// TimeSlots 时段列表，数据库中以 JSONB 存储
type TimeSlots []TimeSlot

// Value 实现 driver.Valuer 接口
func (s TimeSlots) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 实现 sql.Scanner 接口
func (s *TimeSlots) Scan(value interface{}) error {
	if value == nil {
		*s = TimeSlots{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("TimeSlots: 不支持的数据库类型")
	}

	if len(data) == 0 {
		*s = TimeSlots{}
		return nil
	}
	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("TimeSlots 反序列化失败: %w", err)
	}
	return nil
}

// Course 课程
type Course struct {
	BaseModel
	Code              string      `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name              string      `gorm:"size:200;not null" json:"name"`
	Credits           int         `gorm:"not null;default:0" json:"credits"`
	Department        string      `gorm:"size:100;not null;default:''" json:"department"`
	Description       string      `gorm:"type:text;not null;default:''" json:"description"`
	Prerequisites     StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"prerequisites"`
	Semester          string      `gorm:"size:20;not null;default:'Both'" json:"semester"`
	Year              *int        `json:"year"`
	TimeSlots         TimeSlots   `gorm:"type:jsonb;not null;default:'[]'" json:"time_slots"`
	MaxCapacity       int         `gorm:"not null;default:0" json:"max_capacity"`
	CurrentEnrollment int         `gorm:"not null;default:0" json:"current_enrollment"`
}

// TableName 指定表名
func (Course) TableName() string {
	return "courses"
}

// ToEngine 转换为引擎消费的纯内存记录
func (c *Course) ToEngine() scheduler.Course {
	slots := make([]scheduler.TimeSlot, len(c.TimeSlots))
	for i, s := range c.TimeSlots {
		slots[i] = scheduler.TimeSlot{
			Day:       s.Day,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Room:      s.Room,
		}
	}
	return scheduler.Course{
		Code:        c.Code,
		Name:        c.Name,
		Credits:     c.Credits,
		Department:  c.Department,
		Description: c.Description,
		Semester:    c.Semester,
		Slots:       slots,
	}
}

// OfferedIn 课程是否在指定学期开设；"Both" 表示春秋两季均开设
func (c *Course) OfferedIn(semester string) bool {
	return c.Semester == semester || c.Semester == "Both"
}

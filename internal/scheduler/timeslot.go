package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

// ── 时间模型与冲突检测 ──────────────────────────────────────
//
// 设计说明：
//   - 时段的 Day 字段允许逗号分隔的多天记法（如 "Monday,Wednesday"），
//     冲突判定基于天集合是否相交。
//   - 时间字符串统一解析为"当日分钟数"后做半开区间重叠比较。
//   - 起止时间缺失或无法解析时，按"与同日任意时段冲突"处理：
//     宁可误报冲突，也不让一份课表悄悄出现双重占用。
// ─────────────────────────────────────────────────────────────

// Weekdays 周视图覆盖的工作日，顺序即展示顺序
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// TimeSlot 上课时段：星期 + 起止时间 + 教室
type TimeSlot struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      string `json:"room"`
}

// Days 展开逗号分隔的多天记法
func (s TimeSlot) Days() []string {
	if s.Day == "" {
		return nil
	}
	parts := strings.Split(s.Day, ",")
	days := make([]string, 0, len(parts))
	for _, p := range parts {
		if d := strings.TrimSpace(p); d != "" {
			days = append(days, d)
		}
	}
	return days
}

// Course 引擎消费的纯内存课程记录
// 由外部协作方（存储 / 导入）转换而来，引擎自身不做任何 I/O
type Course struct {
	Code        string
	Name        string
	Credits     int
	Department  string
	Description string
	Semester    string
	Slots       []TimeSlot
}

// Conflict 一条冲突记录：两门课在某天的时段重叠
type Conflict struct {
	CourseA string `json:"course_a"`
	CourseB string `json:"course_b"`
	Day     string `json:"day"`
	RangeA  string `json:"range_a"`
	RangeB  string `json:"range_b"`
}

// String 渲染为人类可读的冲突描述
func (c Conflict) String() string {
	return fmt.Sprintf("Time conflict on %s: %s vs %s (%s / %s)", c.Day, c.CourseA, c.CourseB, c.RangeA, c.RangeB)
}

// clockToMinutes 将时间字符串解析为当日分钟数。
// 支持 "9:00 AM" / "09:00" / "9:00" 等形式：去掉 AM/PM 标记后按
// hour*60+minute 归一化，PM 且小时非 12 时 +12 小时，AM 且小时为
// 12 时归零。无冒号或数字解析失败时返回 (0, false)——调用方应将
// ok=false 视为"时间不可用"而不是把 0 当作午夜使用。
func clockToMinutes(raw string) (int, bool) {
	upper := strings.ToUpper(raw)
	isPM := strings.Contains(upper, "PM")
	isAM := strings.Contains(upper, "AM")

	cleaned := strings.ReplaceAll(upper, "AM", "")
	cleaned = strings.ReplaceAll(cleaned, "PM", "")
	cleaned = strings.TrimSpace(cleaned)

	if !strings.Contains(cleaned, ":") {
		return 0, false
	}

	parts := strings.SplitN(cleaned, ":", 2)
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}

	if isPM && hour != 12 {
		hour += 12
	} else if isAM && hour == 12 {
		hour = 0
	}

	return hour*60 + minute, true
}

// minuteRange 解析时段的起止分钟数；任一端缺失或不可解析时 ok=false
func (s TimeSlot) minuteRange() (start, end int, ok bool) {
	if s.StartTime == "" || s.EndTime == "" {
		return 0, 0, false
	}
	start, okStart := clockToMinutes(s.StartTime)
	end, okEnd := clockToMinutes(s.EndTime)
	return start, end, okStart && okEnd
}

// sharedDay 返回两个时段天集合的第一个交集元素
func sharedDay(a, b TimeSlot) (string, bool) {
	for _, da := range a.Days() {
		for _, db := range b.Days() {
			if da == db {
				return da, true
			}
		}
	}
	return "", false
}

// slotsConflict 判定两个时段是否冲突。
// 天集合不相交 → 不冲突；任一端时间不可用 → 冲突（安全优先）；
// 否则按半开区间 [s1,e1) × [s2,e2) 判定重叠。
func slotsConflict(a, b TimeSlot) bool {
	if _, ok := sharedDay(a, b); !ok {
		return false
	}

	s1, e1, ok1 := a.minuteRange()
	s2, e2, ok2 := b.minuteRange()
	if !ok1 || !ok2 {
		return true
	}

	return s1 < e2 && e1 > s2
}

// displayRange 渲染时段的展示用时间范围
func (s TimeSlot) displayRange() string {
	return normalizeClock(s.StartTime) + " - " + normalizeClock(s.EndTime)
}

// normalizeClock 将时间字符串规整为零填充的 24 小时 "HH:MM" 形式；
// 不可解析时退化为 "00:00"（确定性展示值，冲突判定不依赖它）
func normalizeClock(raw string) string {
	minutes, ok := clockToMinutes(raw)
	if !ok {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeClock 规整任意时间记法为零填充的 24 小时 "HH:MM"；
// 导入侧用它统一存储格式，ok=false 表示原文不可解析、应原样保留
func NormalizeClock(raw string) (string, bool) {
	minutes, ok := clockToMinutes(raw)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), true
}

// CheckConflicts 对有序课程列表做全量两两冲突检测。
// 对每个无序课程对的每个时段对，命中即产出一条冲突记录；
// 纯函数，无副作用，选课引擎与外部课表校验共用此原语。
func CheckConflicts(courses []Course) []Conflict {
	var conflicts []Conflict

	for i := 0; i < len(courses); i++ {
		if len(courses[i].Slots) == 0 {
			continue
		}
		for j := i + 1; j < len(courses); j++ {
			if len(courses[j].Slots) == 0 {
				continue
			}
			for _, sa := range courses[i].Slots {
				for _, sb := range courses[j].Slots {
					if !slotsConflict(sa, sb) {
						continue
					}
					day, _ := sharedDay(sa, sb)
					if day == "" {
						// 共享天缺失只会出现在双方 Day 均为空的异常数据上
						day = "Unknown day"
					}
					conflicts = append(conflicts, Conflict{
						CourseA: courses[i].Code,
						CourseB: courses[j].Code,
						Day:     day,
						RangeA:  sa.displayRange(),
						RangeB:  sb.displayRange(),
					})
				}
			}
		}
	}

	return conflicts
}

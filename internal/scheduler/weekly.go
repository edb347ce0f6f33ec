package scheduler

import (
	"sort"
	"time"
)

// ── 周视图与日历事件 ────────────────────────────────────────

// WeeklyEntry 周视图中的一个格子
type WeeklyEntry struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	TimeRange string `json:"time_range"`
	Room      string `json:"room"`
	Credits   int    `json:"credits"`
}

// 周视图默认占位时间：时段存在但起止缺失时使用
const (
	defaultStartTime = "09:00"
	defaultEndTime   = "10:30"
)

// BuildWeeklyView 把课程列表组织为周一至周五的网格。
// 多天记法展开到每一天，非工作日（及未知天名）丢弃；
// 每天的条目按规整后的时间范围字符串排序，稳定排序保持
// 同时段课程的输入相对顺序。
func BuildWeeklyView(courses []Course) map[string][]WeeklyEntry {
	view := make(map[string][]WeeklyEntry, len(Weekdays))
	for _, day := range Weekdays {
		view[day] = []WeeklyEntry{}
	}

	for _, c := range courses {
		for _, slot := range c.Slots {
			entry := WeeklyEntry{
				Code:      c.Code,
				Name:      c.Name,
				TimeRange: weeklyRange(slot),
				Room:      slot.Room,
				Credits:   c.Credits,
			}
			for _, day := range slot.Days() {
				if _, ok := view[day]; ok {
					view[day] = append(view[day], entry)
				}
			}
		}
	}

	for _, day := range Weekdays {
		entries := view[day]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].TimeRange < entries[j].TimeRange
		})
	}

	return view
}

// weeklyRange 周视图展示的时间范围；起止缺失时补默认值
func weeklyRange(slot TimeSlot) string {
	start := slot.StartTime
	if start == "" {
		start = defaultStartTime
	}
	end := slot.EndTime
	if end == "" {
		end = defaultEndTime
	}
	return normalizeClock(start) + " - " + normalizeClock(end)
}

// CalendarEvent 日历导出用的单次上课事件
type CalendarEvent struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Room        string    `json:"room"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

var weekdayByName = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
}

// BuildCalendarEvents 基于学期起始日期为每门课的每个上课天
// 生成首次上课事件。事件日期取 termStart 起（含当天）第一个
// 匹配的星期；起止时间不可解析时落在当日零点。
func BuildCalendarEvents(courses []Course, termStart time.Time) []CalendarEvent {
	var events []CalendarEvent

	for _, c := range courses {
		description := c.Description
		if description == "" {
			description = "No description available"
		}
		for _, slot := range c.Slots {
			startMin, endMin, ok := slot.minuteRange()
			if !ok {
				startMin, endMin = 0, 0
			}
			for _, day := range slot.Days() {
				weekday, known := weekdayByName[day]
				if !known {
					continue
				}
				date := firstOnOrAfter(termStart, weekday)
				events = append(events, CalendarEvent{
					Code:        c.Code,
					Name:        c.Name,
					Description: description,
					Room:        slot.Room,
					Start:       date.Add(time.Duration(startMin) * time.Minute),
					End:         date.Add(time.Duration(endMin) * time.Minute),
				})
			}
		}
	}

	return events
}

// firstOnOrAfter 返回 from（含当天）之后第一个指定星期的日期零点
func firstOnOrAfter(from time.Time, weekday time.Weekday) time.Time {
	date := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	offset := (int(weekday) - int(date.Weekday()) + 7) % 7
	return date.AddDate(0, 0, offset)
}

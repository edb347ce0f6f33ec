package scheduler

import (
	"testing"
	"time"
)

func TestBuildWeeklyView_ExpandsMultiDay(t *testing.T) {
	courses := []Course{
		{
			Code: "CS 225", Name: "Data Structures", Credits: 4,
			Slots: []TimeSlot{{Day: "Monday,Wednesday", StartTime: "09:00", EndTime: "10:30", Room: "Siebel 1404"}},
		},
	}

	view := BuildWeeklyView(courses)

	for _, day := range []string{"Monday", "Wednesday"} {
		if len(view[day]) != 1 {
			t.Fatalf("%s 应有 1 条课程，实际 %d 条", day, len(view[day]))
		}
		entry := view[day][0]
		if entry.Code != "CS 225" || entry.TimeRange != "09:00 - 10:30" || entry.Room != "Siebel 1404" {
			t.Errorf("%s 条目内容错误: %+v", day, entry)
		}
	}
	for _, day := range []string{"Tuesday", "Thursday", "Friday"} {
		if len(view[day]) != 0 {
			t.Errorf("%s 不应有课程条目", day)
		}
	}
}

func TestBuildWeeklyView_SortsByTimeRange(t *testing.T) {
	courses := []Course{
		{Code: "B", Name: "Afternoon Course", Slots: []TimeSlot{{Day: "Monday", StartTime: "1:00 PM", EndTime: "2:30 PM"}}},
		{Code: "A", Name: "Morning Course", Slots: []TimeSlot{{Day: "Monday", StartTime: "9:00 AM", EndTime: "10:30 AM"}}},
	}

	view := BuildWeeklyView(courses)
	monday := view["Monday"]
	if len(monday) != 2 {
		t.Fatalf("周一应有 2 条课程，实际 %d 条", len(monday))
	}
	// 12 小时制规整为 24 小时制后按字典序排序，下午课排在上午课之后
	if monday[0].Code != "A" || monday[1].Code != "B" {
		t.Errorf("周一排序错误: %s, %s", monday[0].Code, monday[1].Code)
	}
	if monday[1].TimeRange != "13:00 - 14:30" {
		t.Errorf("12 小时制应规整为 24 小时制，实际 %s", monday[1].TimeRange)
	}
}

func TestBuildWeeklyView_DefaultsMissingTimes(t *testing.T) {
	courses := []Course{
		{Code: "X", Name: "Mystery Course", Slots: []TimeSlot{{Day: "Friday"}}},
	}
	view := BuildWeeklyView(courses)
	if view["Friday"][0].TimeRange != "09:00 - 10:30" {
		t.Errorf("缺失时间应使用默认占位，实际 %s", view["Friday"][0].TimeRange)
	}
}

func TestBuildWeeklyView_DropsUnknownDays(t *testing.T) {
	courses := []Course{
		{Code: "X", Name: "Weekend Course", Slots: []TimeSlot{{Day: "Saturday", StartTime: "09:00", EndTime: "10:30"}}},
	}
	view := BuildWeeklyView(courses)
	total := 0
	for _, day := range Weekdays {
		total += len(view[day])
	}
	if total != 0 {
		t.Errorf("非工作日时段不应出现在周视图，实际 %d 条", total)
	}
}

func TestBuildCalendarEvents(t *testing.T) {
	// 2025-09-01 是周一
	termStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	courses := []Course{
		{
			Code: "CS 225", Name: "Data Structures", Description: "Program design",
			Slots: []TimeSlot{{Day: "Monday,Wednesday", StartTime: "09:00", EndTime: "10:30", Room: "Siebel 1404"}},
		},
	}

	events := BuildCalendarEvents(courses, termStart)
	if len(events) != 2 {
		t.Fatalf("期望 2 个事件，实际 %d 个", len(events))
	}

	if !events[0].Start.Equal(time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("周一事件开始时间错误: %v", events[0].Start)
	}
	if !events[0].End.Equal(time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("周一事件结束时间错误: %v", events[0].End)
	}
	if !events[1].Start.Equal(time.Date(2025, 9, 3, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("周三事件应落在学期起始后的第一个周三: %v", events[1].Start)
	}
	if events[0].Description != "Program design" {
		t.Errorf("事件描述错误: %s", events[0].Description)
	}
}

func TestBuildCalendarEvents_EmptyDescription(t *testing.T) {
	termStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	courses := []Course{
		{Code: "X 100", Name: "Sample Course", Slots: []TimeSlot{{Day: "Monday", StartTime: "09:00", EndTime: "10:00"}}},
	}
	events := BuildCalendarEvents(courses, termStart)
	if events[0].Description != "No description available" {
		t.Errorf("空描述应使用占位文本，实际 %s", events[0].Description)
	}
}

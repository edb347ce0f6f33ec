package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const illinoisCSV = `Subject,Number,Name,Description,Credit Hours,Days of Week,Start Time,End Time,Room,Building
CS,225,Data Structures,Program design and data abstraction.,4 hours.,MW,9:00 AM,10:30 AM,1404,Siebel
CS,225,Data Structures,Program design and data abstraction.,4 hours.,TR,11:00 AM,12:30 PM,1404,Siebel
MATH,241,Calculus III,Multivariable calculus.,4 hours.,MWF,10:00 AM,10:50 AM,314,Altgeld
PHYS,,X,Short.,3 hours.,M,9:00 AM,10:00 AM,101,Loomis
`

func TestParseCoursesCSV_IllinoisFormat(t *testing.T) {
	courses, err := parseCoursesCSV(strings.NewReader(illinoisCSV))
	if err != nil {
		t.Fatalf("CSV 解析失败: %v", err)
	}

	// 重复的 CS225 去重、名称过短的行丢弃
	if len(courses) != 2 {
		t.Fatalf("期望 2 门课程，实际 %d 门", len(courses))
	}

	cs := courses[0]
	if cs.Code != "CS225" {
		t.Errorf("课程代码应为 Subject+Number 拼接，实际 %s", cs.Code)
	}
	if cs.Credits != 4 {
		t.Errorf("\"4 hours.\" 应解析为 4 学分，实际 %d", cs.Credits)
	}
	if cs.Department != "CS" {
		t.Errorf("院系应取 Subject，实际 %s", cs.Department)
	}
	if cs.Semester != "Both" {
		t.Errorf("Illinois 格式默认学期应为 Both，实际 %s", cs.Semester)
	}
	if len(cs.TimeSlots) != 1 {
		t.Fatalf("期望 1 个时段，实际 %d 个", len(cs.TimeSlots))
	}

	slot := cs.TimeSlots[0]
	if slot.Day != "Monday,Wednesday" {
		t.Errorf("MW 应展开为 Monday,Wednesday，实际 %s", slot.Day)
	}
	if slot.StartTime != "09:00" || slot.EndTime != "10:30" {
		t.Errorf("12 小时制应规整为 24 小时制，实际 %s - %s", slot.StartTime, slot.EndTime)
	}
	if slot.Room != "1404 Siebel" {
		t.Errorf("教室应为 Room+Building 拼接，实际 %s", slot.Room)
	}

	math := courses[1]
	if math.TimeSlots[0].Day != "Monday,Wednesday,Friday" {
		t.Errorf("MWF 展开错误: %s", math.TimeSlots[0].Day)
	}
}

const standardCSV = `course_code,course_name,description,credits,department,prerequisites,semester,year,time_slots,max_capacity
CS101,Introduction to Computer Science,Basics.,3,Computer Science,,Fall,2025,"[{""day"":""Monday"",""start_time"":""9:00 AM"",""end_time"":""10:30 AM"",""room"":""CS101""}]",30
BAD1,,No name.,3,CS,,Fall,2025,,0
BAD2,Zero Credit Course,.,0,CS,,Fall,2025,,0
`

func TestParseCoursesCSV_StandardFormat(t *testing.T) {
	courses, err := parseCoursesCSV(strings.NewReader(standardCSV))
	if err != nil {
		t.Fatalf("CSV 解析失败: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("缺名称和零学分的行应丢弃，期望 1 门课程，实际 %d 门", len(courses))
	}

	c := courses[0]
	if c.Code != "CS101" || c.Credits != 3 || c.Semester != "Fall" {
		t.Errorf("标准格式字段解析错误: %+v", c)
	}
	if c.Year == nil || *c.Year != 2025 {
		t.Errorf("年份解析错误: %v", c.Year)
	}
	if len(c.TimeSlots) != 1 || c.TimeSlots[0].StartTime != "09:00" {
		t.Errorf("内嵌 JSON 时段应解析并规整，实际 %+v", c.TimeSlots)
	}
}

func TestParseCoursesJSON(t *testing.T) {
	payload := `[
		{"course_code": "CS225", "course_name": "Data Structures", "credits": 4, "department": "CS",
		 "time_slots": [{"day": "Monday", "start_time": "2:00 PM", "end_time": "3:30 PM", "room": "1404"}]},
		{"code": "MATH241", "name": "Calculus III", "credits": 4},
		{"code": "BAD", "name": "Zero Credits", "credits": 0}
	]`

	courses, err := parseCoursesJSON(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("JSON 解析失败: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("零学分条目应丢弃，期望 2 门课程，实际 %d 门", len(courses))
	}
	if courses[0].Code != "CS225" || courses[1].Code != "MATH241" {
		t.Errorf("course_code 与 code 两套字段名都应兼容: %s, %s", courses[0].Code, courses[1].Code)
	}
	if courses[0].TimeSlots[0].StartTime != "14:00" {
		t.Errorf("下午时间应规整为 24 小时制，实际 %s", courses[0].TimeSlots[0].StartTime)
	}
	if courses[1].Semester != "Both" || courses[1].Year == nil || *courses[1].Year != 2025 {
		t.Errorf("缺省学期与年份应补默认值: %+v", courses[1])
	}
}

func TestImport_UpsertAndResult(t *testing.T) {
	repos, _, courseRepo, _ := newMockRepos()
	svc := NewCourseService(repos, zap.NewNop())
	ctx := context.Background()

	result, err := svc.Import(ctx, "catalog.csv", strings.NewReader(illinoisCSV))
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("应导入 2 门课程，实际 %d", result.Imported)
	}

	// 重复导入走幂等更新，不产生重复记录
	if _, err := svc.Import(ctx, "catalog.csv", strings.NewReader(illinoisCSV)); err != nil {
		t.Fatalf("重复导入失败: %v", err)
	}
	if len(courseRepo.courses) != 2 {
		t.Errorf("重复导入不应产生重复记录，实际 %d 条", len(courseRepo.courses))
	}
}

func TestImport_UnsupportedFileType(t *testing.T) {
	repos, _, _, _ := newMockRepos()
	svc := NewCourseService(repos, zap.NewNop())

	_, err := svc.Import(context.Background(), "courses.xlsx", strings.NewReader(""))
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("不支持的扩展名应返回 ErrUnsupportedFileType，实际 %v", err)
	}
}

func TestImport_EmptyFile(t *testing.T) {
	repos, _, _, _ := newMockRepos()
	svc := NewCourseService(repos, zap.NewNop())

	_, err := svc.Import(context.Background(), "empty.csv", strings.NewReader("course_code,course_name,credits\n"))
	if !errors.Is(err, ErrNoValidCourses) {
		t.Errorf("无有效记录应返回 ErrNoValidCourses，实际 %v", err)
	}
}

func TestExportCSV_RoundTripHeader(t *testing.T) {
	repos, _, courseRepo, _ := newMockRepos()
	svc := NewCourseService(repos, zap.NewNop())
	ctx := context.Background()

	courseRepo.add(mondayCourse("CS225", "Data Structures", 4, "CS", "09:00", "10:30"))

	buf, filename, err := svc.ExportCSV(ctx)
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if filename != "courses_export.csv" {
		t.Errorf("导出文件名错误: %s", filename)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("期望表头 + 1 行数据，实际 %d 行", len(lines))
	}
	if !strings.HasPrefix(lines[0], "course_code,course_name,description,credits") {
		t.Errorf("表头格式错误: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "CS225,Data Structures") {
		t.Errorf("数据行错误: %s", lines[1])
	}
}

package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aaronpaddy/smart-course-scheduler/internal/model"
	"github.com/aaronpaddy/smart-course-scheduler/internal/scheduler"
)

// ── 课程数据集解析 ──────────────────────────────────────────
//
// 支持两种 CSV 格式：
//   - Illinois 课程目录格式：Subject + Number 拼课程代码，
//     "3 hours." 风格学分，Days of Week 用 M/T/W/R/F 字母
//   - 标准格式：course_code / course_name / credits / ... 列
// JSON 为课程对象数组，字段名兼容 code 与 course_code 两套。
// 时间字符串在导入时统一规整为 24 小时 "HH:MM"。
// ─────────────────────────────────────────────────────────────

const importDefaultYear = 2025

func parseCoursesCSV(file io.Reader) ([]model.Course, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("CSV 表头读取失败: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	_, hasSubject := col["Subject"]
	_, hasNumber := col["Number"]
	illinois := hasSubject && hasNumber

	var courses []model.Course
	seen := make(map[string]bool)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// 跳过坏行，保留其余数据
			continue
		}

		field := func(name string) string {
			idx, ok := col[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		var course *model.Course
		if illinois {
			course = parseIllinoisRow(field)
		} else {
			course = parseStandardRow(field)
		}
		if course == nil || seen[course.Code] {
			continue
		}
		seen[course.Code] = true
		courses = append(courses, *course)
	}

	return courses, nil
}

func parseIllinoisRow(field func(string) string) *model.Course {
	subject := field("Subject")
	number := field("Number")
	code := subject + number
	name := field("Name")

	// 宽松校验：代码与名称存在且名称非缩写即可
	if code == "" || len(name) <= 2 {
		return nil
	}

	credits := 0
	creditStr := field("Credit Hours")
	if creditStr != "" {
		// 兼容 "3 hours." 形式
		if strings.Contains(strings.ToLower(creditStr), "hours") {
			creditStr = strings.Fields(creditStr)[0]
		}
		if f, err := strconv.ParseFloat(creditStr, 64); err == nil {
			credits = int(f)
		}
	}

	var slots model.TimeSlots
	start, end := field("Start Time"), field("End Time")
	daysStr, room := field("Days of Week"), field("Room")
	if start != "" && end != "" && daysStr != "" && room != "" {
		if days := expandDayLetters(daysStr); days != "" {
			slots = append(slots, model.TimeSlot{
				Day:       days,
				StartTime: normalizeTime(start),
				EndTime:   normalizeTime(end),
				Room:      strings.TrimSpace(room + " " + field("Building")),
			})
		}
	}

	year := importDefaultYear
	return &model.Course{
		Code:          code,
		Name:          name,
		Credits:       credits,
		Department:    subject,
		Description:   field("Description"),
		Prerequisites: model.StringArray{},
		Semester:      "Both",
		Year:          &year,
		TimeSlots:     slots,
	}
}

func parseStandardRow(field func(string) string) *model.Course {
	code := field("course_code")
	name := field("course_name")
	credits := atoiOr(field("credits"), 0)
	if code == "" || name == "" || credits <= 0 {
		return nil
	}

	semester := field("semester")
	if semester == "" {
		semester = "Both"
	}

	var slots model.TimeSlots
	if raw := field("time_slots"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &slots); err != nil {
			slots = nil
		}
	}

	year := atoiOr(field("year"), importDefaultYear)
	return &model.Course{
		Code:          code,
		Name:          name,
		Credits:       credits,
		Department:    field("department"),
		Description:   field("description"),
		Prerequisites: splitPrerequisites(field("prerequisites")),
		Semester:      semester,
		Year:          &year,
		TimeSlots:     normalizeSlots(slots),
		MaxCapacity:   atoiOr(field("max_capacity"), 0),
	}
}

type jsonCourse struct {
	Code        string           `json:"code"`
	CourseCode  string           `json:"course_code"`
	Name        string           `json:"name"`
	CourseName  string           `json:"course_name"`
	Description string           `json:"description"`
	Credits     int              `json:"credits"`
	Department  string           `json:"department"`
	Semester    string           `json:"semester"`
	Year        *int             `json:"year"`
	TimeSlots   []model.TimeSlot `json:"time_slots"`
	MaxCapacity int              `json:"max_capacity"`
}

func parseCoursesJSON(file io.Reader) ([]model.Course, error) {
	var items []jsonCourse
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		return nil, fmt.Errorf("JSON 数据集解析失败: %w", err)
	}

	var courses []model.Course
	for _, item := range items {
		code := firstNonEmpty(item.CourseCode, item.Code)
		name := firstNonEmpty(item.CourseName, item.Name)
		if code == "" || name == "" || item.Credits <= 0 {
			continue
		}

		semester := item.Semester
		if semester == "" {
			semester = "Both"
		}
		year := item.Year
		if year == nil {
			y := importDefaultYear
			year = &y
		}

		courses = append(courses, model.Course{
			Code:          strings.TrimSpace(code),
			Name:          strings.TrimSpace(name),
			Credits:       item.Credits,
			Department:    strings.TrimSpace(item.Department),
			Description:   strings.TrimSpace(item.Description),
			Prerequisites: model.StringArray{},
			Semester:      semester,
			Year:          year,
			TimeSlots:     normalizeSlots(item.TimeSlots),
			MaxCapacity:   item.MaxCapacity,
		})
	}

	return courses, nil
}

// expandDayLetters 把 M/T/W/R/F 字母记法展开为逗号分隔的天名
func expandDayLetters(letters string) string {
	var days []string
	for _, pair := range []struct {
		letter byte
		day    string
	}{
		{'M', "Monday"},
		{'T', "Tuesday"},
		{'W', "Wednesday"},
		{'R', "Thursday"},
		{'F', "Friday"},
	} {
		if strings.IndexByte(letters, pair.letter) >= 0 {
			days = append(days, pair.day)
		}
	}
	return strings.Join(days, ",")
}

// normalizeTime 可解析的时间规整为 "HH:MM"，否则原样保留
func normalizeTime(raw string) string {
	if normalized, ok := scheduler.NormalizeClock(raw); ok {
		return normalized
	}
	return raw
}

// normalizeSlots 规整时段列表内的全部时间字符串
func normalizeSlots(slots []model.TimeSlot) model.TimeSlots {
	if slots == nil {
		return model.TimeSlots{}
	}
	normalized := make(model.TimeSlots, len(slots))
	for i, s := range slots {
		s.StartTime = normalizeTime(s.StartTime)
		s.EndTime = normalizeTime(s.EndTime)
		normalized[i] = s
	}
	return normalized
}

func splitPrerequisites(raw string) model.StringArray {
	if raw == "" {
		return model.StringArray{}
	}
	parts := strings.Split(raw, ";")
	prereqs := make(model.StringArray, 0, len(parts))
	for _, p := range parts {
		if code := strings.TrimSpace(p); code != "" {
			prereqs = append(prereqs, code)
		}
	}
	return prereqs
}

func atoiOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// writeCoursesCSV 按标准格式序列化课程列表
func writeCoursesCSV(courses []model.Course) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	header := []string{
		"course_code", "course_name", "description", "credits", "department",
		"prerequisites", "semester", "year", "time_slots", "max_capacity", "current_enrollment",
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, c := range courses {
		year := ""
		if c.Year != nil {
			year = strconv.Itoa(*c.Year)
		}
		slots, err := json.Marshal(c.TimeSlots)
		if err != nil {
			return nil, err
		}
		record := []string{
			c.Code,
			c.Name,
			c.Description,
			strconv.Itoa(c.Credits),
			c.Department,
			strings.Join(c.Prerequisites, ";"),
			c.Semester,
			year,
			string(slots),
			strconv.Itoa(c.MaxCapacity),
			strconv.Itoa(c.CurrentEnrollment),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf, nil
}

package scheduler

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// ── 偏好与培养方案打分 ──────────────────────────────────────

// Profile 打分用的学生画像：已修课程 + 院系 / 时间偏好
type Profile struct {
	Major                string   `json:"major"`
	CompletedCourses     []string `json:"completed_courses"`
	PreferredDepartments []string `json:"preferred_departments"`
	PreferredTimes       []string `json:"preferred_times"`
}

// hasPreferences 画像是否携带可参与打分的偏好字段。
// 已修课程只用于资格过滤，不触发打分通道。
func (p *Profile) hasPreferences() bool {
	if p == nil {
		return false
	}
	return len(p.PreferredDepartments) > 0 || len(p.PreferredTimes) > 0
}

// Requirements 专业培养方案：四类课程代码桶
type Requirements struct {
	CoreCourses         []string `json:"core_courses"`
	MathRequirements    []string `json:"math_requirements"`
	ScienceRequirements []string `json:"science_requirements"`
	GeneralEducation    []string `json:"general_education"`
}

// ScoredCourse 打分结果：课程 + 分值（无时段课程可为负）
type ScoredCourse struct {
	Course Course `json:"course"`
	Score  int    `json:"score"`
}

// 管理 / 活动类课程名称关键词，小写子串匹配
var skipKeywords = []string{
	"orientation", "study abroad", "internship", "seminar", "laboratory",
	"open seminar", "transfer", "leadership lab", "undergraduate open",
	"professional internship", "international internship",
}

// Eligible 判定课程是否具备排课资格：
// 学分不低于 1、名称去空白后不少于 5 个字符、不含管理类关键词、
// 且不在已修课程集合内
func Eligible(c Course, completed map[string]bool) bool {
	if c.Credits < 1 {
		return false
	}
	if len(strings.TrimSpace(c.Name)) < 5 {
		return false
	}
	lowerName := strings.ToLower(c.Name)
	for _, kw := range skipKeywords {
		if strings.Contains(lowerName, kw) {
			return false
		}
	}
	if completed[c.Code] {
		return false
	}
	return true
}

// courseLevel 从课程代码中抽取首段连续数字作为课程级别；
// 无数字时返回 (0, false)
func courseLevel(code string) (int, bool) {
	start := -1
	for i, r := range code {
		if unicode.IsDigit(r) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(code) && code[end] >= '0' && code[end] <= '9' {
		end++
	}
	level, err := strconv.Atoi(code[start:end])
	if err != nil {
		return 0, false
	}
	return level, true
}

// containsCode 培养方案桶是否包含指定课程代码
func containsCode(bucket []string, code string) bool {
	for _, c := range bucket {
		if c == code {
			return true
		}
	}
	return false
}

// Score 计算单门课程的优先级分值。
// 维度与加分（只计培养方案的第一个命中桶）：
//
//	核心课 +50 / 数学 +40 / 科学 +35 / 通识 +30
//	偏好院系 +20
//	课程级别：300 以下 +15，400 以下 +10，其余 +5（无数字代码不加分）
//	存在时段 +25，每个起始时间命中偏好片段的时段再 +10（单时段只计一次）
//	无时段 −15
//
// 分值可为负，排序时按原始值比较。
func Score(c Course, p *Profile, req *Requirements) int {
	score := 0

	if req != nil {
		switch {
		case containsCode(req.CoreCourses, c.Code):
			score += 50
		case containsCode(req.MathRequirements, c.Code):
			score += 40
		case containsCode(req.ScienceRequirements, c.Code):
			score += 35
		case containsCode(req.GeneralEducation, c.Code):
			score += 30
		}
	}

	if p != nil {
		for _, dept := range p.PreferredDepartments {
			if dept == c.Department {
				score += 20
				break
			}
		}
	}

	if level, ok := courseLevel(c.Code); ok {
		switch {
		case level < 300:
			score += 15
		case level < 400:
			score += 10
		default:
			score += 5
		}
	}

	if len(c.Slots) > 0 {
		score += 25
		if p != nil {
			for _, slot := range c.Slots {
				if matchesPreferredTime(slot, p.PreferredTimes) {
					score += 10
				}
			}
		}
	} else {
		score -= 15
	}

	return score
}

// matchesPreferredTime 时段起始时间是否命中任一偏好片段
func matchesPreferredTime(slot TimeSlot, prefs []string) bool {
	for _, pref := range prefs {
		if pref != "" && strings.Contains(slot.StartTime, pref) {
			return true
		}
	}
	return false
}

// Rank 过滤出有资格的课程并按优先级排序。
// 候选集先统一按（学分升序、同学分按课程代码字典序）预排序。
// 画像携带偏好或提供了培养方案时走打分通道：分值降序，稳定排序
// 使同分课程保持预排序后的相对顺序；否则直接返回预排序结果，
// 分值一律为 0。
func Rank(courses []Course, p *Profile, req *Requirements) []ScoredCourse {
	completed := make(map[string]bool)
	if p != nil {
		for _, code := range p.CompletedCourses {
			completed[code] = true
		}
	}

	eligible := make([]Course, 0, len(courses))
	for _, c := range courses {
		if Eligible(c, completed) {
			eligible = append(eligible, c)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Credits != eligible[j].Credits {
			return eligible[i].Credits < eligible[j].Credits
		}
		return eligible[i].Code < eligible[j].Code
	})

	ranked := make([]ScoredCourse, len(eligible))
	if !p.hasPreferences() && req == nil {
		for i, c := range eligible {
			ranked[i] = ScoredCourse{Course: c}
		}
		return ranked
	}

	for i, c := range eligible {
		ranked[i] = ScoredCourse{Course: c, Score: Score(c, p, req)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// ExplainSelection 生成课程入选理由，供前端展示。
// 理由文案面向学生，保持英文原样输出。
func ExplainSelection(c Course, p *Profile, req *Requirements) []string {
	var reasons []string

	if req != nil {
		switch {
		case containsCode(req.CoreCourses, c.Code):
			reasons = append(reasons, "Core requirement for your major")
		case containsCode(req.MathRequirements, c.Code):
			reasons = append(reasons, "Math requirement for your major")
		case containsCode(req.ScienceRequirements, c.Code):
			reasons = append(reasons, "Science requirement for your major")
		case containsCode(req.GeneralEducation, c.Code):
			reasons = append(reasons, "General education requirement")
		}
	}

	if p != nil {
		for _, dept := range p.PreferredDepartments {
			if dept == c.Department {
				reasons = append(reasons, "Matches your preferred department")
				break
			}
		}
		for _, slot := range c.Slots {
			if matchesPreferredTime(slot, p.PreferredTimes) {
				reasons = append(reasons, "Matches your preferred time")
				break
			}
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Fits your schedule and credit requirements")
	}
	return reasons
}

package curriculum

import "context"

// StaticProvider 内置培养方案目录
// 作为提供方链的末端兜底：远端院系服务不可达时仍能给出
// 主流专业的培养方案
type StaticProvider struct {
	catalog map[string]*Degree
}

// NewStaticProvider 创建内置目录提供方
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{catalog: builtinCatalog()}
}

// Requirements 查询内置目录
func (p *StaticProvider) Requirements(_ context.Context, major string) (*Degree, error) {
	degree, ok := p.catalog[major]
	if !ok {
		return nil, ErrMajorNotFound
	}
	return degree, nil
}

// Majors 返回内置目录覆盖的全部专业名
func (p *StaticProvider) Majors() []string {
	majors := make([]string, 0, len(p.catalog))
	for m := range p.catalog {
		majors = append(majors, m)
	}
	return majors
}

func builtinCatalog() map[string]*Degree {
	return map[string]*Degree{
		"Computer Science": {
			Major:               "Computer Science",
			TotalCredits:        128,
			CoreCourses:         []string{"CS100", "CS101", "CS125", "CS173", "CS225", "CS233", "CS241", "CS357", "CS361", "CS421", "CS427"},
			MathRequirements:    []string{"MATH220", "MATH231", "MATH241", "MATH285", "MATH347", "MATH415"},
			ScienceRequirements: []string{"PHYS211", "PHYS212", "CHEM102", "CHEM103"},
			GeneralEducation:    []string{"RHET105", "COMPOSITION", "HUMANITIES", "SOCIAL_SCIENCE", "CULTURAL_STUDIES"},
			Electives:           15,
			SemesterBreakdown: map[string][]string{
				"freshman_fall":    {"CS100", "MATH220", "RHET105"},
				"freshman_spring":  {"CS125", "MATH231", "PHYS211"},
				"sophomore_fall":   {"CS173", "CS225", "MATH241", "PHYS212"},
				"sophomore_spring": {"CS233", "MATH285", "CHEM102"},
				"junior_fall":      {"CS241", "CS357", "MATH347"},
				"junior_spring":    {"CS361", "MATH415", "CHEM103"},
				"senior_fall":      {"CS421", "CS427"},
				"senior_spring":    {"ELECTIVES"},
			},
		},
		"Mathematics": {
			Major:            "Mathematics",
			TotalCredits:     120,
			CoreCourses:      []string{"MATH220", "MATH231", "MATH241", "MATH347", "MATH416", "MATH417", "MATH418", "MATH419"},
			GeneralEducation: []string{"RHET105", "COMPOSITION", "HUMANITIES", "SOCIAL_SCIENCE"},
			Electives:        20,
			SemesterBreakdown: map[string][]string{
				"freshman_fall":    {"MATH220", "RHET105"},
				"freshman_spring":  {"MATH231", "CS101"},
				"sophomore_fall":   {"MATH241", "MATH347"},
				"sophomore_spring": {"MATH416", "CS125"},
				"junior_fall":      {"MATH417", "MATH418"},
				"junior_spring":    {"MATH419"},
				"senior_fall":      {"ELECTIVES"},
				"senior_spring":    {"ELECTIVES"},
			},
		},
		"Engineering": {
			Major:               "Engineering",
			TotalCredits:        130,
			CoreCourses:         []string{"ENG100", "ENG101", "ENG110", "ENG177", "ENG198", "ENG199"},
			MathRequirements:    []string{"MATH220", "MATH231", "MATH241", "MATH285", "MATH415"},
			ScienceRequirements: []string{"PHYS211", "PHYS212", "CHEM102", "CHEM103"},
			GeneralEducation:    []string{"RHET105", "COMPOSITION", "HUMANITIES", "SOCIAL_SCIENCE"},
			Electives:           12,
			SemesterBreakdown: map[string][]string{
				"freshman_fall":    {"ENG100", "MATH220", "RHET105"},
				"freshman_spring":  {"ENG101", "MATH231", "PHYS211"},
				"sophomore_fall":   {"ENG110", "MATH241", "PHYS212"},
				"sophomore_spring": {"ENG177", "MATH285", "CHEM102"},
				"junior_fall":      {"ENG198", "MATH415", "CHEM103"},
				"junior_spring":    {"ENG199"},
				"senior_fall":      {"ELECTIVES"},
				"senior_spring":    {"ELECTIVES"},
			},
		},
	}
}

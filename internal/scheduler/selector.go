package scheduler

// ── 贪心选课 ────────────────────────────────────────────────

// Rejection 落选记录：课程 + 与之冲突的已选课程代码
type Rejection struct {
	Course           Course   `json:"course"`
	ConflictingCodes []string `json:"conflicting_codes"`
}

// Selection 一次选课的完整结果
type Selection struct {
	Selected     []Course    `json:"selected"`
	TotalCredits int         `json:"total_credits"`
	Rejected     []Rejection `json:"rejected"`
}

// Select 按优先级顺序做单遍贪心选课。
// 学分上限约束：加入后超过 creditCap 的课程直接跳过，不计落选；
// 时间冲突约束：与已选课程冲突的课程记入落选列表，并附上冲突
// 对端的课程代码。已选列表保持入选顺序。
func Select(ranked []ScoredCourse, creditCap int) Selection {
	result := Selection{
		Selected: make([]Course, 0, len(ranked)),
		Rejected: []Rejection{},
	}

	for _, sc := range ranked {
		c := sc.Course

		if result.TotalCredits+c.Credits > creditCap {
			continue
		}

		tentative := append(append([]Course{}, result.Selected...), c)
		conflicts := CheckConflicts(tentative)
		if len(conflicts) == 0 {
			result.Selected = append(result.Selected, c)
			result.TotalCredits += c.Credits
			continue
		}

		seen := make(map[string]bool)
		var codes []string
		for _, cf := range conflicts {
			other := cf.CourseA
			if other == c.Code {
				other = cf.CourseB
			}
			if !seen[other] {
				seen[other] = true
				codes = append(codes, other)
			}
		}
		result.Rejected = append(result.Rejected, Rejection{Course: c, ConflictingCodes: codes})
	}

	return result
}

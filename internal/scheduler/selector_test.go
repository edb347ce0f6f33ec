package scheduler

import "testing"

func scored(c Course, score int) ScoredCourse {
	return ScoredCourse{Course: c, Score: score}
}

func TestSelect_RespectsCreditCap(t *testing.T) {
	ranked := []ScoredCourse{
		scored(course("CS 225", 4, slot("Monday", "09:00", "10:30")), 90),
		scored(course("MATH 241", 4, slot("Tuesday", "09:00", "10:30")), 80),
		scored(course("PHYS 211", 4, slot("Wednesday", "09:00", "10:30")), 70),
		scored(course("CHEM 102", 3, slot("Thursday", "09:00", "10:30")), 60),
	}

	result := Select(ranked, 11)

	if result.TotalCredits > 11 {
		t.Errorf("总学分 %d 超过上限 11", result.TotalCredits)
	}
	// PHYS 211 会令总学分到 12，被静默跳过；CHEM 102 仍可入选
	wantSelected := []string{"CS 225", "MATH 241", "CHEM 102"}
	if len(result.Selected) != len(wantSelected) {
		t.Fatalf("期望入选 %d 门，实际 %d 门", len(wantSelected), len(result.Selected))
	}
	for i, code := range wantSelected {
		if result.Selected[i].Code != code {
			t.Errorf("入选第 %d 位应为 %s，实际 %s", i, code, result.Selected[i].Code)
		}
	}
	if len(result.Rejected) != 0 {
		t.Errorf("超学分跳过不应计入落选列表，实际 %d 条", len(result.Rejected))
	}
}

func TestSelect_RejectsConflicting(t *testing.T) {
	ranked := []ScoredCourse{
		scored(course("CS 225", 4, slot("Monday", "09:00", "10:30")), 90),
		scored(course("MATH 241", 4, slot("Monday", "10:00", "11:30")), 80),
		scored(course("PHYS 211", 4, slot("Tuesday", "09:00", "10:30")), 70),
	}

	result := Select(ranked, 18)

	if len(result.Selected) != 2 {
		t.Fatalf("期望入选 2 门，实际 %d 门", len(result.Selected))
	}
	if result.TotalCredits != 8 {
		t.Errorf("总学分应为 8，实际 %d", result.TotalCredits)
	}
	if len(result.Rejected) != 1 {
		t.Fatalf("期望 1 条落选记录，实际 %d 条", len(result.Rejected))
	}

	rej := result.Rejected[0]
	if rej.Course.Code != "MATH 241" {
		t.Errorf("落选课程应为 MATH 241，实际 %s", rej.Course.Code)
	}
	if len(rej.ConflictingCodes) != 1 || rej.ConflictingCodes[0] != "CS 225" {
		t.Errorf("冲突对端代码错误: %v", rej.ConflictingCodes)
	}
}

func TestSelect_PreservesPriorityOrder(t *testing.T) {
	ranked := []ScoredCourse{
		scored(course("B 200", 3, slot("Tuesday", "09:00", "10:30")), 50),
		scored(course("A 100", 3, slot("Monday", "09:00", "10:30")), 40),
	}

	result := Select(ranked, 18)
	if result.Selected[0].Code != "B 200" || result.Selected[1].Code != "A 100" {
		t.Errorf("入选顺序应与优先级顺序一致，实际 %s, %s",
			result.Selected[0].Code, result.Selected[1].Code)
	}
}

func TestSelect_EmptyInput(t *testing.T) {
	result := Select(nil, 18)
	if len(result.Selected) != 0 || result.TotalCredits != 0 || len(result.Rejected) != 0 {
		t.Errorf("空输入应返回空结果，实际 %+v", result)
	}
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aaronpaddy/smart-course-scheduler/config"
	"github.com/aaronpaddy/smart-course-scheduler/internal/model"
	"github.com/aaronpaddy/smart-course-scheduler/internal/repository"
	"github.com/aaronpaddy/smart-course-scheduler/internal/scheduler"
)

// ── 导出模块业务错误 ──

var (
	ErrExportScheduleNotFound = errors.New("选课表不存在")
	ErrExportNoCourses        = errors.New("选课表中没有课程")
	ErrExportGenerateFail     = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - ICS 导出按学期起始日期推导每门课的首次上课时间，
//     可直接导入日历应用
//   - Excel 导出为周一 ~ 周五的周视图网格
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入
type ExportService interface {
	// ExportScheduleICS 导出选课表为 iCalendar
	ExportScheduleICS(ctx context.Context, scheduleID uint) (*bytes.Buffer, string, error)
	// ExportScheduleXLSX 导出选课表周视图为 Excel
	ExportScheduleXLSX(ctx context.Context, scheduleID uint) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repositories
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repositories, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

func (s *exportService) loadSchedule(ctx context.Context, scheduleID uint) (*model.Schedule, []scheduler.Course, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrExportScheduleNotFound
		}
		s.logger.Error("查询选课表失败", zap.Uint("schedule_id", scheduleID), zap.Error(err))
		return nil, nil, err
	}

	engineCourses := scheduleEngineCourses(schedule)
	if len(engineCourses) == 0 {
		return nil, nil, ErrExportNoCourses
	}
	return schedule, engineCourses, nil
}

// ═══════════════════════════════════════════════════════════
// ExportScheduleICS — 导出为 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportScheduleICS(ctx context.Context, scheduleID uint) (*bytes.Buffer, string, error) {
	schedule, engineCourses, err := s.loadSchedule(ctx, scheduleID)
	if err != nil {
		return nil, "", err
	}

	events := scheduler.BuildCalendarEvents(engineCourses, s.cfg.TermStartDate())

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Smart Course Scheduler//Schedule Export//EN")

	now := time.Now()
	for i, ev := range events {
		uid := fmt.Sprintf("schedule-%d-event-%d@smart-course-scheduler", schedule.ID, i)
		vevent := cal.AddEvent(uid)
		vevent.SetDtStampTime(now)
		vevent.SetStartAt(ev.Start)
		vevent.SetEndAt(ev.End)
		vevent.SetSummary(fmt.Sprintf("%s - %s", ev.Code, ev.Name))
		vevent.SetDescription(ev.Description)
		if ev.Room != "" {
			vevent.SetLocation(ev.Room)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("schedule_%s_%d.ics", schedule.Semester, schedule.Year)

	s.logger.Info("选课表 ICS 导出成功",
		zap.Uint("schedule_id", schedule.ID), zap.Int("events", len(events)))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportScheduleXLSX — 导出周视图为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "课程表"
//   - 列头：周一 ~ 周五（英文天名）
//   - 行：该天的课程条目，按时间范围排序
//   - 单元格：代码 + 名称 + 时间 + 教室

func (s *exportService) ExportScheduleXLSX(ctx context.Context, scheduleID uint) (*bytes.Buffer, string, error) {
	schedule, engineCourses, err := s.loadSchedule(ctx, scheduleID)
	if err != nil {
		return nil, "", err
	}

	view := scheduler.BuildWeeklyView(engineCourses)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "课程表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	title := fmt.Sprintf("%s %d — 课程表（%d 学分）", schedule.Semester, schedule.Year, schedule.TotalCredits)
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", cell(colName(len(scheduler.Weekdays)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头：周一 ~ 周五
	maxRows := 0
	for i, day := range scheduler.Weekdays {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, 32)
		headerCell := cell(col, 2)
		f.SetCellValue(sheetName, headerCell, day)
		f.SetCellStyle(sheetName, headerCell, headerCell, headerStyle)
		if n := len(view[day]); n > maxRows {
			maxRows = n
		}
	}

	// 数据行：每列独立按时间排好的条目
	for i, day := range scheduler.Weekdays {
		col := colName(i)
		for j, entry := range view[day] {
			text := fmt.Sprintf("%s %s\n%s", entry.Code, entry.Name, entry.TimeRange)
			if entry.Room != "" {
				text += "\n" + entry.Room
			}
			f.SetCellValue(sheetName, cell(col, 3+j), text)
		}
		for j := len(view[day]); j < maxRows; j++ {
			f.SetCellValue(sheetName, cell(col, 3+j), "-")
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("schedule_%s_%d.xlsx", schedule.Semester, schedule.Year)
	s.logger.Info("选课表 Excel 导出成功", zap.Uint("schedule_id", schedule.ID))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

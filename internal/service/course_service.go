package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aaronpaddy/smart-course-scheduler/internal/dto"
	"github.com/aaronpaddy/smart-course-scheduler/internal/model"
	"github.com/aaronpaddy/smart-course-scheduler/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound      = errors.New("课程不存在")
	ErrCourseCodeExists    = errors.New("课程代码已存在")
	ErrUnsupportedFileType = errors.New("不支持的文件类型，仅支持 CSV 或 JSON")
	ErrNoValidCourses      = errors.New("文件中没有有效的课程记录")
)

// CourseService 课程业务接口
type CourseService interface {
	List(ctx context.Context, query *dto.ListCoursesQuery) ([]model.Course, error)
	Get(ctx context.Context, id uint) (*model.Course, error)
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*model.Course, error)
	// Import 从 CSV / JSON 数据集批量导入课程，按代码幂等去重
	Import(ctx context.Context, filename string, file io.Reader) (*dto.ImportResult, error)
	// ExportCSV 导出全部课程为 CSV，返回内容与建议文件名
	ExportCSV(ctx context.Context) (*bytes.Buffer, string, error)
	Clear(ctx context.Context) error
}

type courseService struct {
	repo   *repository.Repositories
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repositories, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

func (s *courseService) List(ctx context.Context, query *dto.ListCoursesQuery) ([]model.Course, error) {
	courses, err := s.repo.Course.List(ctx, repository.CourseFilter{
		Semester:   query.Semester,
		Department: query.Department,
		Search:     query.Search,
	})
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}
	return courses, nil
}

func (s *courseService) Get(ctx context.Context, id uint) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Uint("course_id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*model.Course, error) {
	if _, err := s.repo.Course.GetByCode(ctx, req.Code); err == nil {
		return nil, ErrCourseCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	semester := req.Semester
	if semester == "" {
		semester = "Both"
	}

	course := &model.Course{
		Code:          req.Code,
		Name:          req.Name,
		Credits:       req.Credits,
		Department:    req.Department,
		Description:   req.Description,
		Prerequisites: model.StringArray{},
		Semester:      semester,
		Year:          req.Year,
		TimeSlots:     normalizeSlots(req.TimeSlots),
		MaxCapacity:   req.MaxCapacity,
	}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}

	s.logger.Info("课程创建成功", zap.String("code", course.Code), zap.Uint("id", course.ID))
	return course, nil
}

func (s *courseService) Import(ctx context.Context, filename string, file io.Reader) (*dto.ImportResult, error) {
	lower := strings.ToLower(filename)

	var (
		courses []model.Course
		err     error
	)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		courses, err = parseCoursesCSV(file)
	case strings.HasSuffix(lower, ".json"):
		courses, err = parseCoursesJSON(file)
	default:
		return nil, ErrUnsupportedFileType
	}
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, ErrNoValidCourses
	}

	result := &dto.ImportResult{}
	for i := range courses {
		if err := s.repo.Course.Upsert(ctx, &courses[i]); err != nil {
			s.logger.Warn("课程导入写入失败",
				zap.String("code", courses[i].Code), zap.Error(err))
			result.Errors = append(result.Errors, "课程 "+courses[i].Code+" 写入失败")
			result.Skipped++
			continue
		}
		result.Imported++
	}

	s.logger.Info("课程导入完成",
		zap.String("filename", filename),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *courseService) ExportCSV(ctx context.Context) (*bytes.Buffer, string, error) {
	courses, err := s.repo.Course.List(ctx, repository.CourseFilter{})
	if err != nil {
		s.logger.Error("导出课程查询失败", zap.Error(err))
		return nil, "", err
	}

	buf, err := writeCoursesCSV(courses)
	if err != nil {
		return nil, "", err
	}
	return buf, "courses_export.csv", nil
}

func (s *courseService) Clear(ctx context.Context) error {
	if err := s.repo.Course.DeleteAll(ctx); err != nil {
		s.logger.Error("清空课程失败", zap.Error(err))
		return err
	}
	s.logger.Info("全部课程已清空")
	return nil
}

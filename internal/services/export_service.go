package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/edu-market/course-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

var courseExportHeaders = []string{"ID", "Title", "Category", "Teacher", "Price", "Enrollments", "Created At"}

// ExportCourses renders the whole catalog as an xlsx workbook
func (s *exportService) ExportCourses(ctx context.Context) ([]byte, error) {
	courses, _, err := s.repo.Course().List(ctx, repositories.CourseFilters{SortBy: "created_at"})
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Courses"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range courseExportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, course := range courses {
		enrollments, err := s.repo.Enrollment().List(ctx, repositories.EnrollmentFilters{CourseID: &course.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to count enrollments: %w", err)
		}

		teacherName := ""
		if course.TeacherName != nil {
			teacherName = *course.TeacherName
		}

		values := []interface{}{
			course.ID,
			course.Title,
			course.CategoryName,
			teacherName,
			course.Price.StringFixed(2),
			len(enrollments),
			course.CreatedAt.Format("2006-01-02 15:04:05"),
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.InfoContext(ctx, "Catalog exported", "courses", len(courses))
	return buf.Bytes(), nil
}

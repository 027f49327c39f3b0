package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/conjugo/quiz-service/internal/models"
	"github.com/conjugo/quiz-service/internal/repositories"
	"github.com/conjugo/quiz-service/internal/utils"
)

// ExportService renders the result log as downloadable files for the
// teacher. A nil weekID exports all weeks.
type ExportService interface {
	ExportCSV(ctx context.Context, weekID *int) ([]byte, error)
	ExportExcel(ctx context.Context, weekID *int) ([]byte, error)
}

type exportService struct {
	log    repositories.ResultLog
	stats  StatsService
	logger utils.Logger
}

func NewExportService(log repositories.ResultLog, stats StatsService, logger utils.Logger) ExportService {
	return &exportService{log: log, stats: stats, logger: logger}
}

// resultHeader matches the columns of the original flat-file results
// export consumed by the teacher's spreadsheet workflow.
var resultHeader = []string{"Date", "Student", "Score", "Week"}

func (s *exportService) ExportCSV(ctx context.Context, weekID *int) ([]byte, error) {
	subs, err := s.fetch(ctx, weekID)
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	if err := writer.Write(resultHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, sub := range subs {
		if err := writer.Write(resultRow(sub)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	s.logger.Info("Exported results as CSV", "rows", len(subs))
	return []byte(buf.String()), nil
}

func (s *exportService) ExportExcel(ctx context.Context, weekID *int) ([]byte, error) {
	subs, err := s.fetch(ctx, weekID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, header := range resultHeader {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}
	for rowIndex, sub := range subs {
		for colIndex, value := range resultRow(sub) {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	if err := s.writeSummarySheet(ctx, f, weekID); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported results as Excel", "rows", len(subs))
	return buf.Bytes(), nil
}

// writeSummarySheet adds a per-student summary next to the raw rows.
func (s *exportService) writeSummarySheet(ctx context.Context, f *excelize.File, weekID *int) error {
	dashboard, err := s.stats.Dashboard(ctx, weekID)
	if err != nil {
		return err
	}

	sheetName := "Students"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []string{"Student", "Submissions", "Mean Score", "Best Score", "Weeks"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, st := range dashboard.Students {
		row := rowIndex + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), st.Student)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), st.Submissions)
		if st.MeanPercent != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("%.2f", *st.MeanPercent))
		}
		if st.BestPercent != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("%.2f", *st.BestPercent))
		}
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), joinWeeks(st.Weeks))
	}

	return nil
}

func (s *exportService) fetch(ctx context.Context, weekID *int) ([]*models.Submission, error) {
	var subs []*models.Submission
	var err error
	if weekID != nil {
		subs, err = s.log.ByWeek(ctx, *weekID)
	} else {
		subs, err = s.log.All(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read result log: %w", err)
	}
	if len(subs) == 0 {
		return nil, ErrNoResults
	}
	return subs, nil
}

func resultRow(sub *models.Submission) []string {
	return []string{
		sub.SubmittedAt.UTC().Format("2006-01-02 15:04"),
		sub.StudentName,
		fmt.Sprintf("%.2f", sub.Percent),
		fmt.Sprintf("week%d", sub.WeekID),
	}
}

func joinWeeks(weeks []int) string {
	parts := make([]string, len(weeks))
	for i, w := range weeks {
		parts[i] = fmt.Sprintf("week%d", w)
	}
	return strings.Join(parts, ", ")
}

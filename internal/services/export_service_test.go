package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/conjugo/quiz-service/internal/repositories/memory"
	"github.com/conjugo/quiz-service/internal/utils"
)

func newTestExportService(t *testing.T, log *memory.MemoryLog) ExportService {
	t.Helper()
	logger := utils.NewDevelopmentLogger()
	return NewExportService(log, NewStatsService(log, logger), logger)
}

func TestExportCSV(t *testing.T) {
	svc := newTestExportService(t, seededLog(t, sampleSubmissions()))

	out, err := svc.ExportCSV(context.Background(), nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)

	assert.Equal(t, []string{"Date", "Student", "Score", "Week"}, records[0])
	assert.Equal(t, []string{"2026-09-10 12:00", "Ana", "40.00", "week1"}, records[1])
	assert.Equal(t, "week2", records[2][3])
}

func TestExportCSV_WeekFilter(t *testing.T) {
	svc := newTestExportService(t, seededLog(t, sampleSubmissions()))

	week := 1
	out, err := svc.ExportCSV(context.Background(), &week)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	for _, row := range records[1:] {
		assert.Equal(t, "week1", row[3])
	}
}

func TestExportCSV_Empty(t *testing.T) {
	svc := newTestExportService(t, memory.NewMemoryLog())

	_, err := svc.ExportCSV(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrNoResults))
	assert.True(t, IsEmptyData(err))
}

func TestExportExcel(t *testing.T) {
	svc := newTestExportService(t, seededLog(t, sampleSubmissions()))

	out, err := svc.ExportExcel(context.Background(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Date", "Student", "Score", "Week"}, rows[0])
	assert.Equal(t, "Ana", rows[1][1])

	// Summary sheet sorted by mean descending.
	students, err := f.GetRows("Students")
	require.NoError(t, err)
	require.Len(t, students, 4)
	assert.Equal(t, "Student", students[0][0])
	assert.Equal(t, "Ben", students[1][0])
	assert.Equal(t, "75.00", students[1][2])
	assert.Equal(t, "week1, week2", students[1][4])
}

func TestExportExcel_Empty(t *testing.T) {
	svc := newTestExportService(t, memory.NewMemoryLog())

	_, err := svc.ExportExcel(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrNoResults))
}

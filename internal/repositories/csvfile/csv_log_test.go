package csvfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/conjugo/quiz-service/internal/models"
)

func tempLog(t *testing.T) (string, *CSVLog) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.csv")
	return path, NewCSVLog(path).(*CSVLog)
}

func sampleSubmission(id, student string, week int) *models.Submission {
	return &models.Submission{
		ID:          id,
		StudentName: student,
		WeekID:      week,
		SubmittedAt: time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC),
		Hits:        8,
		MaxScore:    20,
		Percent:     40,
		Passed:      false,
		Items:       datatypes.JSON(`[{"verb":"go","form":"past simple","submitted":"went","expected":"went","correct":true,"scored":true}]`),
	}
}

func TestAppendAndReadBack(t *testing.T) {
	_, log := tempLog(t)
	ctx := context.Background()

	want := sampleSubmission("s1", "Ana", 1)
	require.NoError(t, log.Append(ctx, want))

	subs, err := log.All(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	got := subs[0]
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.StudentName, got.StudentName)
	assert.Equal(t, want.WeekID, got.WeekID)
	assert.True(t, want.SubmittedAt.Equal(got.SubmittedAt))
	assert.Equal(t, want.Hits, got.Hits)
	assert.Equal(t, want.MaxScore, got.MaxScore)
	assert.Equal(t, want.Percent, got.Percent)
	assert.Equal(t, want.Passed, got.Passed)
	assert.JSONEq(t, string(want.Items), string(got.Items))
}

func TestAll_MissingFile(t *testing.T) {
	_, log := tempLog(t)

	subs, err := log.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestAppend_HeaderWrittenOnce(t *testing.T) {
	path, log := tempLog(t)
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, sampleSubmission("s1", "Ana", 1)))
	require.NoError(t, log.Append(ctx, sampleSubmission("s2", "Ben", 1)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "id,date,student"))

	subs, err := log.All(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestFilters(t *testing.T) {
	_, log := tempLog(t)
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, sampleSubmission("s1", "Ana", 1)))
	require.NoError(t, log.Append(ctx, sampleSubmission("s2", "Ana", 2)))
	require.NoError(t, log.Append(ctx, sampleSubmission("s3", "Ben", 1)))

	byWeek, err := log.ByWeek(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byWeek, 2)

	byStudent, err := log.ByStudent(ctx, "Ana")
	require.NoError(t, err)
	assert.Len(t, byStudent, 2)

	none, err := log.ByStudent(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

// Two students hitting submit at the same moment must both end up in the
// file with intact rows.
func TestAppend_Concurrent(t *testing.T) {
	_, log := tempLog(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sub := sampleSubmission(fmt.Sprintf("s%d", i), fmt.Sprintf("student%d", i), 1)
			assert.NoError(t, log.Append(ctx, sub))
		}(i)
	}
	wg.Wait()

	subs, err := log.All(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, n)
}

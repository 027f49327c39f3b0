// Package csvfile persists the result log as an append-only CSV file, the
// classroom-scale storage this service started with. Appends are
// serialized with a mutex so simultaneous submissions cannot interleave
// rows; each record is flushed in a single write.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/conjugo/quiz-service/internal/models"
	"github.com/conjugo/quiz-service/internal/repositories"
)

var header = []string{"id", "date", "student", "week", "hits", "max", "percent", "passed", "items"}

type CSVLog struct {
	path string
	mu   sync.Mutex
}

func NewCSVLog(path string) repositories.ResultLog {
	return &CSVLog{path: path}
}

func (l *CSVLog) Append(ctx context.Context, sub *models.Submission) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	writeHeader := false
	if _, err := os.Stat(l.path); errors.Is(err, os.ErrNotExist) {
		writeHeader = true
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", repositories.ErrWriteFailed, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("%w: %v", repositories.ErrWriteFailed, err)
		}
	}

	record := []string{
		sub.ID,
		sub.SubmittedAt.UTC().Format(time.RFC3339),
		sub.StudentName,
		strconv.Itoa(sub.WeekID),
		strconv.Itoa(sub.Hits),
		strconv.Itoa(sub.MaxScore),
		strconv.FormatFloat(sub.Percent, 'f', -1, 64),
		strconv.FormatBool(sub.Passed),
		string(sub.Items),
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("%w: %v", repositories.ErrWriteFailed, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %v", repositories.ErrWriteFailed, err)
	}
	return nil
}

func (l *CSVLog) All(ctx context.Context) ([]*models.Submission, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readAll()
}

func (l *CSVLog) ByWeek(ctx context.Context, weekID int) ([]*models.Submission, error) {
	subs, err := l.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Submission, 0, len(subs))
	for _, s := range subs {
		if s.WeekID == weekID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (l *CSVLog) ByStudent(ctx context.Context, studentName string) ([]*models.Submission, error) {
	subs, err := l.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Submission, 0, len(subs))
	for _, s := range subs {
		if s.StudentName == studentName {
			out = append(out, s)
		}
	}
	return out, nil
}

func (l *CSVLog) readAll() ([]*models.Submission, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil // no submissions yet
		}
		return nil, fmt.Errorf("failed to open result log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read result log: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	subs := make([]*models.Submission, 0, len(records)-1)
	for i, rec := range records[1:] {
		sub, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("result log row %d: %w", i+2, err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func parseRecord(rec []string) (*models.Submission, error) {
	submittedAt, err := time.Parse(time.RFC3339, rec[1])
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	weekID, err := strconv.Atoi(rec[3])
	if err != nil {
		return nil, fmt.Errorf("invalid week: %w", err)
	}
	hits, err := strconv.Atoi(rec[4])
	if err != nil {
		return nil, fmt.Errorf("invalid hits: %w", err)
	}
	max, err := strconv.Atoi(rec[5])
	if err != nil {
		return nil, fmt.Errorf("invalid max: %w", err)
	}
	percent, err := strconv.ParseFloat(rec[6], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid percent: %w", err)
	}
	passed, err := strconv.ParseBool(rec[7])
	if err != nil {
		return nil, fmt.Errorf("invalid passed flag: %w", err)
	}

	return &models.Submission{
		ID:          rec[0],
		StudentName: rec[2],
		WeekID:      weekID,
		SubmittedAt: submittedAt,
		Hits:        hits,
		MaxScore:    max,
		Percent:     percent,
		Passed:      passed,
		Items:       datatypes.JSON(rec[8]),
	}, nil
}

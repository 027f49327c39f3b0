// Package memory provides an in-memory result log, used in tests and as a
// throwaway backend for local runs.
package memory

import (
	"context"
	"sync"

	"github.com/conjugo/quiz-service/internal/models"
	"github.com/conjugo/quiz-service/internal/repositories"
)

type MemoryLog struct {
	mu   sync.RWMutex
	subs []*models.Submission
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

var _ repositories.ResultLog = (*MemoryLog)(nil)

func (l *MemoryLog) Append(ctx context.Context, sub *models.Submission) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *sub
	l.subs = append(l.subs, &cp)
	return nil
}

func (l *MemoryLog) All(ctx context.Context) ([]*models.Submission, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*models.Submission, len(l.subs))
	copy(out, l.subs)
	return out, nil
}

func (l *MemoryLog) ByWeek(ctx context.Context, weekID int) ([]*models.Submission, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*models.Submission
	for _, s := range l.subs {
		if s.WeekID == weekID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (l *MemoryLog) ByStudent(ctx context.Context, studentName string) ([]*models.Submission, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*models.Submission
	for _, s := range l.subs {
		if s.StudentName == studentName {
			out = append(out, s)
		}
	}
	return out, nil
}

package repositories

import (
	"context"
	"errors"

	"github.com/conjugo/quiz-service/internal/models"
)

// ErrWriteFailed wraps persistence failures during an append so callers can
// distinguish a lost record from a validation problem.
var ErrWriteFailed = errors.New("result log write failed")

// ResultLog is the append-only record of graded submissions. Appended
// records are never mutated or deleted; reads return snapshots that never
// contain partially written records. Implementations must tolerate
// concurrent appenders without losing records.
type ResultLog interface {
	Append(ctx context.Context, sub *models.Submission) error
	All(ctx context.Context) ([]*models.Submission, error)
	ByWeek(ctx context.Context, weekID int) ([]*models.Submission, error)
	ByStudent(ctx context.Context, studentName string) ([]*models.Submission, error)
}

// IsWriteError reports whether err came from a failed append.
func IsWriteError(err error) bool {
	return errors.Is(err, ErrWriteFailed)
}

package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/conjugo/quiz-service/internal/models"
	"github.com/conjugo/quiz-service/internal/repositories"
)

type SubmissionPostgreSQL struct {
	db *gorm.DB
}

func NewSubmissionPostgreSQL(db *gorm.DB) repositories.ResultLog {
	return &SubmissionPostgreSQL{db: db}
}

// Migrate creates the submissions table. Called once at startup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Submission{})
}

func (s SubmissionPostgreSQL) Append(ctx context.Context, sub *models.Submission) error {
	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("%w: %v", repositories.ErrWriteFailed, err)
	}
	return nil
}

func (s SubmissionPostgreSQL) All(ctx context.Context) ([]*models.Submission, error) {
	var subs []*models.Submission
	if err := s.db.WithContext(ctx).
		Order("submitted_at asc").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s SubmissionPostgreSQL) ByWeek(ctx context.Context, weekID int) ([]*models.Submission, error) {
	var subs []*models.Submission
	if err := s.db.WithContext(ctx).
		Where("week_id = ?", weekID).
		Order("submitted_at asc").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s SubmissionPostgreSQL) ByStudent(ctx context.Context, studentName string) ([]*models.Submission, error) {
	var subs []*models.Submission
	if err := s.db.WithContext(ctx).
		Where("student_name = ?", studentName).
		Order("submitted_at asc").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

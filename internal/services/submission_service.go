package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conjugo/quiz-service/internal/content"
	"github.com/conjugo/quiz-service/internal/events"
	"github.com/conjugo/quiz-service/internal/models"
	"github.com/conjugo/quiz-service/internal/repositories"
	"github.com/conjugo/quiz-service/internal/utils"
	"github.com/conjugo/quiz-service/internal/validator"
)

// SubmissionService runs the full submission flow: validate, grade, record,
// publish. Each call is synchronous and independent; the log append is the
// only side effect that must not be lost.
type SubmissionService interface {
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
}

// SubmitRequest is the inbound answer set. Answers are verb-major in form
// order, models.FormsPerVerb entries per verb.
type SubmitRequest struct {
	StudentName string   `json:"student_name" validate:"required,min=1,max=100"`
	WeekID      int      `json:"week_id" validate:"required,week_id"`
	Answers     []string `json:"answers" validate:"required"`
}

// SubmitResult pairs the persisted record with the detailed grading.
type SubmitResult struct {
	Submission *models.Submission `json:"submission"`
	Grade      *GradeResult       `json:"grade"`
}

type submissionService struct {
	store     content.Store
	log       repositories.ResultLog
	grader    GraderService
	publisher events.EventPublisher
	logger    utils.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewSubmissionService(
	store content.Store,
	log repositories.ResultLog,
	grader GraderService,
	publisher events.EventPublisher,
	logger utils.Logger,
	v *validator.Validator,
) SubmissionService {
	return &submissionService{
		store:     store,
		log:       log,
		grader:    grader,
		publisher: publisher,
		logger:    logger,
		validator: v,
		now:       time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	req.StudentName = strings.TrimSpace(req.StudentName)

	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	week, err := s.store.GetWeek(req.WeekID)
	if err != nil {
		return nil, err
	}

	grade, err := s.grader.Grade(week, req.Answers)
	if err != nil {
		return nil, err
	}

	sub, err := buildSubmission(req.StudentName, grade, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.log.Append(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	s.logger.Info("Submission graded",
		"submission_id", sub.ID,
		"student", sub.StudentName,
		"week_id", sub.WeekID,
		"hits", sub.Hits,
		"max", sub.MaxScore,
		"passed", sub.Passed)

	// Publishing is best effort: the submission is already safely
	// recorded, so a broker outage must not fail the request.
	event := events.NewSubmissionGradedEvent(uuid.NewString(), events.SubmissionGradedEvent{
		SubmissionID: sub.ID,
		StudentName:  sub.StudentName,
		WeekID:       sub.WeekID,
		Hits:         sub.Hits,
		MaxScore:     sub.MaxScore,
		Percent:      sub.Percent,
		Passed:       sub.Passed,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.LogError(err, "Failed to publish graded event", "submission_id", sub.ID)
	}

	return &SubmitResult{Submission: sub, Grade: grade}, nil
}

func buildSubmission(studentName string, grade *GradeResult, at time.Time) (*models.Submission, error) {
	items := make([]models.ItemResult, 0, grade.Max)
	for _, vr := range grade.Verbs {
		for _, fr := range vr.Forms {
			items = append(items, models.ItemResult{
				Verb:      vr.Verb,
				Form:      fr.Form,
				Submitted: fr.Submitted,
				Expected:  fr.Expected,
				Correct:   fr.Correct,
				Scored:    fr.Scored,
			})
		}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item detail: %w", err)
	}

	return &models.Submission{
		ID:          uuid.NewString(),
		StudentName: studentName,
		WeekID:      grade.WeekID,
		SubmittedAt: at,
		Hits:        grade.Hits,
		MaxScore:    grade.Max,
		Percent:     grade.Percent,
		Passed:      grade.Passed,
		Items:       itemsJSON,
	}, nil
}

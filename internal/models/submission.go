package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission is one graded answer set for one (student, week) pair. It is
// appended to the result log at grading time and never mutated afterwards.
type Submission struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	StudentName string    `json:"student_name" gorm:"not null;size:100;index"`
	WeekID      int       `json:"week_id" gorm:"not null;index"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"not null;index"`

	// Grading outcome
	Hits     int     `json:"hits" gorm:"not null"`
	MaxScore int     `json:"max_score" gorm:"not null"`
	Percent  float64 `json:"percent" gorm:"not null"`
	Passed   bool    `json:"passed" gorm:"not null"`

	// Per-cell detail, []ItemResult
	Items datatypes.JSON `json:"items" gorm:"type:jsonb"`
}

// ItemResult records the grading of a single quiz cell.
type ItemResult struct {
	Verb      string `json:"verb"`
	Form      string `json:"form"`
	Submitted string `json:"submitted"`
	Expected  string `json:"expected"`
	Correct   bool   `json:"correct"`
	Scored    bool   `json:"scored"`
}

// Ratio returns the score as a fraction of the maximum, 0 when the week
// had no graded cells.
func (s *Submission) Ratio() float64 {
	if s.MaxScore == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.MaxScore)
}

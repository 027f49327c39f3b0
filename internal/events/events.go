package events

import "time"

type EventType string

const (
	EventSubmissionGraded EventType = "submission.graded"
)

// Event is the envelope every published message uses.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// SubmissionGradedEvent is emitted after a submission has been graded and
// appended to the result log.
type SubmissionGradedEvent struct {
	SubmissionID string  `json:"submission_id"`
	StudentName  string  `json:"student_name"`
	WeekID       int     `json:"week_id"`
	Hits         int     `json:"hits"`
	MaxScore     int     `json:"max_score"`
	Percent      float64 `json:"percent"`
	Passed       bool    `json:"passed"`
}

const (
	eventSource  = "quiz-service"
	eventVersion = "1.0"
)

// NewSubmissionGradedEvent wraps the payload in the standard envelope.
func NewSubmissionGradedEvent(id string, data SubmissionGradedEvent) *Event {
	return &Event{
		ID:        id,
		Type:      EventSubmissionGraded,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

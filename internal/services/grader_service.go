package services

import (
	"fmt"
	"strings"

	"github.com/conjugo/quiz-service/internal/models"
)

// GraderService grades one submitted answer set against a week's expected
// forms. Grading is a pure function of its inputs: no clock, no storage,
// no logging.
type GraderService interface {
	Grade(week *models.Week, answers []string) (*GradeResult, error)
	PassThreshold() float64
}

// FormResult is the grading of a single quiz cell. Unscored cells (the
// base form) keep their submitted/expected values for display but never
// count toward the score.
type FormResult struct {
	Form      string `json:"form"`
	Submitted string `json:"submitted"`
	Expected  string `json:"expected"`
	Correct   bool   `json:"correct"`
	Scored    bool   `json:"scored"`
}

// VerbResult groups the five cells of one verb.
type VerbResult struct {
	Verb  string       `json:"verb"`
	Forms []FormResult `json:"forms"`
}

// GradeResult is the full outcome of grading one submission.
type GradeResult struct {
	WeekID  int          `json:"week_id"`
	Hits    int          `json:"hits"`
	Max     int          `json:"max"`
	Ratio   float64      `json:"ratio"`
	Percent float64      `json:"percent"`
	Passed  bool         `json:"passed"`
	Verbs   []VerbResult `json:"verbs"`
}

type graderService struct {
	threshold float64
}

// NewGraderService creates a grader with the given pass threshold, a
// fraction in [0,1].
func NewGraderService(threshold float64) GraderService {
	return &graderService{threshold: threshold}
}

func (g *graderService) PassThreshold() float64 {
	return g.threshold
}

// Grade compares the submitted answers against the week's verbs. Answers
// are expected verb-major in form order (base, 3rd person, -ing, past
// simple, past participle), models.FormsPerVerb per verb. A wrong-length
// answer slice is a validation error; an empty answer is simply wrong.
func (g *graderService) Grade(week *models.Week, answers []string) (*GradeResult, error) {
	want := week.AnswerCount()
	if len(answers) != want {
		return nil, fmt.Errorf("%w: want %d answers for week %d, got %d",
			ErrAnswerCountMismatch, want, week.ID, len(answers))
	}

	result := &GradeResult{
		WeekID: week.ID,
		Max:    week.MaxScore(),
		Verbs:  make([]VerbResult, 0, len(week.Verbs)),
	}

	for vi, verb := range week.Verbs {
		vr := VerbResult{Verb: verb.Base, Forms: make([]FormResult, 0, models.FormsPerVerb)}
		forms := verb.Forms()
		for fi := 0; fi < models.FormsPerVerb; fi++ {
			submitted := answers[vi*models.FormsPerVerb+fi]
			expected := forms[fi]
			scored := fi != 0 // base form is given, not graded

			correct := Normalize(submitted) == Normalize(expected) && Normalize(submitted) != ""
			if scored && correct {
				result.Hits++
			}

			vr.Forms = append(vr.Forms, FormResult{
				Form:      models.FormLabels[fi],
				Submitted: strings.TrimSpace(submitted),
				Expected:  expected,
				Correct:   correct,
				Scored:    scored,
			})
		}
		result.Verbs = append(result.Verbs, vr)
	}

	if result.Max > 0 {
		result.Ratio = float64(result.Hits) / float64(result.Max)
	}
	result.Percent = result.Ratio * 100
	result.Passed = result.Ratio >= g.threshold

	return result, nil
}

// Normalize is the single point of truth for answer comparison: trim
// surrounding whitespace, lowercase, and collapse internal whitespace runs
// to single spaces.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

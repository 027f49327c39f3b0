package models

import "time"

const (
	// VerbsPerWeek is the fixed number of verbs in every weekly quiz.
	VerbsPerWeek = 5

	// FormsPerVerb covers base, 3rd person singular, -ing, past simple
	// and past participle. The base form is shown on the quiz sheet and
	// submitted back unchanged, so submissions always carry
	// VerbsPerWeek * FormsPerVerb answers.
	FormsPerVerb = 5

	// ScoredFormsPerVerb excludes the base form from grading.
	ScoredFormsPerVerb = 4

	MinWeekID = 1
	MaxWeekID = 14
)

// FormLabels names the five conjugation targets in submission order.
var FormLabels = [FormsPerVerb]string{
	"base",
	"3rd person",
	"-ing",
	"past simple",
	"past participle",
}

// Verb holds one verb and its four conjugated target forms. The JSON tags
// follow the quizzes.json content format (v1 = base, v2 = past simple,
// v3 = past participle).
type Verb struct {
	Base           string `json:"v1"`
	ThirdPerson    string `json:"v1_3rd"`
	Gerund         string `json:"v1_ing"`
	PastSimple     string `json:"v2"`
	PastParticiple string `json:"v3"`
}

// Forms returns all five forms in submission order, base first.
func (v Verb) Forms() [FormsPerVerb]string {
	return [FormsPerVerb]string{v.Base, v.ThirdPerson, v.Gerund, v.PastSimple, v.PastParticiple}
}

// Week is one unit of curriculum content. Weeks are loaded once at startup
// and never mutated afterwards.
type Week struct {
	ID      int       `json:"id"`
	DueDate time.Time `json:"due_date"`
	Verbs   []Verb    `json:"verbs"`
}

// AnswerCount is the number of answer strings a submission for this week
// must carry, scored or not.
func (w *Week) AnswerCount() int {
	return len(w.Verbs) * FormsPerVerb
}

// MaxScore is the number of graded cells for this week.
func (w *Week) MaxScore() int {
	return len(w.Verbs) * ScoredFormsPerVerb
}

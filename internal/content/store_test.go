package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conjugo/quiz-service/internal/models"
)

const validContent = `{
  "week1": {
    "due_date": "2026-09-11",
    "verbs": {
      "go": {"v1": "go", "v1_3rd": "goes", "v1_ing": "going", "v2": "went", "v3": "gone"},
      "eat": {"v1": "eat", "v1_3rd": "eats", "v1_ing": "eating", "v2": "ate", "v3": "eaten"},
      "see": {"v1": "see", "v1_3rd": "sees", "v1_ing": "seeing", "v2": "saw", "v3": "seen"},
      "do": {"v1": "do", "v1_3rd": "does", "v1_ing": "doing", "v2": "did", "v3": "done"},
      "have": {"v1": "have", "v1_3rd": "has", "v1_ing": "having", "v2": "had", "v3": "had"}
    }
  },
  "week2": {
    "due_date": "2026-09-18",
    "verbs": {
      "take": {"v1": "take", "v1_3rd": "takes", "v1_ing": "taking", "v2": "took", "v3": "taken"},
      "make": {"v1": "make", "v1_3rd": "makes", "v1_ing": "making", "v2": "made", "v3": "made"},
      "come": {"v1": "come", "v1_3rd": "comes", "v1_ing": "coming", "v2": "came", "v3": "come"},
      "give": {"v1": "give", "v1_3rd": "gives", "v1_ing": "giving", "v2": "gave", "v3": "given"},
      "know": {"v1": "know", "v1_3rd": "knows", "v1_ing": "knowing", "v2": "knew", "v3": "known"}
    }
  }
}`

func TestLoad(t *testing.T) {
	store, err := Load([]byte(validContent))
	require.NoError(t, err)

	weeks := store.ListWeeks()
	require.Len(t, weeks, 2)
	assert.Equal(t, 1, weeks[0].ID)
	assert.Equal(t, 2, weeks[1].ID)

	week, err := store.GetWeek(1)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-11", week.DueDate.Format("2006-01-02"))
	require.Len(t, week.Verbs, models.VerbsPerWeek)

	// Verbs are sorted by base form for a stable layout.
	assert.Equal(t, "do", week.Verbs[0].Base)
	assert.Equal(t, "see", week.Verbs[4].Base)
	assert.Equal(t, 25, week.AnswerCount())
	assert.Equal(t, 20, week.MaxScore())
}

func TestLoad_UnknownWeek(t *testing.T) {
	store, err := Load([]byte(validContent))
	require.NoError(t, err)

	_, err = store.GetWeek(9)
	assert.True(t, errors.Is(err, ErrWeekNotFound))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{`},
		{"bad week key", `{"' week": {"due_date": "2026-09-11", "verbs": {}}}`},
		{"week id out of range", `{"week15": {"due_date": "2026-09-11", "verbs": {}}}`},
		{"bad due date", `{"week1": {"due_date": "soon", "verbs": {}}}`},
		{"wrong verb count", `{"week1": {"due_date": "2026-09-11", "verbs": {"go": {"v1": "go", "v1_3rd": "goes", "v1_ing": "going", "v2": "went", "v3": "gone"}}}}`},
		{"empty form", `{"week1": {"due_date": "2026-09-11", "verbs": {
			"go": {"v1": "go", "v1_3rd": "goes", "v1_ing": "going", "v2": "went", "v3": ""},
			"eat": {"v1": "eat", "v1_3rd": "eats", "v1_ing": "eating", "v2": "ate", "v3": "eaten"},
			"see": {"v1": "see", "v1_3rd": "sees", "v1_ing": "seeing", "v2": "saw", "v3": "seen"},
			"do": {"v1": "do", "v1_3rd": "does", "v1_ing": "doing", "v2": "did", "v3": "done"},
			"have": {"v1": "have", "v1_3rd": "has", "v1_ing": "having", "v2": "had", "v3": "had"}}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_BaseFormDefaultsToKey(t *testing.T) {
	content := `{"week3": {"due_date": "2026-09-25", "verbs": {
		"run": {"v1_3rd": "runs", "v1_ing": "running", "v2": "ran", "v3": "run", "v1": "run"},
		"say": {"v1_3rd": "says", "v1_ing": "saying", "v2": "said", "v3": "said"},
		"get": {"v1": "get", "v1_3rd": "gets", "v1_ing": "getting", "v2": "got", "v3": "gotten"},
		"find": {"v1": "find", "v1_3rd": "finds", "v1_ing": "finding", "v2": "found", "v3": "found"},
		"think": {"v1": "think", "v1_3rd": "thinks", "v1_ing": "thinking", "v2": "thought", "v3": "thought"}}}}`

	store, err := Load([]byte(content))
	require.NoError(t, err)

	week, err := store.GetWeek(3)
	require.NoError(t, err)
	for _, v := range week.Verbs {
		assert.NotEmpty(t, v.Base)
	}
}

package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/conjugo/quiz-service/internal/models"
)

// ErrWeekNotFound is returned for week ids not present in the loaded content.
var ErrWeekNotFound = errors.New("week not found")

// Store exposes the read-only weekly quiz content. Implementations must be
// safe for concurrent readers; the content never changes after load.
type Store interface {
	GetWeek(id int) (*models.Week, error)
	ListWeeks() []*models.Week
}

type fileStore struct {
	weeks map[int]*models.Week
	order []*models.Week
}

// weekFile mirrors one entry of quizzes.json:
//
//	{"week1": {"due_date": "2025-09-12", "verbs": {"go": {"v1": "go", ...}}}}
type weekFile struct {
	DueDate string                 `json:"due_date"`
	Verbs   map[string]models.Verb `json:"verbs"`
}

// LoadFile reads and validates the quiz content from path. Malformed
// content fails loudly here rather than at grading time.
func LoadFile(path string) (Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz content: %w", err)
	}
	return Load(data)
}

// Load parses quiz content from raw JSON.
func Load(data []byte) (Store, error) {
	var raw map[string]weekFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse quiz content: %w", err)
	}

	store := &fileStore{weeks: make(map[int]*models.Week, len(raw))}
	for key, wf := range raw {
		week, err := buildWeek(key, wf)
		if err != nil {
			return nil, err
		}
		if _, dup := store.weeks[week.ID]; dup {
			return nil, fmt.Errorf("duplicate week id %d in quiz content", week.ID)
		}
		store.weeks[week.ID] = week
	}

	store.order = make([]*models.Week, 0, len(store.weeks))
	for _, w := range store.weeks {
		store.order = append(store.order, w)
	}
	sort.Slice(store.order, func(i, j int) bool { return store.order[i].ID < store.order[j].ID })

	return store, nil
}

func buildWeek(key string, wf weekFile) (*models.Week, error) {
	var id int
	if _, err := fmt.Sscanf(key, "week%d", &id); err != nil {
		return nil, fmt.Errorf("invalid week key %q: %w", key, err)
	}
	if id < models.MinWeekID || id > models.MaxWeekID {
		return nil, fmt.Errorf("week id %d out of range [%d,%d]", id, models.MinWeekID, models.MaxWeekID)
	}

	due, err := time.Parse("2006-01-02", wf.DueDate)
	if err != nil {
		return nil, fmt.Errorf("week %d: invalid due date %q: %w", id, wf.DueDate, err)
	}

	if len(wf.Verbs) != models.VerbsPerWeek {
		return nil, fmt.Errorf("week %d: expected %d verbs, got %d", id, models.VerbsPerWeek, len(wf.Verbs))
	}

	verbs := make([]models.Verb, 0, len(wf.Verbs))
	for base, verb := range wf.Verbs {
		if verb.Base == "" {
			verb.Base = base
		}
		for _, form := range verb.Forms() {
			if form == "" {
				return nil, fmt.Errorf("week %d: verb %q has an empty form", id, base)
			}
		}
		verbs = append(verbs, verb)
	}
	// Content files use JSON objects keyed by base form, so verb order is
	// not preserved by the decoder. Sort for a stable quiz layout.
	sort.Slice(verbs, func(i, j int) bool { return verbs[i].Base < verbs[j].Base })

	return &models.Week{ID: id, DueDate: due, Verbs: verbs}, nil
}

func (s *fileStore) GetWeek(id int) (*models.Week, error) {
	week, ok := s.weeks[id]
	if !ok {
		return nil, fmt.Errorf("week %d: %w", id, ErrWeekNotFound)
	}
	return week, nil
}

func (s *fileStore) ListWeeks() []*models.Week {
	out := make([]*models.Week, len(s.order))
	copy(out, s.order)
	return out
}

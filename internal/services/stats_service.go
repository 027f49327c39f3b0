package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/conjugo/quiz-service/internal/models"
	"github.com/conjugo/quiz-service/internal/repositories"
	"github.com/conjugo/quiz-service/internal/utils"
)

// StatsService computes read-only statistics over the result log. All
// aggregation is order-independent: outputs are keyed and sorted, so a
// shuffled log produces identical results.
type StatsService interface {
	// Dashboard aggregates everything the teacher view needs. A nil
	// weekID means all weeks.
	Dashboard(ctx context.Context, weekID *int) (*DashboardStats, error)

	// StudentStats summarizes one student across all weeks. A student
	// with no submissions yields an empty summary, not an error.
	StudentStats(ctx context.Context, studentName string) (*StudentStats, error)

	// WeekStats summarizes one week across the class.
	WeekStats(ctx context.Context, weekID int) (*WeekStats, error)
}

// RecentSubmissions is how many of the latest submissions the dashboard
// lists.
const RecentSubmissions = 10

// ===== DATA STRUCTURES =====

// StudentStats is derived on demand and never persisted. MeanPercent and
// BestPercent are nil when the student has no submissions.
type StudentStats struct {
	Student     string   `json:"student"`
	Submissions int      `json:"submissions"`
	MeanPercent *float64 `json:"mean_percent"`
	BestPercent *float64 `json:"best_percent"`
	Weeks       []int    `json:"weeks"`
}

// WeekStats is the class-wide view of one week. MeanPercent and PassRate
// are nil when the week has no submissions.
type WeekStats struct {
	WeekID      int      `json:"week_id"`
	Submissions int      `json:"submissions"`
	MeanPercent *float64 `json:"mean_percent"`
	PassRate    *float64 `json:"pass_rate"`
}

// SubmissionSummary is one row of the recent-submissions listing.
type SubmissionSummary struct {
	ID          string  `json:"id"`
	Student     string  `json:"student"`
	WeekID      int     `json:"week_id"`
	SubmittedAt string  `json:"submitted_at"`
	Percent     float64 `json:"percent"`
	Passed      bool    `json:"passed"`
}

// DashboardStats bundles the overall, per-student and per-week metrics.
type DashboardStats struct {
	TotalSubmissions int                 `json:"total_submissions"`
	TotalStudents    int                 `json:"total_students"`
	MeanPercent      *float64            `json:"mean_percent"`
	PassRate         *float64            `json:"pass_rate"`
	Students         []StudentStats      `json:"students"`
	Weeks            []WeekStats         `json:"weeks"`
	Recent           []SubmissionSummary `json:"recent"`
}

type statsService struct {
	log    repositories.ResultLog
	logger utils.Logger
}

func NewStatsService(log repositories.ResultLog, logger utils.Logger) StatsService {
	return &statsService{log: log, logger: logger}
}

func (s *statsService) Dashboard(ctx context.Context, weekID *int) (*DashboardStats, error) {
	var subs []*models.Submission
	var err error
	if weekID != nil {
		subs, err = s.log.ByWeek(ctx, *weekID)
	} else {
		subs, err = s.log.All(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read result log: %w", err)
	}

	stats := &DashboardStats{
		TotalSubmissions: len(subs),
		Students:         []StudentStats{},
		Weeks:            []WeekStats{},
		Recent:           []SubmissionSummary{},
	}
	if len(subs) == 0 {
		return stats, nil
	}

	stats.MeanPercent = meanPercent(subs)
	stats.PassRate = passRate(subs)

	// Per-student breakdown
	byStudent := make(map[string][]*models.Submission)
	for _, sub := range subs {
		byStudent[sub.StudentName] = append(byStudent[sub.StudentName], sub)
	}
	stats.TotalStudents = len(byStudent)
	for name, group := range byStudent {
		stats.Students = append(stats.Students, buildStudentStats(name, group))
	}
	sort.Slice(stats.Students, func(i, j int) bool {
		a, b := stats.Students[i], stats.Students[j]
		if *a.MeanPercent != *b.MeanPercent {
			return *a.MeanPercent > *b.MeanPercent
		}
		return a.Student < b.Student
	})

	// Per-week breakdown
	byWeek := make(map[int][]*models.Submission)
	for _, sub := range subs {
		byWeek[sub.WeekID] = append(byWeek[sub.WeekID], sub)
	}
	for id, group := range byWeek {
		stats.Weeks = append(stats.Weeks, WeekStats{
			WeekID:      id,
			Submissions: len(group),
			MeanPercent: meanPercent(group),
			PassRate:    passRate(group),
		})
	}
	sort.Slice(stats.Weeks, func(i, j int) bool { return stats.Weeks[i].WeekID < stats.Weeks[j].WeekID })

	stats.Recent = recentSummaries(subs, RecentSubmissions)

	return stats, nil
}

func (s *statsService) StudentStats(ctx context.Context, studentName string) (*StudentStats, error) {
	subs, err := s.log.ByStudent(ctx, studentName)
	if err != nil {
		return nil, fmt.Errorf("failed to read result log: %w", err)
	}
	stats := buildStudentStats(studentName, subs)
	return &stats, nil
}

func (s *statsService) WeekStats(ctx context.Context, weekID int) (*WeekStats, error) {
	subs, err := s.log.ByWeek(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to read result log: %w", err)
	}
	return &WeekStats{
		WeekID:      weekID,
		Submissions: len(subs),
		MeanPercent: meanPercent(subs),
		PassRate:    passRate(subs),
	}, nil
}

// ===== AGGREGATION HELPERS =====

func buildStudentStats(name string, subs []*models.Submission) StudentStats {
	stats := StudentStats{
		Student:     name,
		Submissions: len(subs),
		Weeks:       []int{},
	}
	if len(subs) == 0 {
		return stats
	}

	stats.MeanPercent = meanPercent(subs)

	best := subs[0].Percent
	weekSet := make(map[int]struct{})
	for _, sub := range subs {
		if sub.Percent > best {
			best = sub.Percent
		}
		weekSet[sub.WeekID] = struct{}{}
	}
	stats.BestPercent = &best

	for id := range weekSet {
		stats.Weeks = append(stats.Weeks, id)
	}
	sort.Ints(stats.Weeks)

	return stats
}

// meanPercent returns nil for an empty group: the absence of a mean is
// not a mean of zero.
func meanPercent(subs []*models.Submission) *float64 {
	if len(subs) == 0 {
		return nil
	}
	var sum float64
	for _, s := range subs {
		sum += s.Percent
	}
	mean := sum / float64(len(subs))
	return &mean
}

func passRate(subs []*models.Submission) *float64 {
	if len(subs) == 0 {
		return nil
	}
	var passed int
	for _, s := range subs {
		if s.Passed {
			passed++
		}
	}
	rate := float64(passed) / float64(len(subs))
	return &rate
}

func recentSummaries(subs []*models.Submission, n int) []SubmissionSummary {
	sorted := make([]*models.Submission, len(subs))
	copy(sorted, subs)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.After(b.SubmittedAt)
		}
		return a.ID < b.ID // stable order for identical timestamps
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]SubmissionSummary, 0, len(sorted))
	for _, s := range sorted {
		out = append(out, SubmissionSummary{
			ID:          s.ID,
			Student:     s.StudentName,
			WeekID:      s.WeekID,
			SubmittedAt: s.SubmittedAt.UTC().Format("2006-01-02 15:04"),
			Percent:     s.Percent,
			Passed:      s.Passed,
		})
	}
	return out
}

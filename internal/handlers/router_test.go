package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/conjugo/quiz-service/internal/auth"
	"github.com/conjugo/quiz-service/internal/cache"
	"github.com/conjugo/quiz-service/internal/content"
	"github.com/conjugo/quiz-service/internal/events"
	"github.com/conjugo/quiz-service/internal/repositories/memory"
	"github.com/conjugo/quiz-service/internal/services"
	"github.com/conjugo/quiz-service/internal/utils"
	"github.com/conjugo/quiz-service/internal/validator"
)

const teacherPassword = "hunter2"

const testContent = `{
	"week1": {
		"due_date": "2026-09-11",
		"verbs": {
			"go":   {"v1_3rd": "goes",  "v1_ing": "going",  "v2": "went", "v3": "gone"},
			"eat":  {"v1_3rd": "eats",  "v1_ing": "eating", "v2": "ate",  "v3": "eaten"},
			"see":  {"v1_3rd": "sees",  "v1_ing": "seeing", "v2": "saw",  "v3": "seen"},
			"do":   {"v1_3rd": "does",  "v1_ing": "doing",  "v2": "did",  "v3": "done"},
			"have": {"v1_3rd": "has",   "v1_ing": "having", "v2": "had",  "v3": "had"}
		}
	}
}`

type testServer struct {
	router *gin.Engine
	log    *memory.MemoryLog
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := content.Load([]byte(testContent))
	require.NoError(t, err)

	logger := utils.NewDevelopmentLogger()
	log := memory.NewMemoryLog()
	publisher := events.NewMockEventPublisher(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	v := validator.New()

	grader := services.NewGraderService(0.7)
	stats := services.NewStatsService(log, logger)
	export := services.NewExportService(log, stats, logger)
	submissions := services.NewSubmissionService(store, log, grader, publisher, logger, v)
	sessions := auth.NewSessionService(cache.NewMemoryCache(), teacherPassword)

	router := gin.New()
	NewHandlerManager(store, submissions, stats, export, sessions, logger).SetupRoutes(router)

	return &testServer{router: router, log: log}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/teacher/login", "", gin.H{"password": teacherPassword})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func (s *testServer) submitAnswers(t *testing.T, student string, answers []string) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodPost, "/api/v1/submissions", "", gin.H{
		"student_name": student,
		"week_id":      1,
		"answers":      answers,
	})
}

// week1Answers returns a correct answer set for the test content, in the
// sorted verb order the store serves: do, eat, go, have, see.
func week1Answers() []string {
	return []string{
		"do", "does", "doing", "did", "done",
		"eat", "eats", "eating", "ate", "eaten",
		"go", "goes", "going", "went", "gone",
		"have", "has", "having", "had", "had",
		"see", "sees", "seeing", "saw", "seen",
	}
}

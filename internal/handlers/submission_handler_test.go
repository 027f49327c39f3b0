package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conjugo/quiz-service/internal/services"
)

func TestSubmit_Endpoint(t *testing.T) {
	srv := newTestServer(t)

	w := srv.submitAnswers(t, "Ana", week1Answers())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message string                `json:"message"`
		Data    services.SubmitResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Submission graded", resp.Message)
	assert.Equal(t, "Ana", resp.Data.Submission.StudentName)
	assert.Equal(t, 20, resp.Data.Submission.Hits)
	assert.True(t, resp.Data.Submission.Passed)
	require.NotNil(t, resp.Data.Grade)
	assert.Len(t, resp.Data.Grade.Verbs, 5)

	stored, err := srv.log.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestSubmit_ValidationError(t *testing.T) {
	srv := newTestServer(t)

	w := srv.submitAnswers(t, "", week1Answers())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/api/v1/submissions", "", gin.H{
		"student_name": "Ana",
		"week_id":      1,
		"answers":      []string{"only", "two"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stored, err := srv.log.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSubmit_UnknownWeek(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/v1/submissions", "", gin.H{
		"student_name": "Ana",
		"week_id":      99,
		"answers":      week1Answers(),
	})
	// Out-of-range week ids fail validation before the store lookup.
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/api/v1/submissions", "", gin.H{
		"student_name": "Ana",
		"week_id":      2,
		"answers":      week1Answers(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmit_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/v1/submissions", "", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/conjugo/quiz-service/internal/content"
	"github.com/conjugo/quiz-service/internal/models"
	"github.com/conjugo/quiz-service/internal/utils"
)

// QuizHandler serves the quiz content students see. Expected forms are
// stripped from every payload: only the base forms and due dates go out.
type QuizHandler struct {
	BaseHandler
	store content.Store
}

func NewQuizHandler(store content.Store, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		store:       store,
	}
}

// WeekView is the student-facing shape of a week.
type WeekView struct {
	ID      int      `json:"id"`
	DueDate string   `json:"due_date"`
	Verbs   []string `json:"verbs"`
	Forms   []string `json:"forms"`
}

// ListWeeks returns all weeks ordered by id
func (h *QuizHandler) ListWeeks(c *gin.Context) {
	weeks := h.store.ListWeeks()
	views := make([]WeekView, 0, len(weeks))
	for _, w := range weeks {
		views = append(views, toWeekView(w))
	}
	h.RespondWithSuccess(c, http.StatusOK, "Weeks retrieved successfully", views)
}

// GetWeek returns one week's quiz sheet
func (h *QuizHandler) GetWeek(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid week id", err)
		return
	}

	week, err := h.store.GetWeek(id)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Week retrieved successfully", toWeekView(week))
}

func toWeekView(w *models.Week) WeekView {
	verbs := make([]string, 0, len(w.Verbs))
	for _, v := range w.Verbs {
		verbs = append(verbs, v.Base)
	}
	return WeekView{
		ID:      w.ID,
		DueDate: w.DueDate.Format("2006-01-02"),
		Verbs:   verbs,
		Forms:   models.FormLabels[:],
	}
}

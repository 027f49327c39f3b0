package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/conjugo/quiz-service/internal/auth"
	"github.com/conjugo/quiz-service/internal/services"
	"github.com/conjugo/quiz-service/internal/utils"
)

const sessionContextKey = "teacher_session"

// TeacherHandler serves the session-gated teacher surface: login, the
// statistics dashboard, and result exports.
type TeacherHandler struct {
	BaseHandler
	sessions auth.SessionService
	stats    services.StatsService
	export   services.ExportService
}

func NewTeacherHandler(
	sessions auth.SessionService,
	stats services.StatsService,
	export services.ExportService,
	logger utils.Logger,
) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler: NewBaseHandler(logger),
		sessions:    sessions,
		stats:       stats,
		export:      export,
	}
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// Login exchanges the shared teacher password for a session token.
func (h *TeacherHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	session, err := h.sessions.Login(c.Request.Context(), req.Password)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Logged in", LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Logout invalidates the presented session token.
func (h *TeacherHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Logged out", nil)
}

// Dashboard returns the aggregated statistics, optionally filtered to one
// week via ?week=N.
func (h *TeacherHandler) Dashboard(c *gin.Context) {
	weekID, ok := h.parseWeekQuery(c)
	if !ok {
		return
	}

	stats, err := h.stats.Dashboard(c.Request.Context(), weekID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Dashboard computed", stats)
}

// Export downloads the result log as csv (default) or xlsx.
func (h *TeacherHandler) Export(c *gin.Context) {
	weekID, ok := h.parseWeekQuery(c)
	if !ok {
		return
	}

	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		data, err := h.export.ExportCSV(c.Request.Context(), weekID)
		if err != nil {
			h.RespondWithServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="quiz_results.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, err := h.export.ExportExcel(c.Request.Context(), weekID)
		if err != nil {
			h.RespondWithServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="quiz_results.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		h.RespondWithError(c, http.StatusBadRequest, "Unsupported export format", nil, format)
	}
}

// SessionMiddleware resolves the bearer token and stores the session in
// the request context. Requests without a valid session are rejected.
func (h *TeacherHandler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := h.sessions.Get(c.Request.Context(), bearerToken(c))
		if err != nil {
			h.RespondWithServiceError(c, err)
			c.Abort()
			return
		}
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// SessionFromContext retrieves the authenticated session, nil when absent.
func SessionFromContext(c *gin.Context) *auth.Session {
	if v, exists := c.Get(sessionContextKey); exists {
		if session, ok := v.(*auth.Session); ok {
			return session
		}
	}
	return nil
}

func (h *TeacherHandler) parseWeekQuery(c *gin.Context) (*int, bool) {
	raw := c.Query("week")
	if raw == "" || raw == "all" {
		return nil, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid week filter", err, raw)
		return nil, false
	}
	return &id, true
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, found := strings.CutPrefix(header, "Bearer "); found {
		return token
	}
	return ""
}

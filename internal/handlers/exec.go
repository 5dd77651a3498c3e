package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"inspection-report/internal/models"
	"inspection-report/internal/services"
)

// ExecHandler serves the single-endpoint protocol used by the form client.
// Every answer is a 200; failures carry {status:"error", message}.
type ExecHandler struct {
	submissions *services.SubmissionService
	auth        *services.AuthService
	logger      *zap.Logger
}

func NewExecHandler(submissions *services.SubmissionService, auth *services.AuthService, logger *zap.Logger) *ExecHandler {
	return &ExecHandler{
		submissions: submissions,
		auth:        auth,
		logger:      logger,
	}
}

// Post godoc
// @Summary     Submit a report or register
// @Description Stores a submitted inspection report. With action "register" the body registers a user instead. The body is parsed as JSON whatever its content type.
// @Tags        exec
// @Accept      json
// @Produce     json
// @Param       request body models.ExecRequest true "Submission or registration"
// @Success     200 {object} models.SubmitResponse
// @Router      /exec [post]
func (h *ExecHandler) Post(c *gin.Context) {
	var req models.ExecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		execError(c, "invalid request body")
		return
	}

	if req.Action == "register" {
		h.register(c, req.Name, req.TeamName, req.PIN)
		return
	}

	resp, err := h.submissions.Submit(c.Request.Context(), req.SubmitRequest)
	if err != nil {
		execError(c, userMessage(h.logger, "submit", err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary     Query the storage service
// @Description action=list returns records in submission order, optionally for one userId. action=delete removes a record when pin matches. action=login and action=register manage users. Without an action the health status is returned.
// @Tags        exec
// @Produce     json
// @Param       action   query string false "list, delete, login or register"
// @Param       userId   query string false "Limit list to one user"
// @Param       rowId    query string false "Record to delete"
// @Param       pin      query string false "4-digit PIN"
// @Param       name     query string false "User name"
// @Param       teamName query string false "Team name"
// @Success     200 {array}  models.SubmissionSummary
// @Router      /exec [get]
func (h *ExecHandler) Get(c *gin.Context) {
	switch c.Query("action") {
	case "list":
		records, err := h.submissions.List(c.Request.Context(), c.Query("userId"))
		if err != nil {
			execError(c, userMessage(h.logger, "list", err))
			return
		}
		c.JSON(http.StatusOK, records)
	case "delete":
		if err := h.submissions.Delete(c.Request.Context(), c.Query("rowId"), c.Query("pin")); err != nil {
			execError(c, userMessage(h.logger, "delete", err))
			return
		}
		c.JSON(http.StatusOK, models.StatusResponse{Status: models.StatusOK})
	case "register":
		h.register(c, c.Query("name"), c.Query("teamName"), c.Query("pin"))
	case "login":
		h.login(c, c.Query("name"), c.Query("pin"))
	case "":
		if c.Query("name") != "" && c.Query("pin") != "" {
			h.login(c, c.Query("name"), c.Query("pin"))
			return
		}
		c.JSON(http.StatusOK, healthResponse())
	default:
		c.JSON(http.StatusOK, healthResponse())
	}
}

func (h *ExecHandler) register(c *gin.Context, name, teamName, pin string) {
	resp, err := h.auth.Register(c.Request.Context(), name, teamName, pin)
	if err != nil {
		execError(c, userMessage(h.logger, "register", err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExecHandler) login(c *gin.Context, name, pin string) {
	resp, err := h.auth.Login(c.Request.Context(), name, pin)
	if err != nil {
		execError(c, userMessage(h.logger, "login", err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

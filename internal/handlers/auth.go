package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"inspection-report/internal/models"
	"inspection-report/internal/services"
)

type AuthHandler struct {
	auth   *services.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Register godoc
// @Summary     Register a user
// @Description Creates a user with a unique name and a 4-digit PIN and returns a signed token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.RegisterRequest true "Name, team and PIN"
// @Success     201 {object} models.AuthResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), req.Name, req.TeamName, req.PIN)
	if err != nil {
		respondError(c, h.logger, "register", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary     Sign in
// @Description Checks name and PIN and returns a signed token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.LoginRequest true "Name and PIN"
// @Success     200 {object} models.AuthResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.Name, req.PIN)
	if err != nil {
		respondError(c, h.logger, "login", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hostel-desk-api/internal/dto"
	"github.com/noah-isme/hostel-desk-api/internal/models"
	"github.com/noah-isme/hostel-desk-api/internal/service"
	appErrors "github.com/noah-isme/hostel-desk-api/pkg/errors"
	"github.com/noah-isme/hostel-desk-api/pkg/response"
)

type sessionService interface {
	Start(ctx context.Context, req dto.StartSessionRequest) (*models.SessionToken, error)
	SwitchRole(ctx context.Context, session models.Session, req dto.SwitchRoleRequest) (*models.SessionToken, error)
	Me(ctx context.Context, session models.Session) (*models.User, error)
	RoleSwitches(ctx context.Context) ([]models.AuditLog, error)
}

// SessionHandler wires session endpoints.
type SessionHandler struct {
	service sessionService
}

// NewSessionHandler creates a new handler.
func NewSessionHandler(service sessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Start godoc
// @Summary Start a session
// @Description Issue an access token for a known user id
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body dto.StartSessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Start(c *gin.Context) {
	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	token, err := h.service.Start(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, token)
}

// Me godoc
// @Summary Current user
// @Tags Sessions
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /me [get]
func (h *SessionHandler) Me(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	user, err := h.service.Me(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"user":       user,
		"role":       session.Role,
		"navigation": service.NavigationFor(session.Role),
	})
}

// SwitchRole godoc
// @Summary Switch the active role
// @Description Changes the session role and returns a fresh token
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body dto.SwitchRoleRequest true "Role payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /me/role [put]
func (h *SessionHandler) SwitchRole(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.SwitchRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid role payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	token, err := h.service.SwitchRole(c.Request.Context(), session, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, token)
}

// RoleSwitches godoc
// @Summary Role switch audit trail
// @Tags Audit
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /audit/role-switches [get]
func (h *SessionHandler) RoleSwitches(c *gin.Context) {
	logs, err := h.service.RoleSwitches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs, map[string]interface{}{"total": len(logs)})
}

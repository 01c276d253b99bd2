package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hostel-desk-api/internal/dto"
	"github.com/noah-isme/hostel-desk-api/internal/models"
	appErrors "github.com/noah-isme/hostel-desk-api/pkg/errors"
	"github.com/noah-isme/hostel-desk-api/pkg/response"
)

type complaintService interface {
	List(ctx context.Context, session models.Session, query dto.ComplaintQuery) (*dto.ComplaintListResponse, error)
	Lodge(ctx context.Context, session models.Session, req dto.LodgeComplaintRequest) (*dto.ComplaintView, error)
	AdvanceStatus(ctx context.Context, session models.Session, id string, req dto.AdvanceStatusRequest) (*dto.ComplaintView, error)
}

// ComplaintHandler exposes the complaint desk.
type ComplaintHandler struct {
	service complaintService
}

// NewComplaintHandler constructs the handler.
func NewComplaintHandler(service complaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

// List godoc
// @Summary List complaints visible to the caller
// @Tags Complaints
// @Produce json
// @Param status query string false "Status filter"
// @Param category query string false "Category filter"
// @Param q query string false "Search text"
// @Success 200 {object} response.Envelope
// @Router /complaints [get]
func (h *ComplaintHandler) List(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var query dto.ComplaintQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}

	result, err := h.service.List(c.Request.Context(), session, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result.Items, map[string]interface{}{
		"total":    result.Total,
		"canLodge": result.CanLodge,
		"version":  result.Version,
	})
}

// Lodge godoc
// @Summary Lodge a complaint
// @Description Students only; priority is assigned automatically
// @Tags Complaints
// @Accept json
// @Produce json
// @Param payload body dto.LodgeComplaintRequest true "Complaint payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /complaints [post]
func (h *ComplaintHandler) Lodge(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.LodgeComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid complaint payload"))
		return
	}

	view, err := h.service.Lodge(c.Request.Context(), session, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// AdvanceStatus godoc
// @Summary Move a complaint through its workflow
// @Tags Complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param payload body dto.AdvanceStatusRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /complaints/{id}/status [post]
func (h *ComplaintHandler) AdvanceStatus(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}

	view, err := h.service.AdvanceStatus(c.Request.Context(), session, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

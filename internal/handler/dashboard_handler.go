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

type dashboardService interface {
	Dashboard(ctx context.Context, session models.Session) (*dto.DashboardResponse, error)
	Analytics(ctx context.Context) (*dto.AnalyticsResponse, error)
	Prediction() models.Insight
	SuggestAllocation(ctx context.Context, req dto.AllocationSuggestionRequest) (*models.AllocationSuggestion, error)
	Rooms(ctx context.Context, query dto.RoomQuery) ([]models.Room, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Dashboard godoc
// @Summary Role-aware dashboard summary
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "dashboard service not configured"))
		return
	}
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	result, err := h.service.Dashboard(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Analytics godoc
// @Summary Hostel analytics
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics [get]
func (h *DashboardHandler) Analytics(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "dashboard service not configured"))
		return
	}
	result, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Prediction godoc
// @Summary Latest predictive maintenance insight
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/prediction [get]
func (h *DashboardHandler) Prediction(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "dashboard service not configured"))
		return
	}
	insight := h.service.Prediction()
	response.JSON(c, http.StatusOK, insight, map[string]interface{}{"status": insight.Status})
}

// SuggestAllocation godoc
// @Summary Suggest a room for given preferences
// @Tags Allocations
// @Accept json
// @Produce json
// @Param payload body dto.AllocationSuggestionRequest false "Preferences"
// @Success 200 {object} response.Envelope
// @Router /allocations/suggestion [post]
func (h *DashboardHandler) SuggestAllocation(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "dashboard service not configured"))
		return
	}
	var req dto.AllocationSuggestionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid allocation payload"))
			return
		}
	}
	result, err := h.service.SuggestAllocation(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Rooms godoc
// @Summary List rooms
// @Tags Rooms
// @Produce json
// @Param block query string false "Block"
// @Param status query string false "Room status"
// @Param type query string false "Room type"
// @Param feature query []string false "Required features" collectionFormat(multi)
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *DashboardHandler) Rooms(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "dashboard service not configured"))
		return
	}
	var query dto.RoomQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	rooms, err := h.service.Rooms(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, map[string]interface{}{"total": len(rooms)})
}

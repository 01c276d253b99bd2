package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/hostel-desk-api/internal/dto"
	"github.com/noah-isme/hostel-desk-api/internal/models"
	appErrors "github.com/noah-isme/hostel-desk-api/pkg/errors"
)

type roomLister interface {
	List(ctx context.Context, filter models.RoomFilter) ([]models.Room, error)
}

type complaintSnapshotter interface {
	Snapshot(ctx context.Context) ([]models.Complaint, uint64, error)
}

type insightReader interface {
	Current() models.Insight
}

type allocationAdvisor interface {
	SuggestAllocation(ctx context.Context, preferences []string, rooms []models.Room) string
}

const recentActivityLimit = 4

type navigationEntry struct {
	item  dto.NavigationItem
	roles []models.UserRole
}

var navigation = []navigationEntry{
	{dto.NavigationItem{ID: "DASHBOARD", Label: "Dashboard"}, models.Roles},
	{dto.NavigationItem{ID: "ROOMS", Label: "Room Management"}, []models.UserRole{models.RoleAdmin}},
	{dto.NavigationItem{ID: "COMPLAINTS", Label: "Complaints"}, models.Roles},
	{dto.NavigationItem{ID: "ALLOCATIONS", Label: "Allocations"}, []models.UserRole{models.RoleAdmin, models.RoleStudent}},
	{dto.NavigationItem{ID: "ANALYTICS", Label: "Analytics"}, []models.UserRole{models.RoleAdmin}},
	{dto.NavigationItem{ID: "PROFILE", Label: "My Profile"}, models.Roles},
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Rooms      roomLister
	Complaints complaintSnapshotter
	Insights   insightReader
	Advisor    allocationAdvisor
	Validator  *validator.Validate
	Logger     *zap.Logger
}

// DashboardService composes the read-side views. Figures are recomputed
// from the stores on every call.
type DashboardService struct {
	rooms      roomLister
	complaints complaintSnapshotter
	insights   insightReader
	advisor    allocationAdvisor
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	return &DashboardService{
		rooms:      params.Rooms,
		complaints: params.Complaints,
		insights:   params.Insights,
		advisor:    params.Advisor,
		validator:  params.Validator,
		logger:     params.Logger,
	}
}

// Dashboard returns the landing view for the session.
func (s *DashboardService) Dashboard(ctx context.Context, session models.Session) (*dto.DashboardResponse, error) {
	rooms, complaints, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	visible := VisibleFor(session.Role, session.UserID, complaints)
	if len(visible) > recentActivityLimit {
		visible = visible[:recentActivityLimit]
	}
	recent := make([]dto.ComplaintView, 0, len(visible))
	for _, c := range visible {
		recent = append(recent, toView(session.Role, c))
	}

	return &dto.DashboardResponse{
		Stats:          ComputeStats(rooms, complaints),
		RecentActivity: recent,
		CanLodge:       CanLodge(session.Role),
		Navigation:     NavigationFor(session.Role),
	}, nil
}

// Analytics returns the administrator analytics view.
func (s *DashboardService) Analytics(ctx context.Context) (*dto.AnalyticsResponse, error) {
	rooms, complaints, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.AnalyticsResponse{
		Stats:                ComputeStats(rooms, complaints),
		ComplaintsByCategory: ComplaintsByCategory(complaints),
		Occupancy:            ComputeOccupancySplit(rooms),
		Insight:              models.Insight{Text: InitialInsightText, Status: models.InsightPending},
	}
	if s.insights != nil {
		resp.Insight = s.insights.Current()
	}
	return resp, nil
}

// Prediction returns the latest predictive-maintenance insight.
func (s *DashboardService) Prediction() models.Insight {
	if s.insights == nil {
		return models.Insight{Text: InitialInsightText, Status: models.InsightPending}
	}
	return s.insights.Current()
}

// SuggestAllocation asks the advisor to match preferences against rooms
// that are currently AVAILABLE.
func (s *DashboardService) SuggestAllocation(ctx context.Context, req dto.AllocationSuggestionRequest) (*models.AllocationSuggestion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid allocation payload")
	}

	preferences := req.Preferences
	if len(preferences) == 0 {
		preferences = append([]string(nil), models.DefaultAllocationPreferences...)
	}

	available, err := s.rooms.List(ctx, models.RoomFilter{Status: models.RoomAvailable})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}

	return &models.AllocationSuggestion{
		Preferences:    preferences,
		AvailableRooms: available,
		Suggestion:     s.advisor.SuggestAllocation(ctx, preferences, available),
	}, nil
}

// Rooms lists the inventory.
func (s *DashboardService) Rooms(ctx context.Context, query dto.RoomQuery) ([]models.Room, error) {
	filter := models.RoomFilter{Block: query.Block, Features: query.Features}
	if strings.TrimSpace(query.Status) != "" {
		status, ok := models.ParseRoomStatus(query.Status)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown room status")
		}
		filter.Status = status
	}
	if strings.TrimSpace(query.Type) != "" {
		roomType, ok := models.ParseRoomType(query.Type)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown room type")
		}
		filter.Type = roomType
	}
	rooms, err := s.rooms.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	return rooms, nil
}

// NavigationFor lists the views role may open, in menu order.
func NavigationFor(role models.UserRole) []dto.NavigationItem {
	items := []dto.NavigationItem{}
	for _, entry := range navigation {
		for _, r := range entry.roles {
			if r == role {
				items = append(items, entry.item)
				break
			}
		}
	}
	return items
}

func (s *DashboardService) load(ctx context.Context) ([]models.Room, []models.Complaint, error) {
	rooms, err := s.rooms.List(ctx, models.RoomFilter{})
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	complaints, _, err := s.complaints.Snapshot(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load complaints")
	}
	return rooms, complaints, nil
}

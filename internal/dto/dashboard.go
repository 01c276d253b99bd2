package dto

import "github.com/noah-isme/hostel-desk-api/internal/models"

// DashboardResponse is the landing view for every role.
type DashboardResponse struct {
	Stats          models.HostelStats `json:"stats"`
	RecentActivity []ComplaintView    `json:"recentActivity"`
	CanLodge       bool               `json:"canLodge"`
	Navigation     []NavigationItem   `json:"navigation"`
}

// NavigationItem is a view the current role may open.
type NavigationItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// AnalyticsResponse is the administrator analytics view.
type AnalyticsResponse struct {
	Stats                models.HostelStats     `json:"stats"`
	ComplaintsByCategory []models.CategoryCount `json:"complaintsByCategory"`
	Occupancy            models.OccupancySplit  `json:"occupancy"`
	Insight              models.Insight         `json:"insight"`
}

// AllocationSuggestionRequest carries the student's wishes. Empty
// preferences fall back to the defaults.
type AllocationSuggestionRequest struct {
	Preferences []string `json:"preferences" validate:"omitempty,max=10,dive,required,max=64"`
}

// RoomQuery mirrors supported room filters.
type RoomQuery struct {
	Block    string   `form:"block"`
	Status   string   `form:"status"`
	Type     string   `form:"type"`
	Features []string `form:"feature"`
}

package dto

import "github.com/noah-isme/hostel-desk-api/internal/models"

// LodgeComplaintRequest is the student-submitted grievance form.
type LodgeComplaintRequest struct {
	Category    string `json:"category" validate:"required,max=64"`
	Description string `json:"description" validate:"required,min=3,max=2000"`
	RoomNumber  string `json:"roomNumber" validate:"omitempty,max=32"`
}

// AdvanceStatusRequest moves a complaint along its workflow.
type AdvanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS RESOLVED CLOSED"`
}

// ComplaintQuery mirrors supported listing filters.
type ComplaintQuery struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Search   string `form:"q"`
}

// ComplaintView is a complaint plus the actions the caller may take on it.
type ComplaintView struct {
	models.Complaint
	Actions []models.AllowedAction `json:"actions"`
}

// ComplaintListResponse is the scoped complaint list.
type ComplaintListResponse struct {
	Items    []ComplaintView `json:"items"`
	CanLodge bool            `json:"canLodge"`
	Total    int             `json:"total"`
	Version  uint64          `json:"version"`
}

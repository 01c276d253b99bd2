package models

import "time"

// AllocationStatus is the review state of a room request.
type AllocationStatus string

const (
	AllocationPending  AllocationStatus = "PENDING"
	AllocationApproved AllocationStatus = "APPROVED"
	AllocationRejected AllocationStatus = "REJECTED"
)

// AllocationRequest is a student's room request. No workflow processes it yet.
type AllocationRequest struct {
	ID          string           `json:"id"`
	StudentID   string           `json:"studentId"`
	Preferences []string         `json:"preferences"`
	Status      AllocationStatus `json:"status"`
	RequestDate time.Time        `json:"requestDate"`
}

// DefaultAllocationPreferences are used when a suggestion request names none.
var DefaultAllocationPreferences = []string{"AC", "Near Exit", "Low Floor"}

// AllocationSuggestion is the advisory answer for a set of preferences.
type AllocationSuggestion struct {
	Preferences    []string `json:"preferences"`
	AvailableRooms []Room   `json:"availableRooms"`
	Suggestion     string   `json:"suggestion"`
}

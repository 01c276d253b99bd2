package models

import (
	"strings"
	"time"
)

// ComplaintStatus tracks a complaint through its workflow.
type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "PENDING"
	ComplaintInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintResolved   ComplaintStatus = "RESOLVED"
	ComplaintClosed     ComplaintStatus = "CLOSED"
)

// ParseStatus normalises raw and reports whether it is a known status.
func ParseStatus(raw string) (ComplaintStatus, bool) {
	status := ComplaintStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch status {
	case ComplaintPending, ComplaintInProgress, ComplaintResolved, ComplaintClosed:
		return status, true
	}
	return "", false
}

// Open reports whether the complaint still needs work.
func (s ComplaintStatus) Open() bool {
	return s != ComplaintResolved && s != ComplaintClosed
}

// ComplaintPriority is the urgency assigned at lodge time.
type ComplaintPriority string

const (
	PriorityLow      ComplaintPriority = "LOW"
	PriorityMedium   ComplaintPriority = "MEDIUM"
	PriorityHigh     ComplaintPriority = "HIGH"
	PriorityCritical ComplaintPriority = "CRITICAL"
)

// ParsePriority maps a label to a priority. Unknown labels become MEDIUM.
func ParsePriority(raw string) ComplaintPriority {
	switch p := ComplaintPriority(strings.ToUpper(strings.TrimSpace(raw))); p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return p
	default:
		return PriorityMedium
	}
}

// ComplaintCategories is the list offered to students when lodging.
var ComplaintCategories = []string{
	"Electrical",
	"Plumbing",
	"Furniture",
	"Housekeeping",
	"Internet",
	"Others",
}

// Complaint is a grievance raised by a resident.
type Complaint struct {
	ID          string            `json:"id"`
	StudentID   string            `json:"studentId"`
	StudentName string            `json:"studentName"`
	RoomNumber  string            `json:"roomNumber"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Status      ComplaintStatus   `json:"status"`
	Priority    ComplaintPriority `json:"priority"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Feedback    *string           `json:"feedback,omitempty"`
	Rating      *int              `json:"rating,omitempty"`
}

// ComplaintFilter narrows complaint listings.
type ComplaintFilter struct {
	Status   ComplaintStatus
	Category string
	Search   string
}

// Matches reports whether c satisfies every set field of the filter.
// Search is a case-insensitive substring match on description, category,
// student name and room number.
func (f ComplaintFilter) Matches(c Complaint) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Category != "" && !strings.EqualFold(c.Category, f.Category) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		for _, field := range []string{c.Description, c.Category, c.StudentName, c.RoomNumber} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	}
	return true
}

// ComplaintAction names a workflow step offered on a complaint.
type ComplaintAction string

const (
	ActionAccept  ComplaintAction = "accept"
	ActionResolve ComplaintAction = "resolve"
	ActionClose   ComplaintAction = "close"
)

// AllowedAction is a step the current role may take and the status it leads to.
type AllowedAction struct {
	Action ComplaintAction `json:"action"`
	Target ComplaintStatus `json:"target"`
}

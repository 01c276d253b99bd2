package service

import (
	"github.com/noah-isme/hostel-desk-api/internal/models"
	appErrors "github.com/noah-isme/hostel-desk-api/pkg/errors"
)

type transitionKey struct {
	from models.ComplaintStatus
	to   models.ComplaintStatus
}

type transitionRule struct {
	action models.ComplaintAction
	role   models.UserRole
}

// transitions is the complete workflow graph. No backward edges.
var transitions = map[transitionKey]transitionRule{
	{models.ComplaintPending, models.ComplaintInProgress}:  {models.ActionAccept, models.RoleMaintenance},
	{models.ComplaintInProgress, models.ComplaintResolved}: {models.ActionResolve, models.RoleMaintenance},
	{models.ComplaintResolved, models.ComplaintClosed}:      {models.ActionClose, models.RoleAdmin},
}

// VisibleFor returns the complaints role may see, preserving order.
// Students only see their own.
func VisibleFor(role models.UserRole, userID string, complaints []models.Complaint) []models.Complaint {
	if role != models.RoleStudent {
		out := make([]models.Complaint, len(complaints))
		copy(out, complaints)
		return out
	}
	out := make([]models.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if c.StudentID == userID {
			out = append(out, c)
		}
	}
	return out
}

// AllowedActions lists the transitions role may perform on c.
func AllowedActions(role models.UserRole, c models.Complaint) []models.AllowedAction {
	actions := []models.AllowedAction{}
	for _, target := range []models.ComplaintStatus{models.ComplaintInProgress, models.ComplaintResolved, models.ComplaintClosed} {
		rule, ok := transitions[transitionKey{c.Status, target}]
		if ok && rule.role == role {
			actions = append(actions, models.AllowedAction{Action: rule.action, Target: target})
		}
	}
	return actions
}

// CanLodge reports whether role may file new complaints.
func CanLodge(role models.UserRole) bool {
	return role == models.RoleStudent
}

// CheckTransition validates a requested status change for role.
func CheckTransition(role models.UserRole, from, to models.ComplaintStatus) error {
	rule, ok := transitions[transitionKey{from, to}]
	if !ok {
		return appErrors.Clone(appErrors.ErrInvalidTransition, "cannot move complaint from "+string(from)+" to "+string(to))
	}
	if rule.role != role {
		return appErrors.Clone(appErrors.ErrForbidden, "only "+string(rule.role)+" may "+string(rule.action)+" this complaint")
	}
	return nil
}

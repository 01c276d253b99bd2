package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/hostel-desk-api/internal/models"
	appErrors "github.com/noah-isme/hostel-desk-api/pkg/errors"
)

func sampleComplaints() []models.Complaint {
	return []models.Complaint{
		{ID: "c3", StudentID: "s1", Status: models.ComplaintPending},
		{ID: "c2", StudentID: "s2", Status: models.ComplaintInProgress},
		{ID: "c1", StudentID: "s1", Status: models.ComplaintResolved},
	}
}

func TestVisibleForStudentSeesOwnOnly(t *testing.T) {
	visible := VisibleFor(models.RoleStudent, "s1", sampleComplaints())
	assert.Len(t, visible, 2)
	assert.Equal(t, "c3", visible[0].ID)
	assert.Equal(t, "c1", visible[1].ID)

	assert.Empty(t, VisibleFor(models.RoleStudent, "nobody", sampleComplaints()))
}

func TestVisibleForStaffSeesAll(t *testing.T) {
	for _, role := range []models.UserRole{models.RoleAdmin, models.RoleMaintenance} {
		assert.Equal(t, sampleComplaints(), VisibleFor(role, "u1", sampleComplaints()), string(role))
	}
}

func TestAllowedActions(t *testing.T) {
	pending := models.Complaint{Status: models.ComplaintPending}
	inProgress := models.Complaint{Status: models.ComplaintInProgress}
	resolved := models.Complaint{Status: models.ComplaintResolved}
	closed := models.Complaint{Status: models.ComplaintClosed}

	assert.Equal(t, []models.AllowedAction{{Action: models.ActionAccept, Target: models.ComplaintInProgress}}, AllowedActions(models.RoleMaintenance, pending))
	assert.Equal(t, []models.AllowedAction{{Action: models.ActionResolve, Target: models.ComplaintResolved}}, AllowedActions(models.RoleMaintenance, inProgress))
	assert.Empty(t, AllowedActions(models.RoleMaintenance, resolved))
	assert.Equal(t, []models.AllowedAction{{Action: models.ActionClose, Target: models.ComplaintClosed}}, AllowedActions(models.RoleAdmin, resolved))
	assert.Empty(t, AllowedActions(models.RoleAdmin, pending))
	assert.Empty(t, AllowedActions(models.RoleStudent, pending))
	assert.Empty(t, AllowedActions(models.RoleAdmin, closed))
	assert.NotNil(t, AllowedActions(models.RoleStudent, pending))
}

func TestCanLodge(t *testing.T) {
	assert.True(t, CanLodge(models.RoleStudent))
	assert.False(t, CanLodge(models.RoleAdmin))
	assert.False(t, CanLodge(models.RoleMaintenance))
}

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name string
		role models.UserRole
		from models.ComplaintStatus
		to   models.ComplaintStatus
		err  error
	}{
		{"accept", models.RoleMaintenance, models.ComplaintPending, models.ComplaintInProgress, nil},
		{"resolve", models.RoleMaintenance, models.ComplaintInProgress, models.ComplaintResolved, nil},
		{"close", models.RoleAdmin, models.ComplaintResolved, models.ComplaintClosed, nil},
		{"admin cannot accept", models.RoleAdmin, models.ComplaintPending, models.ComplaintInProgress, appErrors.ErrForbidden},
		{"maintenance cannot close", models.RoleMaintenance, models.ComplaintResolved, models.ComplaintClosed, appErrors.ErrForbidden},
		{"skip ahead", models.RoleMaintenance, models.ComplaintPending, models.ComplaintResolved, appErrors.ErrInvalidTransition},
		{"backwards", models.RoleMaintenance, models.ComplaintResolved, models.ComplaintPending, appErrors.ErrInvalidTransition},
		{"same status", models.RoleMaintenance, models.ComplaintPending, models.ComplaintPending, appErrors.ErrInvalidTransition},
		{"closed is terminal", models.RoleAdmin, models.ComplaintClosed, models.ComplaintPending, appErrors.ErrInvalidTransition},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckTransition(tc.role, tc.from, tc.to)
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-desk-api/internal/models"
)

func TestAuditRepositoryListNewestFirst(t *testing.T) {
	repo := NewAuditRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.AuditLog{ID: "a1", Action: models.AuditActionSessionStart}))
	require.NoError(t, repo.Create(ctx, &models.AuditLog{ID: "a2", Action: models.AuditActionRoleSwitch}))
	require.NoError(t, repo.Create(ctx, &models.AuditLog{ID: "a3", Action: models.AuditActionRoleSwitch}))

	switches, err := repo.List(ctx, models.AuditActionRoleSwitch)
	require.NoError(t, err)
	require.Len(t, switches, 2)
	assert.Equal(t, "a3", switches[0].ID)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-desk-api/internal/dto"
	"github.com/noah-isme/hostel-desk-api/internal/models"
	appErrors "github.com/noah-isme/hostel-desk-api/pkg/errors"
)

type fakeSessionService struct {
	startReq  dto.StartSessionRequest
	switchReq dto.SwitchRoleRequest
	session   models.Session
	startErr  error
	user      *models.User
	logs      []models.AuditLog
}

func (f *fakeSessionService) Start(ctx context.Context, req dto.StartSessionRequest) (*models.SessionToken, error) {
	f.startReq = req
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &models.SessionToken{AccessToken: "token-1", ExpiresIn: 3600}, nil
}

func (f *fakeSessionService) SwitchRole(ctx context.Context, session models.Session, req dto.SwitchRoleRequest) (*models.SessionToken, error) {
	f.session = session
	f.switchReq = req
	return &models.SessionToken{AccessToken: "token-2", ExpiresIn: 3600}, nil
}

func (f *fakeSessionService) Me(ctx context.Context, session models.Session) (*models.User, error) {
	f.session = session
	return f.user, nil
}

func (f *fakeSessionService) RoleSwitches(ctx context.Context) ([]models.AuditLog, error) {
	return f.logs, nil
}

func TestSessionHandlerStart(t *testing.T) {
	svc := &fakeSessionService{}
	h := NewSessionHandler(svc)
	c, w := newContext(http.MethodPost, "/sessions", map[string]string{"userId": "s101"})
	c.Request.Header.Set("User-Agent", "desk-test")

	h.Start(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "s101", svc.startReq.UserID)
	assert.Equal(t, "desk-test", svc.startReq.UserAgent)

	var token models.SessionToken
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &token))
	assert.Equal(t, "token-1", token.AccessToken)
}

func TestSessionHandlerStartUnknownUser(t *testing.T) {
	h := NewSessionHandler(&fakeSessionService{startErr: appErrors.Clone(appErrors.ErrNotFound, "user not found")})
	c, w := newContext(http.MethodPost, "/sessions", map[string]string{"userId": "nobody"})

	h.Start(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestSessionHandlerStartRejectsMalformedBody(t *testing.T) {
	h := NewSessionHandler(&fakeSessionService{})
	c, w := newContext(http.MethodPost, "/sessions", nil)
	c.Request.Header.Set("Content-Type", "application/json")

	h.Start(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionHandlerMeIncludesNavigation(t *testing.T) {
	svc := &fakeSessionService{user: &models.User{ID: "u1", Name: "Alex Johnson", Role: models.RoleAdmin}}
	h := NewSessionHandler(svc)
	c, w := newContext(http.MethodGet, "/me", nil)
	withSession(c, "u1", models.RoleMaintenance)

	h.Me(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", svc.session.UserID)

	var payload struct {
		User       models.User          `json:"user"`
		Role       models.UserRole      `json:"role"`
		Navigation []dto.NavigationItem `json:"navigation"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &payload))
	assert.Equal(t, "Alex Johnson", payload.User.Name)
	assert.Equal(t, models.RoleMaintenance, payload.Role)
	ids := make([]string, 0, len(payload.Navigation))
	for _, item := range payload.Navigation {
		ids = append(ids, item.ID)
	}
	assert.NotContains(t, ids, "ANALYTICS")
	assert.Contains(t, ids, "COMPLAINTS")
}

func TestSessionHandlerMeWithoutSession(t *testing.T) {
	h := NewSessionHandler(&fakeSessionService{})
	c, w := newContext(http.MethodGet, "/me", nil)

	h.Me(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionHandlerSwitchRole(t *testing.T) {
	svc := &fakeSessionService{}
	h := NewSessionHandler(svc)
	c, w := newContext(http.MethodPut, "/me/role", map[string]string{"role": "STUDENT"})
	withSession(c, "u1", models.RoleAdmin)

	h.SwitchRole(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "STUDENT", svc.switchReq.Role)
	assert.Equal(t, "sess-1", svc.session.ID)
	assert.Equal(t, models.RoleAdmin, svc.session.Role)
}

func TestSessionHandlerRoleSwitches(t *testing.T) {
	svc := &fakeSessionService{logs: []models.AuditLog{{ID: "a1", Action: models.AuditActionRoleSwitch}}}
	h := NewSessionHandler(svc)
	c, w := newContext(http.MethodGet, "/audit/role-switches", nil)

	h.RoleSwitches(c)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.EqualValues(t, 1, env.Meta["total"])
}

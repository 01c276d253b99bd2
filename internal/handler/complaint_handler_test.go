package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-desk-api/internal/dto"
	"github.com/noah-isme/hostel-desk-api/internal/models"
	appErrors "github.com/noah-isme/hostel-desk-api/pkg/errors"
)

type fakeComplaintService struct {
	query      dto.ComplaintQuery
	lodgeReq   dto.LodgeComplaintRequest
	advanceID  string
	advanceReq dto.AdvanceStatusRequest
	session    models.Session
	err        error
}

func (f *fakeComplaintService) List(ctx context.Context, session models.Session, query dto.ComplaintQuery) (*dto.ComplaintListResponse, error) {
	f.session = session
	f.query = query
	items := []dto.ComplaintView{{Complaint: models.Complaint{ID: "c1", StudentID: session.UserID}}}
	return &dto.ComplaintListResponse{Items: items, CanLodge: true, Total: 1, Version: 7}, nil
}

func (f *fakeComplaintService) Lodge(ctx context.Context, session models.Session, req dto.LodgeComplaintRequest) (*dto.ComplaintView, error) {
	f.session = session
	f.lodgeReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ComplaintView{Complaint: models.Complaint{ID: "c4", Category: req.Category, Priority: models.PriorityHigh}}, nil
}

func (f *fakeComplaintService) AdvanceStatus(ctx context.Context, session models.Session, id string, req dto.AdvanceStatusRequest) (*dto.ComplaintView, error) {
	f.session = session
	f.advanceID = id
	f.advanceReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ComplaintView{Complaint: models.Complaint{ID: id, Status: models.ComplaintStatus(req.Status)}}, nil
}

func TestComplaintHandlerListBindsFilters(t *testing.T) {
	svc := &fakeComplaintService{}
	h := NewComplaintHandler(svc)
	c, w := newContext(http.MethodGet, "/complaints?status=PENDING&category=Plumbing&q=leak", nil)
	withSession(c, "s101", models.RoleStudent)

	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ComplaintQuery{Status: "PENDING", Category: "Plumbing", Search: "leak"}, svc.query)
	assert.Equal(t, "s101", svc.session.UserID)

	env := decodeEnvelope(t, w)
	var items []dto.ComplaintView
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "c1", items[0].ID)
	assert.Equal(t, true, env.Meta["canLodge"])
	assert.EqualValues(t, 7, env.Meta["version"])
}

func TestComplaintHandlerLodge(t *testing.T) {
	svc := &fakeComplaintService{}
	h := NewComplaintHandler(svc)
	c, w := newContext(http.MethodPost, "/complaints", map[string]string{
		"category":    "Plumbing",
		"description": "Severe leak in bathroom",
	})
	withSession(c, "s101", models.RoleStudent)

	h.Lodge(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Severe leak in bathroom", svc.lodgeReq.Description)

	var view dto.ComplaintView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &view))
	assert.Equal(t, "c4", view.ID)
	assert.Equal(t, models.PriorityHigh, view.Priority)
}

func TestComplaintHandlerLodgeForbidden(t *testing.T) {
	h := NewComplaintHandler(&fakeComplaintService{err: appErrors.ErrForbidden})
	c, w := newContext(http.MethodPost, "/complaints", map[string]string{"category": "Other", "description": "Noise"})
	withSession(c, "u1", models.RoleAdmin)

	h.Lodge(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestComplaintHandlerAdvanceStatus(t *testing.T) {
	svc := &fakeComplaintService{}
	h := NewComplaintHandler(svc)
	c, w := newContext(http.MethodPost, "/complaints/c1/status", map[string]string{"status": "IN_PROGRESS"})
	c.Params = gin.Params{{Key: "id", Value: "c1"}}
	withSession(c, "u1", models.RoleMaintenance)

	h.AdvanceStatus(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c1", svc.advanceID)
	assert.Equal(t, "IN_PROGRESS", svc.advanceReq.Status)
	assert.Equal(t, models.RoleMaintenance, svc.session.Role)
}

func TestComplaintHandlerAdvanceStatusErrors(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"missing":  {appErrors.Clone(appErrors.ErrNotFound, "complaint not found"), http.StatusNotFound},
		"conflict": {appErrors.ErrInvalidTransition, http.StatusConflict},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := NewComplaintHandler(&fakeComplaintService{err: tc.err})
			c, w := newContext(http.MethodPost, "/complaints/c9/status", map[string]string{"status": "RESOLVED"})
			c.Params = gin.Params{{Key: "id", Value: "c9"}}
			withSession(c, "u1", models.RoleAdmin)

			h.AdvanceStatus(c)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestComplaintHandlerRequiresSession(t *testing.T) {
	h := NewComplaintHandler(&fakeComplaintService{})
	c, w := newContext(http.MethodGet, "/complaints", nil)

	h.List(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/hostel-desk-api/internal/dto"
	"github.com/noah-isme/hostel-desk-api/internal/models"
	appErrors "github.com/noah-isme/hostel-desk-api/pkg/errors"
)

type complaintStore interface {
	Lodge(ctx context.Context, c models.Complaint) (*models.Complaint, error)
	CompareAndAdvance(ctx context.Context, id string, from, to models.ComplaintStatus) (*models.Complaint, error)
	Get(ctx context.Context, id string) (*models.Complaint, error)
	Snapshot(ctx context.Context) ([]models.Complaint, uint64, error)
}

type userLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type priorityClassifier interface {
	ClassifyPriority(ctx context.Context, description string) models.ComplaintPriority
}

type insightRefresher interface {
	Refresh(version uint64, complaints []models.Complaint)
}

const unknownRoomNumber = "N/A"

// ComplaintParams wires the complaint workflow.
type ComplaintParams struct {
	Store      complaintStore
	Users      userLookup
	Classifier priorityClassifier
	Insights   insightRefresher
	Validator  *validator.Validate
	Metrics    *MetricsService
	Logger     *zap.Logger
}

// ComplaintService applies role rules around the complaint store.
type ComplaintService struct {
	store      complaintStore
	users      userLookup
	classifier priorityClassifier
	insights   insightRefresher
	validator  *validator.Validate
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewComplaintService constructs the workflow service.
func NewComplaintService(p ComplaintParams) *ComplaintService {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.Validator == nil {
		p.Validator = validator.New()
	}
	return &ComplaintService{
		store:      p.Store,
		users:      p.Users,
		classifier: p.Classifier,
		insights:   p.Insights,
		validator:  p.Validator,
		metrics:    p.Metrics,
		logger:     p.Logger,
	}
}

// List returns the complaints visible to the session, each with the
// actions its role may take.
func (s *ComplaintService) List(ctx context.Context, session models.Session, query dto.ComplaintQuery) (*dto.ComplaintListResponse, error) {
	filter := models.ComplaintFilter{Category: query.Category, Search: query.Search}
	if query.Status != "" {
		status, ok := models.ParseStatus(query.Status)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown status filter")
		}
		filter.Status = status
	}

	all, version, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load complaints")
	}

	items := []dto.ComplaintView{}
	for _, c := range VisibleFor(session.Role, session.UserID, all) {
		if filter.Matches(c) {
			items = append(items, toView(session.Role, c))
		}
	}

	return &dto.ComplaintListResponse{
		Items:    items,
		CanLodge: CanLodge(session.Role),
		Total:    len(items),
		Version:  version,
	}, nil
}

// Lodge files a complaint for the session's student. Priority comes from the
// advisory classifier and falls back to MEDIUM, so lodging never fails on
// the advisory path.
func (s *ComplaintService) Lodge(ctx context.Context, session models.Session, req dto.LodgeComplaintRequest) (*dto.ComplaintView, error) {
	if !CanLodge(session.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can lodge complaints")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid complaint payload")
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	roomNumber := req.RoomNumber
	if roomNumber == "" && user.RoomNumber != nil {
		roomNumber = *user.RoomNumber
	}
	if roomNumber == "" {
		roomNumber = unknownRoomNumber
	}

	priority := s.classifier.ClassifyPriority(ctx, req.Description)

	stored, err := s.store.Lodge(ctx, models.Complaint{
		StudentID:   user.ID,
		StudentName: user.Name,
		RoomNumber:  roomNumber,
		Category:    req.Category,
		Description: req.Description,
		Status:      models.ComplaintPending,
		Priority:    priority,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to lodge complaint")
	}

	s.metrics.RecordComplaintEvent("lodged")
	s.logger.Info("complaint lodged",
		zap.String("complaint_id", stored.ID),
		zap.String("student_id", stored.StudentID),
		zap.String("priority", string(stored.Priority)),
	)
	s.refreshInsights(ctx)

	view := toView(session.Role, *stored)
	return &view, nil
}

// AdvanceStatus moves a complaint along the workflow if the session's role
// owns that edge.
func (s *ComplaintService) AdvanceStatus(ctx context.Context, session models.Session, id string, req dto.AdvanceStatusRequest) (*dto.ComplaintView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	target, ok := models.ParseStatus(req.Status)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown status")
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(session.Role, current.Status, target); err != nil {
		return nil, err
	}

	updated, err := s.store.CompareAndAdvance(ctx, id, current.Status, target)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordComplaintEvent("status_" + string(target))
	s.logger.Info("complaint status changed",
		zap.String("complaint_id", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(target)),
		zap.String("by", session.UserID),
	)
	s.refreshInsights(ctx)

	view := toView(session.Role, *updated)
	return &view, nil
}

func (s *ComplaintService) refreshInsights(ctx context.Context) {
	if s.insights == nil {
		return
	}
	all, version, err := s.store.Snapshot(ctx)
	if err != nil {
		s.logger.Warn("insight refresh skipped", zap.Error(err))
		return
	}
	s.insights.Refresh(version, all)
}

func toView(role models.UserRole, c models.Complaint) dto.ComplaintView {
	return dto.ComplaintView{Complaint: c, Actions: AllowedActions(role, c)}
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/hostel-desk-api/internal/dto"
	"github.com/noah-isme/hostel-desk-api/internal/models"
	appErrors "github.com/noah-isme/hostel-desk-api/pkg/errors"
)

type sessionUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateRole(ctx context.Context, id string, role models.UserRole) (models.UserRole, error)
}

type auditStore interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, action string) ([]models.AuditLog, error)
}

// SessionConfig defines token settings.
type SessionConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// SessionService issues and validates session tokens. The role a session
// acts as lives in its token; switching it is an audited operation that
// reissues the token. Only the most recently issued token of a session
// validates.
type SessionService struct {
	users     sessionUserRepository
	audit     auditStore
	validator *validator.Validate
	logger    *zap.Logger
	config    SessionConfig
	now       func() time.Time

	mu     sync.RWMutex
	latest map[string]string // session id -> token id
}

// NewSessionService constructs a SessionService instance.
func NewSessionService(users sessionUserRepository, audit auditStore, validate *validator.Validate, logger *zap.Logger, config SessionConfig) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.Expiration <= 0 {
		config.Expiration = 12 * time.Hour
	}
	return &SessionService{
		users:     users,
		audit:     audit,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       time.Now,
		latest:    make(map[string]string),
	}
}

// Start opens a session for a seeded user in the role stored for them.
func (s *SessionService) Start(ctx context.Context, req dto.StartSessionRequest) (*models.SessionToken, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}

	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	session := models.Session{ID: uuid.NewString(), UserID: user.ID, Role: user.Role}
	token, err := s.issue(session, user)
	if err != nil {
		return nil, err
	}

	s.record(ctx, &models.AuditLog{
		UserID:    user.ID,
		SessionID: session.ID,
		Action:    models.AuditActionSessionStart,
		NewValue:  string(user.Role),
		IPAddress: req.IP,
		UserAgent: req.UserAgent,
	})
	s.logger.Info("session started", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return token, nil
}

// SwitchRole changes the role a session acts as. Any role may switch to any
// other; the change is recorded and a new token is issued.
func (s *SessionService) SwitchRole(ctx context.Context, session models.Session, req dto.SwitchRoleRequest) (*models.SessionToken, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role payload")
	}
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}

	if _, err := s.users.UpdateRole(ctx, session.UserID, role); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	previous := session.Role
	session.Role = role
	token, err := s.issue(session, user)
	if err != nil {
		return nil, err
	}

	s.record(ctx, &models.AuditLog{
		UserID:    session.UserID,
		SessionID: session.ID,
		Action:    models.AuditActionRoleSwitch,
		OldValue:  string(previous),
		NewValue:  string(role),
		IPAddress: req.IP,
		UserAgent: req.UserAgent,
	})
	s.logger.Info("role switched",
		zap.String("user_id", session.UserID),
		zap.String("from", string(previous)),
		zap.String("to", string(role)),
	)
	return token, nil
}

// Me returns the session's user as seen in its active role.
func (s *SessionService) Me(ctx context.Context, session models.Session) (*models.User, error) {
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	user.Role = session.Role
	return user, nil
}

// Validate parses and validates a session token returning the claims.
func (s *SessionService) Validate(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	if _, known := models.ParseRole(string(claims.Role)); !known {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid role in token")
	}
	if !s.current(claims.SessionID, claims.ID) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session token superseded")
	}
	return claims, nil
}

// RoleSwitches returns the role-switch trail, newest first.
func (s *SessionService) RoleSwitches(ctx context.Context) ([]models.AuditLog, error) {
	if s.audit == nil {
		return []models.AuditLog{}, nil
	}
	entries, err := s.audit.List(ctx, models.AuditActionRoleSwitch)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load audit trail")
	}
	return entries, nil
}

func (s *SessionService) issue(session models.Session, user *models.User) (*models.SessionToken, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.Expiration)
	tokenID := uuid.NewString()
	claims := &models.SessionClaims{
		SessionID: session.ID,
		UserID:    session.UserID,
		Role:      session.Role,
		Name:      user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   session.UserID,
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}

	s.mu.Lock()
	s.latest[session.ID] = tokenID
	s.mu.Unlock()

	view := *user
	view.Role = session.Role
	return &models.SessionToken{
		AccessToken: signed,
		ExpiresIn:   int64(s.config.Expiration.Seconds()),
		IssuedAt:    issuedAt,
		User:        view,
	}, nil
}

func (s *SessionService) current(sessionID, tokenID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	latest, ok := s.latest[sessionID]
	return ok && tokenID != "" && latest == tokenID
}

func (s *SessionService) record(ctx context.Context, entry *models.AuditLog) {
	if s.audit == nil {
		return
	}
	entry.ID = uuid.NewString()
	entry.CreatedAt = s.now().UTC()
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit log", zap.String("action", entry.Action), zap.Error(err))
	}
}

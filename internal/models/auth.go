package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session identifies the acting user and the role they currently view as.
type Session struct {
	ID     string   `json:"sessionId"`
	UserID string   `json:"userId"`
	Role   UserRole `json:"role"`
}

// SessionClaims is the JWT payload carrying a session.
type SessionClaims struct {
	SessionID string   `json:"sid"`
	UserID    string   `json:"user_id"`
	Role      UserRole `json:"role"`
	Name      string   `json:"name"`
	jwt.RegisteredClaims
}

// Session returns the session described by the claims.
func (c *SessionClaims) Session() Session {
	return Session{ID: c.SessionID, UserID: c.UserID, Role: c.Role}
}

// SessionToken is returned whenever a session is started or its role changes.
type SessionToken struct {
	AccessToken string    `json:"accessToken"`
	ExpiresIn   int64     `json:"expiresIn"`
	IssuedAt    time.Time `json:"issuedAt"`
	User        User      `json:"user"`
}

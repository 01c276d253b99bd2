package models

import "time"

const (
	AuditActionSessionStart = "SESSION_START"
	AuditActionRoleSwitch   = "ROLE_SWITCH"
)

// AuditLog records a security-relevant action.
type AuditLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	SessionID string    `json:"sessionId,omitempty"`
	Action    string    `json:"action"`
	OldValue  string    `json:"oldValue,omitempty"`
	NewValue  string    `json:"newValue,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

package domain

import (
	"errors"
	"time"
)

// AuditAction represents a type-safe action identifier for the audit log.
type AuditAction string

// Settings Audit Actions
const (
	ActionSettingsLoaded   AuditAction = "SETTINGS_LOADED"
	ActionSettingsSaved    AuditAction = "SETTINGS_SAVED"
	ActionSettingsImported AuditAction = "SETTINGS_IMPORTED"
	ActionSettingsExported AuditAction = "SETTINGS_EXPORTED"
	ActionSettingsReset    AuditAction = "SETTINGS_RESET"
	ActionPanelSaved       AuditAction = "PANEL_SAVED"
	ActionConfigChange     AuditAction = "CONFIG_CHANGE"
	ActionInfo             AuditAction = "INFO"
)

var (
	ErrInvalidAction = errors.New("invalid audit action")
	ErrMissingUser   = errors.New("actor identification is required for auditing")
)

// AuditLog is a record of a change made through the dashboard.
type AuditLog struct {
	ID        uint        `json:"id"`
	Actor     string      `json:"actor"`
	Action    AuditAction `json:"action"`
	Target    string      `json:"target"` // panel kind, file name or key path
	Details   string      `json:"details"`
	IPAddress string      `json:"ip_address"`
	RequestID string      `json:"request_id"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewAuditLog is the designated factory for creating valid AuditLog entities.
func NewAuditLog(actor string, action AuditAction, target, details, ip, requestID string) (*AuditLog, error) {
	if actor == "" {
		return nil, ErrMissingUser
	}

	if !isValidAction(action) {
		return nil, ErrInvalidAction
	}

	return &AuditLog{
		Actor:     actor,
		Action:    action,
		Target:    target,
		Details:   details,
		IPAddress: ip,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
	}, nil
}

func isValidAction(action AuditAction) bool {
	switch action {
	case ActionSettingsLoaded, ActionSettingsSaved, ActionSettingsImported,
		ActionSettingsExported, ActionSettingsReset, ActionPanelSaved,
		ActionConfigChange, ActionInfo:
		return true
	}
	return false
}

type auditCtxKey int

// Context keys the web layer uses to pass request metadata to services.
const (
	AuditActorKey auditCtxKey = iota
	AuditIPKey
	AuditRequestIDKey
)

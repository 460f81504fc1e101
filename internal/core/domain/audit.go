package domain

import "time"

// AuditAction names an event recorded in the audit trail.
type AuditAction string

const (
	AuditLogin          AuditAction = "login"
	AuditLoginFailed    AuditAction = "login_failed"
	AuditLoginBlocked   AuditAction = "login_blocked"
	AuditLogout         AuditAction = "logout"
	AuditRegister       AuditAction = "register"
	AuditProfileUpdate  AuditAction = "update_profile"
	AuditPasswordChange AuditAction = "change_password"
	AuditUsernameChange AuditAction = "change_username"
)

// AuditRecord is one entry in the audit trail. Actor is the username that
// performed (or attempted) the action; TargetID is the affected user, if any.
type AuditRecord struct {
	ID       int64
	Actor    string
	Action   AuditAction
	TargetID int64
	At       time.Time
}

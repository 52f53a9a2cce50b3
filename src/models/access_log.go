package models

import "time"

// LogStatus is the outcome of a recorded access attempt
type LogStatus string

const (
	// LogStatusSuccess marks a successful attempt
	LogStatusSuccess LogStatus = "SUCCESS"
	// LogStatusFailure marks a failed attempt
	LogStatusFailure LogStatus = "FAILURE"
)

// Well-known access log actions. Admins may edit entries to arbitrary
// action text, so these are conventions rather than an enum.
const (
	// ActionLogin is recorded for every real login attempt
	ActionLogin = "LOGIN"
	// ActionBreakGlassLogin is recorded when the emergency credential is used
	ActionBreakGlassLogin = "BREAK_GLASS_LOGIN"
)

// AccessLogEntry is one row of the login audit trail.
// AccountID is nil when the attempted username did not resolve to an
// account, or when the account was deleted after the attempt.
type AccessLogEntry struct {
	ID        int64     `json:"id"`
	AccountID *int64    `json:"accountId"`
	Action    string    `json:"action"`
	Status    LogStatus `json:"status"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
}

package events

import "time"

// Actions recorded on the audit queue.
const (
	ActionLogin    = "login"
	ActionRefresh  = "refresh"
	ActionValidate = "validate"
)

// AuthEvent is the JSON payload put on the RabbitMQ queue for audit logging.
// The audit worker consumes these and persists them to the document store.
type AuthEvent struct {
	UserID    string         `json:"userId"`
	Username  string         `json:"username"`
	Action    string         `json:"action"`
	IP        string         `json:"ip,omitempty"`
	UserAgent string         `json:"userAgent,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	At        time.Time      `json:"at"`
}

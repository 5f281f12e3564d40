package events

var SessionEndedTopic = "SessionEndedEvent"

type SessionEndReason string

const (
	ReasonLogout  SessionEndReason = "logout"
	ReasonExpired SessionEndReason = "expired"
)

type SessionEnded struct {
	WorkspaceID string
	Reason      SessionEndReason
}

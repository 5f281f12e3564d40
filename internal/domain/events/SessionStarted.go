package events

var SessionStartedTopic = "SessionStartedEvent"

// SessionStarted is published after a successful login in a workspace.
type SessionStarted struct {
	WorkspaceID string
	Email       string
}

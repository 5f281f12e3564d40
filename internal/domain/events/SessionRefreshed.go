package events

var SessionRefreshedTopic = "SessionRefreshedEvent"

// SessionRefreshed is published after the API rotated the credentials of a workspace.
type SessionRefreshed struct {
	WorkspaceID string
}

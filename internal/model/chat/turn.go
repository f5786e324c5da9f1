package chat

import "time"

// Role tags who produced a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Turn is a single immutable entry of a conversation.
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserTurn builds a turn authored by the person at the keyboard.
func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Text: text, CreatedAt: time.Now().UTC()}
}

// AgentTurn builds a turn holding the model's reply.
func AgentTurn(text string) Turn {
	return Turn{Role: RoleAgent, Text: text, CreatedAt: time.Now().UTC()}
}

// IsUser reports whether the turn came from the user.
func (t Turn) IsUser() bool {
	return t.Role == RoleUser
}

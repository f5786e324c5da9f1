package chat

import "time"

// Session is one conversation, addressed by its human-readable label.
type Session struct {
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
}

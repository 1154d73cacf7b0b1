package domain

import "time"

// ActivityLog is an append-only audit record. Rows are created only by the
// todo mutation path, never by API clients.
type ActivityLog struct {
	ID        string
	UserID    string
	Action    string
	Target    string
	CreatedAt time.Time
}

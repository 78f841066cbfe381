package domain

import "time"

// Notification is one unread-capable item addressed to a user.
type Notification struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Title     string    `json:"title" bson:"title"`
	Body      string    `json:"body,omitempty" bson:"body,omitempty"`
	Read      bool      `json:"read" bson:"read"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ReadEvent is broadcast after a notification is durably marked read.
// Subscribers re-query the authoritative unread count rather than trusting a
// pushed value, so independent badges cannot drift apart.
type ReadEvent struct {
	UserID         string `json:"user_id"`
	NotificationID string `json:"notification_id"`
}

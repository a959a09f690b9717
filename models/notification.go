package models

import "time"

// Notification is a push message delivered to a donor's device.
type Notification struct {
	ID        string            `bson:"id" json:"id"`
	Type      string            `bson:"type" json:"type"`
	Title     string            `bson:"title" json:"title"`
	Message   string            `bson:"message" json:"message"`
	Data      map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	CreatedAt time.Time         `bson:"created_at" json:"createdAt"`
}

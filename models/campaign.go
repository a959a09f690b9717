package models

import "time"

// Campaign is a donation drive shown on the home feed.
type Campaign struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Institution string   `bson:"institution" json:"institution"`
	Location    string   `bson:"location" json:"location"`
	Reason      string   `bson:"reason,omitempty" json:"reason,omitempty"`
	StartDate   string   `bson:"start_date" json:"startDate"` // "2006-01-02"
	EndDate     string   `bson:"end_date" json:"endDate"`
	BloodTypes  []string `bson:"blood_types,omitempty" json:"bloodTypes,omitempty"`
	Active      bool     `bson:"active" json:"active"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

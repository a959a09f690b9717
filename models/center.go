package models

// Center is a physical or mobile blood-collection location.
type Center struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	Mobile  bool   `bson:"mobile,omitempty" json:"mobile,omitempty"`
	// SlotTemplate lists the times offered every working day, in "15:04"
	// format. Empty means the directory's default template applies.
	SlotTemplate []string `bson:"slot_template,omitempty" json:"slotTemplate,omitempty"`
}

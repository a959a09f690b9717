package models

import "time"

// User roles.
const (
	RoleDonor = "donor"
	RoleStaff = "staff"
)

// User represents a registered donor (or staff member).
type User struct {
	ID           string `bson:"id" json:"id"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	Password     string `bson:"-" json:"password,omitempty"` // Plain text, input only.
	PasswordHash string `bson:"password_hash" json:"-"`
	Role         string `bson:"role" json:"role"`

	// Profile fields shown on the profile screen.
	Age       int    `bson:"age" json:"age"`
	Sex       string `bson:"sex" json:"sex"` // "male" or "female"
	BloodType string `bson:"blood_type" json:"bloodType"`
	City      string `bson:"city" json:"city"`

	// Questionnaire holds the latest screening answers, if any.
	Questionnaire     *QuestionnaireAnswers `bson:"questionnaire,omitempty" json:"questionnaire,omitempty"`
	AnsweredQuestions int                   `bson:"answered_questions" json:"answeredQuestions"`

	// NextEligibleDate is set after a completed donation; while it lies in
	// the future the donor is temporarily ineligible.
	NextEligibleDate *time.Time `bson:"next_eligible_date,omitempty" json:"nextEligibleDate,omitempty"`

	// CurrentAppointmentID references the donor's appointment of record,
	// empty when none exists or a finished one was discarded.
	CurrentAppointmentID string `bson:"current_appointment_id,omitempty" json:"currentAppointmentId,omitempty"`

	// DeviceToken is the FCM registration token of the donor's device.
	DeviceToken string `bson:"device_token,omitempty" json:"-"`
	// TokenHash is the SHA-256 hash of the currently issued auth token.
	TokenHash string `bson:"token_hash,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// UserUpdateRequest carries a partial profile update; nil fields are left
// untouched.
type UserUpdateRequest struct {
	Name      *string `json:"name,omitempty"`
	Age       *int    `json:"age,omitempty"`
	Sex       *string `json:"sex,omitempty"`
	BloodType *string `json:"bloodType,omitempty"`
	City      *string `json:"city,omitempty"`
}

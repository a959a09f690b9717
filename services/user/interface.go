package user

import (
	"hemovida/models"
	"hemovida/services/eligibility"
)

// AuthResponse contains only the user's ID and the JWT token.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// StatusResponse is the profile/status view: the stored profile plus the
// donor status derived from it on read.
type StatusResponse struct {
	User   *models.User       `json:"user"`
	Status eligibility.Result `json:"donorStatus"`
}

// UserService defines business logic for donor accounts.
type UserService interface {
	// RegisterUser validates the registration details, creates a new user
	// record, issues a token and returns the new user's ID and token.
	RegisterUser(u models.User) (*AuthResponse, error)
	// AuthenticateUser verifies credentials and returns ID and token.
	AuthenticateUser(email, password string) (*AuthResponse, error)
	// RevokeAuthToken invalidates the user's current token (logout).
	RevokeAuthToken(userID string) error

	// GetProfile returns the stored profile with the derived donor status.
	GetProfile(userID string) (*StatusResponse, error)
	// UpdateProfile applies a partial update to the profile fields.
	UpdateProfile(userID string, req models.UserUpdateRequest) (*models.User, error)
	// SubmitQuestionnaire stores a full set of screening answers and
	// recomputes the answered-question count.
	SubmitQuestionnaire(userID string, answers models.QuestionnaireAnswers) (*StatusResponse, error)
	// SetDeviceToken registers the FCM token of the user's device.
	SetDeviceToken(userID, token string) error
	// DeleteUser removes the account.
	DeleteUser(userID string) error
}

package user

import (
	"fmt"

	"hemovida/models"
	"hemovida/services/eligibility"
)

// GetProfile returns the stored profile plus the donor status derived from
// it. The status is computed on every read and never written back.
func (s *DefaultUserService) GetProfile(userID string) (*StatusResponse, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	result := eligibility.Classify(eligibility.ProfileFromUser(u), s.now())
	return &StatusResponse{User: u, Status: result}, nil
}

// UpdateProfile applies a partial update to the profile fields.
func (s *DefaultUserService) UpdateProfile(userID string, req models.UserUpdateRequest) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Age != nil {
		u.Age = *req.Age
	}
	if req.Sex != nil {
		u.Sex = *req.Sex
	}
	if req.BloodType != nil {
		u.BloodType = *req.BloodType
	}
	if req.City != nil {
		u.City = *req.City
	}
	u.UpdatedAt = s.now()

	if err := s.Repo.Update(u); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

// SubmitQuestionnaire stores a full set of screening answers, recomputes the
// answered-question count and returns the freshly derived status.
func (s *DefaultUserService) SubmitQuestionnaire(userID string, answers models.QuestionnaireAnswers) (*StatusResponse, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	u.Questionnaire = &answers
	u.AnsweredQuestions = answers.AnsweredCount()
	u.UpdatedAt = s.now()

	if err := s.Repo.Update(u); err != nil {
		return nil, fmt.Errorf("failed to store questionnaire: %w", err)
	}

	result := eligibility.Classify(eligibility.ProfileFromUser(u), s.now())
	return &StatusResponse{User: u, Status: result}, nil
}

// SetDeviceToken registers the FCM token of the user's device.
func (s *DefaultUserService) SetDeviceToken(userID, token string) error {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	u.DeviceToken = token
	u.UpdatedAt = s.now()
	if err := s.Repo.Update(u); err != nil {
		return fmt.Errorf("failed to store device token: %w", err)
	}
	return nil
}

// DeleteUser removes the account.
func (s *DefaultUserService) DeleteUser(userID string) error {
	return s.Repo.Delete(userID)
}

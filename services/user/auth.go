package user

import (
	"context"
	"fmt"
	"time"

	userRepo "hemovida/database/repository/user"
	"hemovida/models"
	"hemovida/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultUserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RegisterUser validates required fields, hashes the password, sets defaults,
// persists the user and returns the user's ID with a fresh JWT token.
func (s *DefaultUserService) RegisterUser(u models.User) (*AuthResponse, error) {
	if u.Email == "" || u.Password == "" {
		return nil, fmt.Errorf("user email and password are required")
	}
	if u.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	existing, err := s.Repo.GetByEmail(u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, &EmailTakenError{Email: u.Email}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hashedPassword)
	u.Password = "" // Clear plain-text password.

	// Screening and booking state is server-owned. A signup payload that
	// claims answered questions or an interval date must not become ground
	// truth, or the donor would classify Eligible without ever screening.
	u.Questionnaire = nil
	u.AnsweredQuestions = 0
	u.NextEligibleDate = nil
	u.CurrentAppointmentID = ""
	u.DeviceToken = ""
	u.TokenHash = ""

	u.ID = uuid.New().String()
	if u.Role == "" {
		u.Role = models.RoleDonor
	}
	now := s.now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if err := s.Repo.Create(&u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(&u)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{ID: u.ID, Token: token}, nil
}

// AuthenticateUser verifies credentials and returns the ID and a new token.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if u == nil {
		return nil, &InvalidCredentialsError{}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, &InvalidCredentialsError{}
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{ID: u.ID, Token: token}, nil
}

// issueToken generates a JWT for the user and stores its hash on the record,
// replacing any previously issued token.
func (s *DefaultUserService) issueToken(u *models.User) (string, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, 24*time.Hour)
	if err != nil {
		return "", fmt.Errorf("failed to generate auth token: %w", err)
	}
	u.TokenHash = utils.HashToken(token)
	u.UpdatedAt = s.now()
	if err := s.Repo.Update(u); err != nil {
		return "", fmt.Errorf("failed to store auth token: %w", err)
	}
	return token, nil
}

// RevokeAuthToken clears the stored token hash and evicts the auth cache
// entry so in-flight tokens stop working.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	u.TokenHash = ""
	u.UpdatedAt = s.now()
	if err := s.Repo.Update(u); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	cache := utils.GetAuthCacheClient()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Sugar().Warnf("failed to evict auth cache for %s: %v", userID, err)
	}
	return nil
}

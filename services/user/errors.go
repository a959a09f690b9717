package user

import "fmt"

// EmailTakenError signals that a registration email is already in use.
type EmailTakenError struct {
	Email string
}

func (e *EmailTakenError) Error() string {
	return fmt.Sprintf("user with email %s already exists", e.Email)
}

// InvalidCredentialsError signals a failed login attempt. It is deliberately
// silent on whether the email or the password was wrong.
type InvalidCredentialsError struct{}

func (e *InvalidCredentialsError) Error() string {
	return "invalid email or password"
}

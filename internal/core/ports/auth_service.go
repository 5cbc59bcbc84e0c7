package ports

import (
	"context"

	"github.com/mentormatch/connect-api/internal/core/domain"
)

// SignupInput carries the fields collected by the signup form.
type SignupInput struct {
	FirstName string
	LastName  string
	EmailID   string
	Password  string
}

// AuthService implements account creation and login.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	// Login verifies credentials and returns a signed session token plus the
	// authenticated user.
	Login(ctx context.Context, emailID, password string) (string, *domain.User, error)
}

package ports

import (
	"context"

	"github.com/mentormatch/connect-api/internal/core/domain"
)

// EditProfileInput carries the owner-editable profile fields. The client
// submits the full set on every save, so edits are a whole-profile replace.
type EditProfileInput struct {
	FirstName string
	LastName  string
	PhotoURL  string
	Gender    string
	Age       int
	About     string
	Skills    []string
}

// ProfileService exposes profile read and owner-scoped edit.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	EditProfile(ctx context.Context, userID string, input EditProfileInput) (*domain.User, error)
}

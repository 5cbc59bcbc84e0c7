package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentormatch/connect-api/internal/core/domain"
	"github.com/mentormatch/connect-api/internal/core/ports"
)

// ProfileService exposes profile reads and owner-scoped edits.
type ProfileService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewProfileService(repo ports.UserRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// EditProfile replaces the owner-editable fields of the caller's profile.
// Field-level validation happens at the transport layer; the service only
// applies the change.
func (s *ProfileService) EditProfile(ctx context.Context, userID string, input ports.EditProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.PhotoURL = input.PhotoURL
	user.Gender = input.Gender
	user.Age = input.Age
	user.About = input.About
	user.Skills = input.Skills
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to update profile")
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Msg("profile updated")
	return updated, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"profile-service/internal/domain"
	"profile-service/internal/identity"
	"profile-service/internal/repository"
)

// ProfileService resolves the caller's phone and reads or writes their
// single profile row. Reads never create a row; writes fully replace the
// patchable fields (omitted fields become null).
type ProfileService struct {
	resolver     identity.Resolver
	profileRepo  repository.ProfileRepository
	storeTimeout time.Duration
}

func NewProfileService(resolver identity.Resolver, profileRepo repository.ProfileRepository, storeTimeout time.Duration) *ProfileService {
	return &ProfileService{
		resolver:     resolver,
		profileRepo:  profileRepo,
		storeTimeout: storeTimeout,
	}
}

// Me returns the caller's profile, or nil when none exists yet.
func (s *ProfileService) Me(ctx context.Context, creds identity.Credentials) (*domain.Profile, error) {
	phone, err := s.resolver.Resolve(ctx, creds)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	profile, err := s.profileRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return profile, nil
}

// Update upserts the caller's profile with the given patch.
func (s *ProfileService) Update(ctx context.Context, creds identity.Credentials, patch domain.ProfilePatch) (*domain.Profile, error) {
	phone, err := s.resolver.Resolve(ctx, creds)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	profile, err := s.profileRepo.UpsertByPhone(ctx, phone, patch)
	if err != nil {
		return nil, fmt.Errorf("upserting profile: %w", err)
	}
	return profile, nil
}

package repository

import (
	"context"

	"profile-service/internal/domain"
)

type ProfileRepository interface {
	// GetByPhone returns the profile for phone, or (nil, nil) when no row exists.
	GetByPhone(ctx context.Context, phone string) (*domain.Profile, error)
	// UpsertByPhone atomically creates or fully replaces the profile for phone.
	// Every patchable column takes the patch value, so omitted fields become null.
	UpsertByPhone(ctx context.Context, phone string, patch domain.ProfilePatch) (*domain.Profile, error)
	// EnsureByPhone inserts a bare row for phone if none exists and returns the
	// row, leaving an existing row untouched.
	EnsureByPhone(ctx context.Context, phone string) (*domain.Profile, error)
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"profile-service/internal/domain"
)

const profileColumns = "id, phone, full_name, age, address, avatar_url, created_at, updated_at"

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) GetByPhone(ctx context.Context, phone string) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+profileColumns+" FROM profiles WHERE phone = $1", phone)

	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// UpsertByPhone is a single INSERT ... ON CONFLICT DO UPDATE, so concurrent
// upserts for the same phone cannot interleave into a mixed row.
func (r *ProfileRepo) UpsertByPhone(ctx context.Context, phone string, patch domain.ProfilePatch) (*domain.Profile, error) {
	query := `
		INSERT INTO profiles (phone, full_name, age, address, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (phone) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			age = EXCLUDED.age,
			address = EXCLUDED.address,
			avatar_url = EXCLUDED.avatar_url
		RETURNING ` + profileColumns

	row := r.pool.QueryRow(ctx, query,
		phone, patch.FullName, patch.Age, patch.Address, patch.AvatarURL,
	)
	return scanProfile(row)
}

func (r *ProfileRepo) EnsureByPhone(ctx context.Context, phone string) (*domain.Profile, error) {
	query := `
		INSERT INTO profiles (phone)
		VALUES ($1)
		ON CONFLICT (phone) DO NOTHING
		RETURNING ` + profileColumns

	p, err := scanProfile(r.pool.QueryRow(ctx, query, phone))
	if errors.Is(err, pgx.ErrNoRows) {
		// Row already existed; DO NOTHING returns nothing.
		return r.GetByPhone(ctx, phone)
	}
	return p, err
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.Phone, &p.FullName, &p.Age,
		&p.Address, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

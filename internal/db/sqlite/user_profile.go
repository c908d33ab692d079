package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thebtf/dreamlog/pkg/models"
)

const userProfileColumns = `id, display_name, timezone, birthdate, bio, created_at, updated_at`

// UserProfileRepository manages the single user profile row.
type UserProfileRepository struct {
	t *table[models.UserProfile]
}

// NewUserProfileRepository creates a profile repository over store.
func NewUserProfileRepository(store *Store) *UserProfileRepository {
	return newUserProfileRepository(store, nil)
}

func newUserProfileRepository(store *Store, g gate) *UserProfileRepository {
	return &UserProfileRepository{t: &table[models.UserProfile]{
		store:   store,
		gate:    g,
		scan:    scanUserProfile,
		name:    "user_profile",
		columns: userProfileColumns,
		orderBy: "id ASC",
		touch:   true,
	}}
}

// GetProfile returns the profile, or nil when none exists.
func (r *UserProfileRepository) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	return r.t.first(ctx, "", "id ASC")
}

// UpsertProfile replaces the profile fields, creating the row when absent.
// It never creates a second row.
func (r *UserProfileRepository) UpsertProfile(ctx context.Context, input models.UpsertUserProfileInput) (*models.UserProfile, error) {
	current, err := r.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	if current == nil {
		return r.t.insert(ctx,
			[]string{"display_name", "timezone", "birthdate", "bio"},
			[]any{input.DisplayName, nullable(input.Timezone), nullable(input.Birthdate), nullable(input.Bio)},
		)
	}

	updated, err := r.t.update(ctx, current.ID, []assignment{
		{column: "display_name", value: input.DisplayName},
		{column: "timezone", value: nullable(input.Timezone)},
		{column: "birthdate", value: nullable(input.Birthdate)},
		{column: "bio", value: nullable(input.Bio)},
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("upsert user_profile: row %d disappeared during update", current.ID)
	}
	return updated, nil
}

// DeleteProfile removes the profile. Returns false when there was none.
func (r *UserProfileRepository) DeleteProfile(ctx context.Context) (bool, error) {
	current, err := r.GetProfile(ctx)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}
	return r.t.delete(ctx, current.ID)
}

func scanUserProfile(s scanner) (*models.UserProfile, error) {
	var (
		p                        models.UserProfile
		timezone, birthdate, bio sql.Null[string]
		created, updated         string
	)
	if err := s.Scan(&p.ID, &p.DisplayName, &timezone, &birthdate, &bio, &created, &updated); err != nil {
		return nil, err
	}

	p.Timezone = ptrOf(timezone)
	p.Birthdate = ptrOf(birthdate)
	p.Bio = ptrOf(bio)

	var err error
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &p, nil
}

package models

import "time"

// UserProfile is the single local user's profile.
type UserProfile struct {
	ID          int64     `json:"id" yaml:"id"`
	DisplayName string    `json:"displayName" yaml:"displayName"`
	Timezone    *string   `json:"timezone" yaml:"timezone"`
	Birthdate   *string   `json:"birthdate" yaml:"birthdate"`
	Bio         *string   `json:"bio" yaml:"bio"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// UpsertUserProfileInput replaces every profile field. Nil pointers clear
// the matching column.
type UpsertUserProfileInput struct {
	Timezone    *string
	Birthdate   *string
	Bio         *string
	DisplayName string
}

package domain

import (
	"time"
)

// Profile is the single row stored per phone number. Optional fields are
// pointers so an unset field marshals as JSON null.
type Profile struct {
	ID        int64     `json:"id"`
	Phone     string    `json:"phone"`
	FullName  *string   `json:"fullName"`
	Age       *int      `json:"age"`
	Address   *string   `json:"address"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfilePatch is the writable subset of Profile. An upsert replaces every
// patchable column with the patch value, so omitted fields become null.
type ProfilePatch struct {
	FullName  *string `json:"fullName"`
	Age       *int    `json:"age"`
	Address   *string `json:"address"`
	AvatarURL *string `json:"avatarUrl"`
}

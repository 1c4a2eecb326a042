package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account on the site. Exactly one seeded user carries IsAdmin.
type User struct {
	ID               uuid.UUID   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Email            string      `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	Password         string      `json:"-" db:"password" gorm:"type:text;not null"`
	Name             string      `json:"name" db:"name" gorm:"type:text;not null"`
	Avatar           *string     `json:"avatar,omitempty" db:"avatar" gorm:"type:text"`
	AboutPhoto       *string     `json:"aboutPhoto,omitempty" db:"about_photo" gorm:"type:text"`
	AboutText        *string     `json:"aboutText,omitempty" db:"about_text" gorm:"type:text"`
	AboutDescription *string     `json:"aboutDescription,omitempty" db:"about_description" gorm:"type:text"`
	Skills           StringSlice `json:"skills" db:"skills" gorm:"type:jsonb;not null;default:'[]'"`
	IsAdmin          bool        `json:"isAdmin" db:"is_admin" gorm:"not null;default:false"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at" gorm:"not null;default:now()"`
}

// PublicUser is the projection of a User that is safe to return to clients.
type PublicUser struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	Avatar  *string   `json:"avatar"`
	IsAdmin bool      `json:"isAdmin"`
}

// Public strips the credential fields off a User.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Avatar:  u.Avatar,
		IsAdmin: u.IsAdmin,
	}
}

// Profile is the anonymous-facing projection of the admin user.
type Profile struct {
	Name             string      `json:"name"`
	Avatar           *string     `json:"avatar"`
	AboutPhoto       *string     `json:"aboutPhoto"`
	AboutText        *string     `json:"aboutText"`
	AboutDescription *string     `json:"aboutDescription"`
	Skills           StringSlice `json:"skills"`
}

// Profile builds the public profile projection for the admin user.
func (u User) Profile() Profile {
	return Profile{
		Name:             u.Name,
		Avatar:           u.Avatar,
		AboutPhoto:       u.AboutPhoto,
		AboutText:        u.AboutText,
		AboutDescription: u.AboutDescription,
		Skills:           u.Skills,
	}
}

// UserUpdate is a partial update applied to a User. Nil fields are left alone.
// ID, CreatedAt and IsAdmin are never touched by an update.
type UserUpdate struct {
	Name             *string      `json:"name"`
	Avatar           *string      `json:"avatar"`
	AboutPhoto       *string      `json:"aboutPhoto"`
	AboutText        *string      `json:"aboutText"`
	AboutDescription *string      `json:"aboutDescription"`
	Skills           *StringSlice `json:"skills"`
}

// Apply merges the update into the user in place.
func (upd UserUpdate) Apply(u *User) {
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Avatar != nil {
		u.Avatar = upd.Avatar
	}
	if upd.AboutPhoto != nil {
		u.AboutPhoto = upd.AboutPhoto
	}
	if upd.AboutText != nil {
		u.AboutText = upd.AboutText
	}
	if upd.AboutDescription != nil {
		u.AboutDescription = upd.AboutDescription
	}
	if upd.Skills != nil {
		u.Skills = *upd.Skills
	}
}

package domain

import "time"

// User models an authenticated actor on the platform. Role is set at account
// creation and never changed through the profile-update path.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Organization string    `json:"organization,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserPatch carries the profile fields a user may change locally. Role is
// absent on purpose: it is not caller-settable through any update path.
type UserPatch struct {
	Name         *string
	Avatar       *string
	Phone        *string
	Organization *string
}

// Apply merges the patch onto u and returns the merged copy. Nil fields are
// left untouched.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Organization != nil {
		u.Organization = *p.Organization
	}
	return u
}

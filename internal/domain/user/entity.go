package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidRole = errors.New("invalid role")

// User is never deleted; losing club access is modelled by the active flag.
type User struct {
	id        uuid.UUID
	role      Role
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewUser(role Role) (*User, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &User{
		id:   uuid.New(),
		role: role,
	}, nil
}

func ReconstructUser(id uuid.UUID, role Role, isActive bool, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		role:      role,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) Activate()   { u.isActive = true }
func (u *User) Deactivate() { u.isActive = false }

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Role() Role           { return u.role }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

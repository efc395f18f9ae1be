package domain

import (
	"slices"
	"time"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type User struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Password  string    `db:"password"` // bcrypt hashed
	Roles     []string  `db:"-"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewUser(email, hashedPassword string, admin bool) *User {
	now := time.Now()
	u := &User{
		Email:     email,
		Password:  hashedPassword,
		Roles:     []string{RoleUser},
		CreatedAt: now,
		UpdatedAt: now,
	}
	u.SetAdmin(admin)
	return u
}

func (u *User) IsAdmin() bool {
	return slices.Contains(u.Roles, RoleAdmin)
}

// SetAdmin grants or revokes ROLE_ADMIN. ROLE_USER is always kept.
func (u *User) SetAdmin(admin bool) {
	roles := []string{RoleUser}
	for _, r := range u.Roles {
		if r != RoleUser && r != RoleAdmin {
			roles = append(roles, r)
		}
	}
	if admin {
		roles = append(roles, RoleAdmin)
	}
	u.Roles = roles
}

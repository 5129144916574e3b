package domain

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
	RoleClient   UserRole = "client"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleClient:
		return true
	}
	return false
}

type User struct {
	ID        string
	Name      string
	LastName  string
	Email     string
	Password  string
	Role      UserRole
	CreatedAt time.Time
}

// FullName is the display form denormalized onto sales at creation time.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.Name
	}
	return u.Name + " " + u.LastName
}

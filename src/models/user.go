package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Fullname     string    `json:"fullname"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthUser is the verified identity attached to each request by the auth
// middleware and passed explicitly into every db operation that needs to know
// who acted.
type AuthUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Role     string `json:"role"`
}

func (u AuthUser) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

package domain

import "time"

const RoleTeacher = "Teacher"

type User struct {
	ID       int64  `json:"user_id"`
	Username string `json:"username"`
	// Password holds the bcrypt digest, never the plaintext.
	// Excluded from JSON so it can never leak through a query response.
	Password  string    `json:"-"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ClassID   *int64    `json:"class_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

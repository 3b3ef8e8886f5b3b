package domain

import "time"

// Grade is a single mark a teacher gave to a student.
type Grade struct {
	ID        int64     `json:"grade_id"`
	Name      string    `json:"name"`
	Value     int       `json:"grade"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

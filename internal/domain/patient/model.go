package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. Email is stored normalized (lowercase,
// trimmed) and is unique across all patients.
type Patient struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Age         *int       `db:"age" json:"age,omitempty"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender      *string    `db:"gender" json:"gender,omitempty"`
	Email       string     `db:"email" json:"email"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// CreateInput carries the fields accepted at registration.
type CreateInput struct {
	Name        string     `json:"name"`
	Age         *int       `json:"age"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
	Email       string     `json:"email"`
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name        *string    `json:"name"`
	Age         *int       `json:"age"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
	Email       *string    `json:"email"`
}

// NormalizeEmail is the single definition of email equality: two addresses
// collide when their normalized forms compare equal.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

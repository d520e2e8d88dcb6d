package models

import "time"

// Employee roles.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Shift labels.
const (
	ShiftMorning = "morning"
	ShiftEvening = "evening"
	ShiftNight   = "night"
)

// Employee is a staff identity. Every employee owns exactly one Credential,
// created in the same transaction; credential material never leaves the
// repository layer, so the struct carries only the linking id.
type Employee struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Position     string    `db:"position" json:"position"`
	Role         string    `db:"role" json:"role"`
	Shift        string    `db:"shift" json:"shift"`
	CredentialID string    `db:"credential_id" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Credential is the login identity backing an Employee. Role mirrors the
// owning employee's role and is updated alongside it.
type Credential struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

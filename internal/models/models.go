// Package models defines the entities shared between the phonebook client
// and server. The JSON tags are the wire contract: snake_case field names,
// nested company/creator summaries, RFC 3339 timestamps.
package models

import "time"

// Role determines what a signed-in user is allowed to do.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleUser   Role = "user"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleUser:
		return true
	}
	return false
}

// Priority classifies a notice. The levels only affect how a notice is
// displayed; they carry no other semantics.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// NormalizePriority maps an incoming priority string to a known level.
// An absent or unknown value falls back to PriorityNormal.
func NormalizePriority(s string) Priority {
	switch Priority(s) {
	case PriorityLow, PriorityNormal, PriorityMedium, PriorityHigh:
		return Priority(s)
	}
	return PriorityNormal
}

// User is a user account as returned by the server. The password is
// write-only and never round-tripped, so it has no field here.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanyRef is the nested company summary embedded in contact records.
type CompanyRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserRef is the nested creator summary embedded in notice records.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Contact struct {
	ID        int64       `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Mobile    string      `json:"mobile"`
	CompanyID *int64      `json:"company_id"`
	Notes     string      `json:"notes"`
	Company   *CompanyRef `json:"company,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	CreatedBy int64       `json:"created_by"`
}

type Company struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Industry    string    `json:"industry"`
	Website     string    `json:"website"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	ZipCode     string    `json:"zip_code"`
	Country     string    `json:"country"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   int64     `json:"created_by"`
}

type Notice struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Priority  Priority  `json:"priority"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *UserRef  `json:"created_by"`
}

// Pagination describes one page of a paginated collection. Only the
// contacts collection is paginated; the server recomputes it on every
// list response.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

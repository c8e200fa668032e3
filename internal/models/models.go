package models

import "time"

// Tour is a bookable trip shown on the destinations listing.
type Tour struct {
	ID          int64     `json:"id" yaml:"-"`
	Title       string    `json:"title" yaml:"title"`
	Destination string    `json:"destination" yaml:"destination"`
	Substyles   []string  `json:"substyles" yaml:"substyles"`
	Languages   []string  `json:"languages" yaml:"languages"`
	Days        int       `json:"days" yaml:"days"`
	Price       int       `json:"price" yaml:"price"`
	Reviews     int       `json:"reviews" yaml:"reviews"`
	Rating      float64   `json:"rating" yaml:"rating"`
	Countries   string    `json:"countries" yaml:"countries"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
}

// FilterOption is one checkbox in a listing filter group.
type FilterOption struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TourFilter narrows a listing. Options within a group are ORed, groups are ANDed.
type TourFilter struct {
	Destination string
	SubstyleIDs []int64
	LanguageIDs []int64
	Limit       int
	Offset      int
}

// Employee is a PIM record.
type Employee struct {
	ID         int64     `json:"id"`
	EmployeeID string    `json:"employee_id"`
	FirstName  string    `json:"first_name"`
	MiddleName string    `json:"middle_name"`
	LastName   string    `json:"last_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// FullName is the name shown in the admin users table and the autocomplete.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// FirstMiddleName is the combined column shown in the PIM table.
func (e Employee) FirstMiddleName() string {
	if e.MiddleName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.MiddleName
}

// User roles and statuses accepted by the admin module.
const (
	RoleAdmin = "Admin"
	RoleESS   = "ESS"

	StatusEnabled  = "Enabled"
	StatusDisabled = "Disabled"
)

// User represents a system user account of the HR app.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	EmployeeID   *int64    `json:"employee_id,omitempty"`
	EmployeeName string    `json:"employee_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents a user session.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

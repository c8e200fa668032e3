package storage

import (
	"bytes"
	_ "embed"
	"fmt"

	"pagecheck/internal/auth"
	"pagecheck/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the seed data for a fresh demo site database.
type Catalog struct {
	Tours     []models.Tour     `yaml:"tours"`
	Employees []CatalogEmployee `yaml:"employees"`
	Users     []CatalogUser     `yaml:"users"`
}

// CatalogEmployee is an employee entry of the seed catalog.
type CatalogEmployee struct {
	EmployeeID string `yaml:"employee_id"`
	FirstName  string `yaml:"first_name"`
	MiddleName string `yaml:"middle_name"`
	LastName   string `yaml:"last_name"`
}

// CatalogUser is a system user entry of the seed catalog. Employee refers to
// an employee by "First Last".
type CatalogUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Status   string `yaml:"status"`
	Employee string `yaml:"employee"`
}

// ParseCatalog decodes a YAML catalog, rejecting unknown fields.
func ParseCatalog(b []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i, t := range c.Tours {
		if t.Title == "" || t.Destination == "" {
			return nil, fmt.Errorf("catalog tours[%d]: title and destination are required", i)
		}
	}
	return &c, nil
}

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// Seed loads c into the database when it holds no tours yet. It reports
// whether anything was written.
func (db *DB) Seed(c *Catalog) (bool, error) {
	n, err := db.TourCount()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	for i := range c.Tours {
		if _, err := db.CreateTour(&c.Tours[i]); err != nil {
			return false, fmt.Errorf("seed tour %q: %w", c.Tours[i].Title, err)
		}
	}
	for _, e := range c.Employees {
		if _, err := db.CreateEmployee(&models.Employee{
			EmployeeID: e.EmployeeID,
			FirstName:  e.FirstName,
			MiddleName: e.MiddleName,
			LastName:   e.LastName,
		}); err != nil {
			return false, fmt.Errorf("seed employee %s: %w", e.EmployeeID, err)
		}
	}
	for _, u := range c.Users {
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			return false, fmt.Errorf("seed user %s: %w", u.Username, err)
		}
		user := &models.User{Username: u.Username, PasswordHash: hash, Role: u.Role, Status: u.Status}
		if u.Employee != "" {
			emp, err := db.FindEmployeeByName(u.Employee)
			if err != nil {
				return false, fmt.Errorf("seed user %s: employee %q: %w", u.Username, u.Employee, err)
			}
			user.EmployeeID = &emp.ID
		}
		if _, err := db.CreateUser(user); err != nil {
			return false, fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}
	return true, nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"pagecheck/internal/auth"
	"pagecheck/internal/models"
	"pagecheck/internal/storage"
)

const (
	systemUsersPath  = "/hr/admin/viewSystemUsers"
	employeeListPath = "/hr/pim/viewEmployeeList"

	msgRequired = "Required"
)

// Dashboard renders the landing page after login.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.renderHR(w, r, "dashboard.html", "Dashboard", nil)
}

// AdminModule redirects to the default Admin screen.
func (h *Handlers) AdminModule(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, systemUsersPath, http.StatusFound)
}

// PIMModule redirects to the default PIM screen.
func (h *Handlers) PIMModule(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, employeeListPath, http.StatusFound)
}

// RecordsViewModel feeds a records table.
type RecordsViewModel struct {
	Users     []models.User
	Employees []models.Employee
}

// Count is the number of records shown.
func (v RecordsViewModel) Count() int {
	return len(v.Users) + len(v.Employees)
}

// SystemUsers renders Admin > User Management > Users.
func (h *Handlers) SystemUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.db.ListUsers(r.URL.Query().Get("username"))
	if err != nil {
		h.serverError(w, "list users", err)
		return
	}
	h.renderHR(w, r, "users.html", "Admin", RecordsViewModel{Users: users})
}

// UsersFragment renders the system users table for a filter search.
func (h *Handlers) UsersFragment(w http.ResponseWriter, r *http.Request) {
	if !h.hold(r) {
		return
	}
	users, err := h.db.ListUsers(r.URL.Query().Get("username"))
	if err != nil {
		h.serverError(w, "list users", err)
		return
	}
	h.renderHRBlock(w, r, "users.html", "records", RecordsViewModel{Users: users})
}

// UserForm is the Add User form state.
type UserForm struct {
	Role         string
	EmployeeName string
	EmployeeID   string
	Status       string
	Username     string
	Errors       map[string]string
}

// Roles and Statuses list the dropdown options.
func (UserForm) Roles() []string    { return []string{models.RoleAdmin, models.RoleESS} }
func (UserForm) Statuses() []string { return []string{models.StatusEnabled, models.StatusDisabled} }

// AddUserForm renders Admin > Add User.
func (h *Handlers) AddUserForm(w http.ResponseWriter, r *http.Request) {
	h.renderHR(w, r, "user_form.html", "Admin", UserForm{})
}

// SaveUser creates a system user from the Add User form.
func (h *Handlers) SaveUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	form := UserForm{
		Role:         r.FormValue("role"),
		EmployeeName: strings.TrimSpace(r.FormValue("employee_name")),
		EmployeeID:   r.FormValue("employee_id"),
		Status:       r.FormValue("status"),
		Username:     strings.TrimSpace(r.FormValue("username")),
		Errors:       map[string]string{},
	}
	password := r.FormValue("password")

	if form.Role != models.RoleAdmin && form.Role != models.RoleESS {
		form.Errors["role"] = msgRequired
	}
	if form.Status != models.StatusEnabled && form.Status != models.StatusDisabled {
		form.Errors["status"] = msgRequired
	}

	var employeeID *int64
	if form.EmployeeName == "" {
		form.Errors["employee"] = msgRequired
	} else if e, err := h.resolveEmployee(form.EmployeeID, form.EmployeeName); err != nil {
		form.Errors["employee"] = "Invalid"
	} else {
		employeeID = &e.ID
	}

	switch {
	case len(form.Username) < 5:
		form.Errors["username"] = "Should be at least 5 characters"
	default:
		if _, err := h.db.GetUserByUsername(form.Username); err == nil {
			form.Errors["username"] = "Already exists"
		}
	}

	if err := auth.ValidatePassword(password); err != nil {
		form.Errors["password"] = "Should have at least 7 characters"
	}
	if r.FormValue("confirm_password") != password {
		form.Errors["confirm_password"] = "Passwords do not match"
	}

	if len(form.Errors) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.renderHR(w, r, "user_form.html", "Admin", form)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		h.serverError(w, "hash password", err)
		return
	}
	if _, err := h.db.CreateUser(&models.User{
		Username:     form.Username,
		PasswordHash: hash,
		Role:         form.Role,
		Status:       form.Status,
		EmployeeID:   employeeID,
	}); err != nil {
		h.serverError(w, "create user", err)
		return
	}
	h.log.WithField("username", form.Username).Info("system user created")
	http.Redirect(w, r, systemUsersPath, http.StatusFound)
}

// resolveEmployee prefers the id picked from the autocomplete and falls back
// to an exact name match.
func (h *Handlers) resolveEmployee(id, name string) (*models.Employee, error) {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		if e, err := h.db.GetEmployee(n); err == nil && e.FullName() == name {
			return e, nil
		}
	}
	return h.db.FindEmployeeByName(name)
}

// DeleteUser removes a system user. Users cannot delete themselves.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if user := GetUserFromContext(r); user != nil && user.ID == id {
		http.Error(w, "Cannot be deleted", http.StatusConflict)
		return
	}
	h.deleted(w, "delete user", h.db.DeleteUser(id))
}

// EmployeeList renders PIM > Employee List, newest first.
func (h *Handlers) EmployeeList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.db.ListEmployees()
	if err != nil {
		h.serverError(w, "list employees", err)
		return
	}
	h.renderHR(w, r, "employees.html", "PIM", RecordsViewModel{Employees: employees})
}

// EmployeesFragment renders the employee table after a change.
func (h *Handlers) EmployeesFragment(w http.ResponseWriter, r *http.Request) {
	if !h.hold(r) {
		return
	}
	employees, err := h.db.ListEmployees()
	if err != nil {
		h.serverError(w, "list employees", err)
		return
	}
	h.renderHRBlock(w, r, "employees.html", "records", RecordsViewModel{Employees: employees})
}

// EmployeeForm is the Add Employee form state.
type EmployeeForm struct {
	FirstName  string
	MiddleName string
	LastName   string
	EmployeeID string
	Errors     map[string]string
}

// AddEmployeeForm renders PIM > Add Employee with a suggested employee id.
func (h *Handlers) AddEmployeeForm(w http.ResponseWriter, r *http.Request) {
	employees, err := h.db.ListEmployees()
	if err != nil {
		h.serverError(w, "list employees", err)
		return
	}
	h.renderHR(w, r, "employee_form.html", "PIM", EmployeeForm{EmployeeID: fmt.Sprintf("%04d", len(employees)+1)})
}

// SaveEmployee creates an employee from the Add Employee form.
func (h *Handlers) SaveEmployee(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	form := EmployeeForm{
		FirstName:  strings.TrimSpace(r.FormValue("firstName")),
		MiddleName: strings.TrimSpace(r.FormValue("middleName")),
		LastName:   strings.TrimSpace(r.FormValue("lastName")),
		EmployeeID: strings.TrimSpace(r.FormValue("employeeId")),
		Errors:     map[string]string{},
	}
	if form.FirstName == "" {
		form.Errors["firstName"] = msgRequired
	}
	if form.LastName == "" {
		form.Errors["lastName"] = msgRequired
	}
	if form.EmployeeID == "" {
		form.Errors["employeeId"] = msgRequired
	} else if len(form.EmployeeID) > 10 {
		form.Errors["employeeId"] = "Should not exceed 10 characters"
	}
	if len(form.Errors) == 0 {
		_, err := h.db.CreateEmployee(&models.Employee{
			EmployeeID: form.EmployeeID,
			FirstName:  form.FirstName,
			MiddleName: form.MiddleName,
			LastName:   form.LastName,
		})
		if err == nil {
			h.log.WithField("employee_id", form.EmployeeID).Info("employee created")
			http.Redirect(w, r, employeeListPath, http.StatusFound)
			return
		}
		if !strings.Contains(err.Error(), "UNIQUE") {
			h.serverError(w, "create employee", err)
			return
		}
		form.Errors["employeeId"] = "Employee Id already exists"
	}
	w.WriteHeader(http.StatusUnprocessableEntity)
	h.renderHR(w, r, "employee_form.html", "PIM", form)
}

// DeleteEmployee removes an employee. Linked system users keep their account
// without an employee.
func (h *Handlers) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.deleted(w, "delete employee", h.db.DeleteEmployee(id))
}

func (h *Handlers) deleted(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case err != nil:
		h.serverError(w, op, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// EmployeeHint is one autocomplete suggestion.
type EmployeeHint struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SearchEmployees answers the employee name autocomplete.
func (h *Handlers) SearchEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.db.SearchEmployees(r.URL.Query().Get("q"), 10)
	if err != nil {
		h.serverError(w, "search employees", err)
		return
	}
	hints := make([]EmployeeHint, 0, len(employees))
	for _, e := range employees {
		hints = append(hints, EmployeeHint{ID: e.ID, Name: e.FullName()})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"data": hints}); err != nil {
		h.log.WithError(err).Warn("encode employee hints")
	}
}

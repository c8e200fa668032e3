package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"pagecheck/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// :memory: databases are per connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS tours (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			destination TEXT NOT NULL,
			days INTEGER NOT NULL,
			price INTEGER NOT NULL,
			reviews INTEGER NOT NULL DEFAULT 0,
			rating REAL NOT NULL DEFAULT 0,
			countries TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS substyles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS languages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tour_substyles (
			tour_id INTEGER NOT NULL REFERENCES tours(id) ON DELETE CASCADE,
			substyle_id INTEGER NOT NULL REFERENCES substyles(id),
			PRIMARY KEY (tour_id, substyle_id)
		)`,
		`CREATE TABLE IF NOT EXISTS tour_languages (
			tour_id INTEGER NOT NULL REFERENCES tours(id) ON DELETE CASCADE,
			language_id INTEGER NOT NULL REFERENCES languages(id),
			PRIMARY KEY (tour_id, language_id)
		)`,
		`CREATE TABLE IF NOT EXISTS employees (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			employee_id TEXT UNIQUE NOT NULL,
			first_name TEXT NOT NULL,
			middle_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'Admin',
			status TEXT NOT NULL DEFAULT 'Enabled',
			employee_id INTEGER REFERENCES employees(id) ON DELETE SET NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			expires_at DATETIME NOT NULL,
			last_activity DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// CreateTour inserts a tour together with its substyle and language tags.
func (db *DB) CreateTour(t *models.Tour) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO tours (title, destination, days, price, reviews, rating, countries)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.Destination, t.Days, t.Price, t.Reviews, t.Rating, t.Countries,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, name := range t.Substyles {
		optID, err := upsertOption(tx, "substyles", name)
		if err != nil {
			return 0, err
		}
		if _, err := tx.Exec("INSERT OR IGNORE INTO tour_substyles (tour_id, substyle_id) VALUES (?, ?)", id, optID); err != nil {
			return 0, err
		}
	}
	for _, name := range t.Languages {
		optID, err := upsertOption(tx, "languages", name)
		if err != nil {
			return 0, err
		}
		if _, err := tx.Exec("INSERT OR IGNORE INTO tour_languages (tour_id, language_id) VALUES (?, ?)", id, optID); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	t.ID = id
	return id, nil
}

// table is one of the two option tables and never user input.
func upsertOption(tx *sql.Tx, table, name string) (int64, error) {
	if _, err := tx.Exec("INSERT OR IGNORE INTO "+table+" (name) VALUES (?)", name); err != nil {
		return 0, err
	}
	var id int64
	err := tx.QueryRow("SELECT id FROM "+table+" WHERE name = ?", name).Scan(&id)
	return id, err
}

const tourColumns = `t.id, t.title, t.destination, t.days, t.price, t.reviews, t.rating, t.countries, t.created_at,
	(SELECT group_concat(s.name, '|') FROM tour_substyles ts JOIN substyles s ON s.id = ts.substyle_id WHERE ts.tour_id = t.id),
	(SELECT group_concat(l.name, '|') FROM tour_languages tl JOIN languages l ON l.id = tl.language_id WHERE tl.tour_id = t.id)`

type scanner interface {
	Scan(dest ...any) error
}

func scanTour(row scanner) (models.Tour, error) {
	var t models.Tour
	var substyles, languages sql.NullString
	if err := row.Scan(&t.ID, &t.Title, &t.Destination, &t.Days, &t.Price, &t.Reviews, &t.Rating,
		&t.Countries, &t.CreatedAt, &substyles, &languages); err != nil {
		return t, err
	}
	t.Substyles = splitTags(substyles.String)
	t.Languages = splitTags(languages.String)
	return t, nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	tags := strings.Split(s, "|")
	sort.Strings(tags)
	return tags
}

// GetTour retrieves a single tour by ID.
func (db *DB) GetTour(id int64) (*models.Tour, error) {
	row := db.conn.QueryRow("SELECT "+tourColumns+" FROM tours t WHERE t.id = ?", id)
	t, err := scanTour(row)
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func tourWhere(f models.TourFilter) (string, []any) {
	clauses := []string{"t.destination = ?"}
	args := []any{f.Destination}
	if len(f.SubstyleIDs) > 0 {
		clauses = append(clauses, "t.id IN (SELECT tour_id FROM tour_substyles WHERE substyle_id IN ("+placeholders(len(f.SubstyleIDs))+"))")
		for _, id := range f.SubstyleIDs {
			args = append(args, id)
		}
	}
	if len(f.LanguageIDs) > 0 {
		clauses = append(clauses, "t.id IN (SELECT tour_id FROM tour_languages WHERE language_id IN ("+placeholders(len(f.LanguageIDs))+"))")
		for _, id := range f.LanguageIDs {
			args = append(args, id)
		}
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// ListTours returns one page of tours matching f, ordered by ID, and the total
// number of matches.
func (db *DB) ListTours(f models.TourFilter) ([]models.Tour, int, error) {
	total, err := db.CountTours(f)
	if err != nil {
		return nil, 0, err
	}
	where, args := tourWhere(f)

	query := "SELECT " + tourColumns + " FROM tours t" + where + " ORDER BY t.id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tours []models.Tour
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, 0, err
		}
		tours = append(tours, t)
	}
	return tours, total, rows.Err()
}

// CountTours returns the number of tours matching f, ignoring its paging.
func (db *DB) CountTours(f models.TourFilter) (int, error) {
	where, args := tourWhere(f)
	var total int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM tours t"+where, args...).Scan(&total)
	return total, err
}

// TourCount returns the number of tours in the database.
func (db *DB) TourCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM tours").Scan(&count)
	return count, err
}

// ListSubstyles returns the adventure style options used by tours of a destination.
func (db *DB) ListSubstyles(destination string) ([]models.FilterOption, error) {
	return db.listOptions(`
		SELECT s.id, s.name, COUNT(*)
		FROM substyles s
		JOIN tour_substyles ts ON ts.substyle_id = s.id
		JOIN tours t ON t.id = ts.tour_id
		WHERE t.destination = ?
		GROUP BY s.id, s.name
		ORDER BY s.name`, destination)
}

// ListLanguages returns the guide language options used by tours of a destination.
func (db *DB) ListLanguages(destination string) ([]models.FilterOption, error) {
	return db.listOptions(`
		SELECT l.id, l.name, COUNT(*)
		FROM languages l
		JOIN tour_languages tl ON tl.language_id = l.id
		JOIN tours t ON t.id = tl.tour_id
		WHERE t.destination = ?
		GROUP BY l.id, l.name
		ORDER BY l.name`, destination)
}

func (db *DB) listOptions(query string, args ...any) ([]models.FilterOption, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opts []models.FilterOption
	for rows.Next() {
		var o models.FilterOption
		if err := rows.Scan(&o.ID, &o.Name, &o.Count); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

// CreateEmployee inserts a PIM record. The employee ID must be unique.
func (db *DB) CreateEmployee(e *models.Employee) (*models.Employee, error) {
	result, err := db.conn.Exec(
		"INSERT INTO employees (employee_id, first_name, middle_name, last_name) VALUES (?, ?, ?, ?)",
		e.EmployeeID, e.FirstName, e.MiddleName, e.LastName,
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return db.GetEmployee(id)
}

// GetEmployee retrieves an employee by row ID.
func (db *DB) GetEmployee(id int64) (*models.Employee, error) {
	row := db.conn.QueryRow(
		"SELECT id, employee_id, first_name, middle_name, last_name, created_at FROM employees WHERE id = ?",
		id,
	)
	var e models.Employee
	if err := row.Scan(&e.ID, &e.EmployeeID, &e.FirstName, &e.MiddleName, &e.LastName, &e.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

// ListEmployees returns employees newest first.
func (db *DB) ListEmployees() ([]models.Employee, error) {
	return db.queryEmployees(
		"SELECT id, employee_id, first_name, middle_name, last_name, created_at FROM employees ORDER BY id DESC",
	)
}

// SearchEmployees returns up to limit employees whose full name contains q.
func (db *DB) SearchEmployees(q string, limit int) ([]models.Employee, error) {
	return db.queryEmployees(`
		SELECT id, employee_id, first_name, middle_name, last_name, created_at
		FROM employees
		WHERE (first_name || ' ' || last_name) LIKE '%' || ? || '%'
		ORDER BY first_name, last_name
		LIMIT ?`, q, limit)
}

// FindEmployeeByName matches the "First Last" form used by the admin forms.
func (db *DB) FindEmployeeByName(name string) (*models.Employee, error) {
	row := db.conn.QueryRow(`
		SELECT id, employee_id, first_name, middle_name, last_name, created_at
		FROM employees
		WHERE (first_name || ' ' || last_name) = ?
		ORDER BY id LIMIT 1`, strings.TrimSpace(name))
	var e models.Employee
	if err := row.Scan(&e.ID, &e.EmployeeID, &e.FirstName, &e.MiddleName, &e.LastName, &e.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (db *DB) queryEmployees(query string, args ...any) ([]models.Employee, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.FirstName, &e.MiddleName, &e.LastName, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// DeleteEmployee removes an employee by row ID.
func (db *DB) DeleteEmployee(id int64) error {
	return db.deleteByID("employees", id)
}

func (db *DB) deleteByID(table string, id int64) error {
	res, err := db.conn.Exec("DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateUser creates a system user. Role and Status default to Admin and Enabled.
func (db *DB) CreateUser(u *models.User) (*models.User, error) {
	role, status := u.Role, u.Status
	if role == "" {
		role = models.RoleAdmin
	}
	if status == "" {
		status = models.StatusEnabled
	}
	result, err := db.conn.Exec(
		"INSERT INTO users (username, password_hash, role, status, employee_id) VALUES (?, ?, ?, ?, ?)",
		u.Username, u.PasswordHash, role, status, u.EmployeeID,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetUserByID(id)
}

const userColumns = `u.id, u.username, u.password_hash, u.role, u.status, u.employee_id,
	COALESCE(e.first_name || ' ' || e.last_name, ''), u.created_at`

const userFrom = ` FROM users u LEFT JOIN employees e ON e.id = u.employee_id`

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	var employeeID sql.NullInt64
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Status, &employeeID,
		&u.EmployeeName, &u.CreatedAt); err != nil {
		return nil, err
	}
	if employeeID.Valid {
		u.EmployeeID = &employeeID.Int64
	}
	return &u, nil
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(id int64) (*models.User, error) {
	u, err := scanUser(db.conn.QueryRow("SELECT "+userColumns+userFrom+" WHERE u.id = ?", id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// GetUserByUsername retrieves a user by username.
func (db *DB) GetUserByUsername(username string) (*models.User, error) {
	u, err := scanUser(db.conn.QueryRow("SELECT "+userColumns+userFrom+" WHERE u.username = ?", username))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// ListUsers returns system users ordered by username. A non-empty username
// narrows the result to an exact, case-insensitive match.
func (db *DB) ListUsers(username string) ([]models.User, error) {
	query := "SELECT " + userColumns + userFrom
	var args []any
	if username = strings.TrimSpace(username); username != "" {
		query += " WHERE u.username = ? COLLATE NOCASE"
		args = append(args, username)
	}
	query += " ORDER BY u.username COLLATE NOCASE"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// DeleteUser removes a system user and its sessions.
func (db *DB) DeleteUser(id int64) error {
	if _, err := db.conn.Exec("DELETE FROM sessions WHERE user_id = ?", id); err != nil {
		return err
	}
	return db.deleteByID("users", id)
}

// UserCount returns the number of users in the database.
func (db *DB) UserCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// CreateSession creates a new session for a user.
func (db *DB) CreateSession(token string, userID int64, expiresAt time.Time) error {
	now := time.Now().UTC()
	_, err := db.conn.Exec(
		"INSERT INTO sessions (token, user_id, expires_at, last_activity) VALUES (?, ?, ?, ?)",
		token, userID, expiresAt.UTC(), now,
	)
	return err
}

// SessionInfo holds session validation data.
type SessionInfo struct {
	User         *models.User
	LastActivity time.Time
	ExpiresAt    time.Time
}

// ValidateSession checks if a session token is valid and returns the associated user.
func (db *DB) ValidateSession(token string) (*models.User, error) {
	info, err := db.ValidateSessionWithInfo(token)
	if err != nil {
		return nil, err
	}
	return info.User, nil
}

// ValidateSessionWithInfo checks if a session token is valid and returns session details.
// Sessions of disabled users are rejected.
func (db *DB) ValidateSessionWithInfo(token string) (*SessionInfo, error) {
	row := db.conn.QueryRow(`
		SELECT u.id, u.username, u.role, u.status, s.last_activity, s.expires_at
		FROM sessions s
		JOIN users u ON s.user_id = u.id
		WHERE s.token = ? AND s.expires_at > ? AND u.status = ?
	`, token, time.Now().UTC(), models.StatusEnabled)

	var u models.User
	var lastActivity, expiresAt time.Time
	if err := row.Scan(&u.ID, &u.Username, &u.Role, &u.Status, &lastActivity, &expiresAt); err != nil {
		return nil, notFound(err)
	}
	return &SessionInfo{
		User:         &u,
		LastActivity: lastActivity,
		ExpiresAt:    expiresAt,
	}, nil
}

// RenewSession updates the last_activity and expires_at for a session.
func (db *DB) RenewSession(token string, newExpiresAt time.Time) error {
	now := time.Now().UTC()
	_, err := db.conn.Exec(
		"UPDATE sessions SET last_activity = ?, expires_at = ? WHERE token = ?",
		now, newExpiresAt.UTC(), token,
	)
	return err
}

// DeleteSession removes a session by token.
func (db *DB) DeleteSession(token string) error {
	_, err := db.conn.Exec("DELETE FROM sessions WHERE token = ?", token)
	return err
}

// CleanExpiredSessions removes all expired sessions.
func (db *DB) CleanExpiredSessions() error {
	_, err := db.conn.Exec("DELETE FROM sessions WHERE expires_at <= ?", time.Now().UTC())
	return err
}

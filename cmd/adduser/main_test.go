package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"pagecheck/internal/models"
	"pagecheck/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type streams struct {
	stdin, stdout, stderr *bytes.Buffer
}

func newStreams(input string) streams {
	return streams{bytes.NewBufferString(input), new(bytes.Buffer), new(bytes.Buffer)}
}

func (s streams) run(args ...string) error {
	return run(args, s.stdin, s.stdout, s.stderr)
}

func TestRun_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "success.db")
	s := newStreams("")

	require.NoError(t, s.run("-user", "hr.admin", "-password", "secret123", "-db", dbPath))
	assert.Contains(t, s.stdout.String(), "User hr.admin (Admin) created successfully")

	db, err := storage.NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()
	u, err := db.GetUserByUsername("hr.admin")
	require.NoError(t, err)
	assert.Equal(t, models.StatusEnabled, u.Status)
}

func TestRun_ESSLinkedToEmployee(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ess.db")

	db, err := storage.NewDB(dbPath)
	require.NoError(t, err)
	_, err = db.CreateEmployee(&models.Employee{EmployeeID: "0042", FirstName: "Rebecca", LastName: "Harmony"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s := newStreams("")
	err = s.run("-user", "rebecca", "-password", "secret123", "-role", "ESS", "-employee", "Rebecca Harmony", "-disabled", "-db", dbPath)
	require.NoError(t, err)

	db, err = storage.NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()
	u, err := db.GetUserByUsername("rebecca")
	require.NoError(t, err)
	assert.Equal(t, models.RoleESS, u.Role)
	assert.Equal(t, models.StatusDisabled, u.Status)
	assert.Equal(t, "Rebecca Harmony", u.EmployeeName)
}

func TestRun_UnknownEmployee(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "noemp.db")
	s := newStreams("")

	err := s.run("-user", "ghost", "-password", "secret123", "-employee", "Nobody Here", "-db", dbPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRun_InvalidRole(t *testing.T) {
	s := newStreams("")

	err := s.run("-user", "someone", "-password", "secret123", "-role", "Root")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role")
}

func TestRun_DuplicateUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "duplicate.db")
	s := newStreams("")
	args := []string{"-user", "testuser", "-password", "secret123", "-db", dbPath}

	require.NoError(t, s.run(args...), "first run should succeed")

	err := s.run(args...)
	require.Error(t, err, "expected error on duplicate user")
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_MissingUserFlag(t *testing.T) {
	s := newStreams("")

	err := s.run("-password", "secret123")
	require.Error(t, err, "expected error for missing user flag")
	assert.Contains(t, err.Error(), "missing required flags: user")
	assert.Contains(t, s.stdout.String(), "Usage:")
}

func TestRun_ShortPassword(t *testing.T) {
	s := newStreams("")

	err := s.run("-user", "shorty", "-password", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least")
}

func TestRun_InteractivePassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "interactive.db")
	s := newStreams("interactive_secret\n")

	require.NoError(t, s.run("-user", "interactive_user", "-db", dbPath))
	assert.Contains(t, s.stdout.String(), "Password: ")
	assert.Contains(t, s.stdout.String(), "User interactive_user (Admin) created successfully")
}

func TestRun_InteractivePassword_Empty(t *testing.T) {
	s := newStreams("\n")

	err := s.run("-user", "empty_pass_user")
	require.Error(t, err, "expected error for empty password")
	assert.Contains(t, err.Error(), "password cannot be empty")
}

func TestRun_EnvVarOverride(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("DB_PATH", dbPath)
	s := newStreams("")

	require.NoError(t, s.run("-user", "envuser", "-password", "secret123"))
	assert.FileExists(t, dbPath)
}

func TestRun_InvalidDBPath(t *testing.T) {
	s := newStreams("")

	err := s.run("-user", "failuser", "-password", "secret123", "-db", t.TempDir())
	require.Error(t, err, "expected error for invalid db path")
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestRun_InvalidFlag(t *testing.T) {
	s := newStreams("")

	err := s.run("-invalid")
	require.Error(t, err, "expected error for invalid flag")
	assert.Contains(t, err.Error(), "flag provided but not defined")
}

package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"pagecheck/internal/handlers"
	"pagecheck/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSetupRouter(t *testing.T) {
	if _, err := os.Stat("../../web/templates"); os.IsNotExist(err) {
		t.Skip("Template directory not found, skipping router test")
	}

	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create database")
	defer db.Close()
	catalog, err := storage.DefaultCatalog()
	require.NoError(t, err)
	_, err = db.Seed(catalog)
	require.NoError(t, err)

	h := handlers.NewHandlers(db, handlers.Options{TemplateDir: "../../web/templates"}, quietLogger())

	// Registering conflicting patterns panics here
	mux := setupRouter(h, "../../web/static")

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantHeader string
	}{
		{"home page", "GET", "/", http.StatusOK, ""},
		{"static file", "GET", "/static/travel.css", http.StatusOK, ""},
		{"destination listing", "GET", "/d/europe", http.StatusOK, ""},
		{"filter results", "GET", "/d/europe/results?substyles=1", http.StatusOK, ""},
		{"unknown destination", "GET", "/d/atlantis", http.StatusNotFound, ""},
		{"tour page", "GET", "/t/1", http.StatusOK, ""},
		{"missing tour", "GET", "/t/9999", http.StatusNotFound, ""},
		{"login page", "GET", "/hr/auth/login", http.StatusOK, ""},
		{"hr root redirects to dashboard", "GET", "/hr/", http.StatusFound, "/hr/dashboard/index"},
		{"system users requires auth", "GET", "/hr/admin/viewSystemUsers", http.StatusFound, "/hr/auth/login"},
		{"employee list requires auth", "GET", "/hr/pim/viewEmployeeList", http.StatusFound, "/hr/auth/login"},
		{"delete requires auth", "POST", "/hr/pim/employees/1/delete", http.StatusFound, "/hr/auth/login"},
		{"delete is POST only", "GET", "/hr/pim/employees/1/delete", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, "%s %s returned unexpected status", tt.method, tt.path)
			if tt.wantHeader != "" {
				assert.Equal(t, tt.wantHeader, w.Header().Get("Location"))
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger("debug", "json")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	_, err = newLogger("loud", "text")
	assert.Error(t, err)

	_, err = newLogger("info", "xml")
	assert.Error(t, err)
}

func TestEnsureAdmin(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, ensureAdmin(db, "Admin", "admin123", quietLogger()))
	require.NoError(t, ensureAdmin(db, "Admin", "other-password", quietLogger()), "existing admin is kept")

	n, err := db.UserCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, ensureAdmin(db, "", "", quietLogger()))
}

// Package config loads runtime settings for the demo site and the UI suite
// from the environment, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server holds settings for cmd/demosite.
type Server struct {
	Port          string
	DBPath        string
	TemplateDir   string
	StaticDir     string
	AdminUser     string
	AdminPassword string
	// RefreshDelay is added to every partial refresh so the pending state is observable.
	RefreshDelay time.Duration
	SecureCookie bool
	LogLevel     string
	LogFormat    string
}

// Timeouts bound every wait issued by the page objects.
type Timeouts struct {
	Default    time.Duration
	Refresh    time.Duration
	Navigation time.Duration
}

// Suite holds settings for the e2e suite.
type Suite struct {
	TravelBaseURL string
	HRBaseURL     string
	HRUser        string
	HRPassword    string
	Headless      bool
	Timeouts      Timeouts
	SubmitSettle  time.Duration
	LogLevel      string
}

// LoadDotEnv reads the given files (".env" when none) into the process
// environment. Missing files are not an error; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// LoadServer reads demo site settings from the environment.
func LoadServer() (Server, error) {
	s := Server{
		Port:          getenv("PORT", "8080"),
		DBPath:        getenv("DB_PATH", "demosite.db"),
		TemplateDir:   getenv("TEMPLATE_DIR", "web/templates"),
		StaticDir:     getenv("STATIC_DIR", "web/static"),
		AdminUser:     os.Getenv("ADMIN_USER"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogFormat:     getenv("LOG_FORMAT", "text"),
	}

	var err error
	if s.RefreshDelay, err = durationEnv("REFRESH_DELAY", 400*time.Millisecond); err != nil {
		return Server{}, err
	}
	if s.SecureCookie, err = boolEnv("SECURE_COOKIE", false); err != nil {
		return Server{}, err
	}
	return s, nil
}

// LoadSuite reads UI suite settings from the environment. HR_BASE_URL is the
// prefix the HR app routes hang off (/auth/login, /admin/...); it defaults to
// TRAVEL_BASE_URL + "/hr", where the demo site mounts it.
func LoadSuite() (Suite, error) {
	s := Suite{
		TravelBaseURL: os.Getenv("TRAVEL_BASE_URL"),
		HRUser:        getenv("HR_USER", "Admin"),
		HRPassword:    getenv("HR_PASSWORD", "admin123"),
		LogLevel:      getenv("UI_LOG_LEVEL", "warn"),
	}
	s.HRBaseURL = os.Getenv("HR_BASE_URL")
	if s.HRBaseURL == "" && s.TravelBaseURL != "" {
		s.HRBaseURL = strings.TrimSuffix(s.TravelBaseURL, "/") + "/hr"
	}

	var err error
	if s.Headless, err = boolEnv("HEADLESS", true); err != nil {
		return Suite{}, err
	}
	if s.Timeouts.Default, err = durationEnv("UI_TIMEOUT", 5*time.Second); err != nil {
		return Suite{}, err
	}
	if s.Timeouts.Refresh, err = durationEnv("UI_REFRESH_TIMEOUT", 10*time.Second); err != nil {
		return Suite{}, err
	}
	if s.Timeouts.Navigation, err = durationEnv("UI_NAVIGATION_TIMEOUT", 15*time.Second); err != nil {
		return Suite{}, err
	}
	if s.SubmitSettle, err = durationEnv("UI_SUBMIT_SETTLE", 800*time.Millisecond); err != nil {
		return Suite{}, err
	}
	return s, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: negative duration", key, v)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

// Command demosite serves the tour catalog and the HR admin app the UI suite
// runs against.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pagecheck/internal/auth"
	"pagecheck/internal/config"
	"pagecheck/internal/handlers"
	"pagecheck/internal/models"
	"pagecheck/internal/storage"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("demosite stopped")
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	catalog, err := storage.DefaultCatalog()
	if err != nil {
		return err
	}
	seeded, err := db.Seed(catalog)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	if seeded {
		log.WithField("tours", len(catalog.Tours)).Info("database seeded")
	}

	if err := ensureAdmin(db, cfg.AdminUser, cfg.AdminPassword, log); err != nil {
		return err
	}

	h := handlers.NewHandlers(db, handlers.Options{
		TemplateDir:  cfg.TemplateDir,
		SecureCookie: cfg.SecureCookie,
		RefreshDelay: cfg.RefreshDelay,
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.LogRequests(setupRouter(h, cfg.StaticDir)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go cleanSessions(ctx, db, log)

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("demosite listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func setupRouter(h *handlers.Handlers, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	// Tour site
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /d/{dest}", h.Destination)
	mux.HandleFunc("GET /d/{dest}/results", h.DestinationResults)
	mux.HandleFunc("GET /t/{id}", h.Tour)

	// HR app
	mux.HandleFunc("GET /hr/auth/login", h.LoginForm)
	mux.HandleFunc("POST /hr/auth/login", h.Login)
	mux.HandleFunc("GET /hr/auth/logout", h.Logout)
	mux.Handle("GET /hr/{$}", http.RedirectHandler("/hr/dashboard/index", http.StatusFound))

	signedIn := func(f http.HandlerFunc) http.Handler { return h.AuthMiddleware(f) }
	admin := func(f http.HandlerFunc) http.Handler { return h.AuthMiddleware(h.RequireAdmin(f)) }

	mux.Handle("GET /hr/dashboard/index", signedIn(h.Dashboard))

	mux.Handle("GET /hr/admin/viewAdminModule", admin(h.AdminModule))
	mux.Handle("GET /hr/admin/viewSystemUsers", admin(h.SystemUsers))
	mux.Handle("GET /hr/admin/users", admin(h.UsersFragment))
	mux.Handle("GET /hr/admin/saveSystemUser", admin(h.AddUserForm))
	mux.Handle("POST /hr/admin/saveSystemUser", admin(h.SaveUser))
	mux.Handle("POST /hr/admin/users/{id}/delete", admin(h.DeleteUser))

	mux.Handle("GET /hr/pim/viewPimModule", admin(h.PIMModule))
	mux.Handle("GET /hr/pim/viewEmployeeList", admin(h.EmployeeList))
	mux.Handle("GET /hr/pim/employees", admin(h.EmployeesFragment))
	mux.Handle("GET /hr/pim/addEmployee", admin(h.AddEmployeeForm))
	mux.Handle("POST /hr/pim/addEmployee", admin(h.SaveEmployee))
	mux.Handle("POST /hr/pim/employees/{id}/delete", admin(h.DeleteEmployee))

	mux.Handle("GET /hr/api/employees", admin(h.SearchEmployees))

	return mux
}

func newLogger(level, format string) (*logrus.Logger, error) {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	log.SetLevel(lvl)
	switch format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", format)
	}
	return log, nil
}

// ensureAdmin creates the configured Admin account unless it already exists.
func ensureAdmin(db *storage.DB, username, password string, log logrus.FieldLogger) error {
	if username == "" || password == "" {
		return nil
	}
	if _, err := db.GetUserByUsername(username); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := db.CreateUser(&models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Status:       models.StatusEnabled,
	}); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.WithField("user", username).Info("admin user created")
	return nil
}

func cleanSessions(ctx context.Context, db *storage.DB, log logrus.FieldLogger) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := db.CleanExpiredSessions(); err != nil {
				log.WithError(err).Warn("clean expired sessions")
			}
		}
	}
}

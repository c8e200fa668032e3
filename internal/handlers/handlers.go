// Package handlers serves demosite: a tour catalog and an HR admin app
// rendered with the markup the page objects are written against.
package handlers

import (
	"context"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"pagecheck/internal/auth"
	"pagecheck/internal/models"
	"pagecheck/internal/storage"

	"github.com/sirupsen/logrus"
)

// Context key type to avoid collisions.
type contextKey string

const (
	// UserContextKey is the context key for the authenticated user.
	UserContextKey contextKey = "user"
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "session"
	// SessionDuration is how long sessions last (30 days).
	SessionDuration = 30 * 24 * time.Hour

	loginPath     = "/hr/auth/login"
	dashboardPath = "/hr/dashboard/index"
)

// Options tune how pages are served.
type Options struct {
	TemplateDir  string
	SecureCookie bool
	// RefreshDelay holds back every partial refresh so loading states can be observed.
	RefreshDelay time.Duration
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db   *storage.DB
	opts Options
	log  logrus.FieldLogger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *storage.DB, opts Options, log logrus.FieldLogger) *Handlers {
	return &Handlers{db: db, opts: opts, log: log}
}

// GetUserFromContext retrieves the authenticated user from request context.
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserContextKey).(*models.User); ok {
		return user
	}
	return nil
}

// LogRequests logs every request at debug level.
func (h *Handlers) LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"partial":  isPartial(r),
			"duration": time.Since(start),
		}).Debug("request")
	})
}

// AuthMiddleware wraps handlers to require authentication.
// It also implements rolling sessions: if a session is past the halfway point
// of its lifetime, it automatically renews the session.
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, loginPath, http.StatusFound)
			return
		}

		sessionInfo, err := h.db.ValidateSessionWithInfo(cookie.Value)
		if err != nil {
			// Invalid, expired or disabled: clear the cookie
			h.clearSessionCookie(w)
			http.Redirect(w, r, loginPath, http.StatusFound)
			return
		}

		now := time.Now()
		if sessionInfo.ExpiresAt.Sub(now) < SessionDuration/2 {
			if err := h.db.RenewSession(cookie.Value, now.Add(SessionDuration)); err == nil {
				h.setSessionCookie(w, cookie.Value)
			} else {
				h.log.WithError(err).Warn("renew session")
			}
		}

		ctx := context.WithValue(r.Context(), UserContextKey, sessionInfo.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin lets only Admin role users through. It must run inside AuthMiddleware.
func (h *Handlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := GetUserFromContext(r); user == nil || user.Role != models.RoleAdmin {
			http.Error(w, "Credential Required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginViewModel holds data for the login page.
type LoginViewModel struct {
	Username string
	Error    string
}

// LoginForm renders the login page.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if _, err := h.db.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, dashboardPath, http.StatusFound)
			return
		}
	}
	h.renderHR(w, r, "login.html", "", LoginViewModel{})
}

// Login handles the login form submission.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderHR(w, r, "login.html", "", LoginViewModel{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.renderHR(w, r, "login.html", "", LoginViewModel{Username: username, Error: "Required"})
		return
	}

	user, err := h.db.GetUserByUsername(username)
	if err != nil || user.Status != models.StatusEnabled || !auth.CheckPassword(password, user.PasswordHash) {
		h.renderHR(w, r, "login.html", "", LoginViewModel{Username: username, Error: "Invalid credentials"})
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		h.log.WithError(err).Error("generate session token")
		h.renderHR(w, r, "login.html", "", LoginViewModel{Error: "An error occurred. Please try again."})
		return
	}

	if err := h.db.CreateSession(token, user.ID, time.Now().Add(SessionDuration)); err != nil {
		h.log.WithError(err).WithField("user", user.Username).Error("create session")
		h.renderHR(w, r, "login.html", "", LoginViewModel{Error: "An error occurred. Please try again."})
		return
	}

	h.setSessionCookie(w, token)
	h.log.WithField("user", user.Username).Info("user logged in")
	http.Redirect(w, r, dashboardPath, http.StatusFound)
}

// Logout handles user logout.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.db.DeleteSession(cookie.Value); err != nil {
			h.log.WithError(err).Warn("delete session")
		}
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, loginPath, http.StatusFound)
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// isPartial reports whether the page script asked for the content block only.
func isPartial(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// hold delays a partial refresh by RefreshDelay. It reports false when the
// client went away meanwhile.
func (h *Handlers) hold(r *http.Request) bool {
	if h.opts.RefreshDelay <= 0 {
		return true
	}
	t := time.NewTimer(h.opts.RefreshDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-r.Context().Done():
		return false
	}
}

var funcs = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
}

// render executes layout/base.html with layout/view. Partial requests get the
// view's "content" block only.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, layout, view string, data any) {
	block := "base.html"
	if isPartial(r) {
		block = "content"
	}
	h.execute(w, layout, view, block, data)
}

func (h *Handlers) execute(w http.ResponseWriter, layout, view, block string, data any) {
	dir := filepath.Join(h.opts.TemplateDir, layout)
	tmpl, err := template.New("base.html").Funcs(funcs).ParseFiles(
		filepath.Join(dir, "base.html"),
		filepath.Join(dir, view),
	)
	if err != nil {
		h.log.WithError(err).WithField("view", layout+"/"+view).Error("parse template")
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, block, data); err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{"view": layout + "/" + view, "block": block}).Error("execute template")
	}
}

// HRPage is what every HR template receives.
type HRPage struct {
	User   *models.User
	Module string
	Data   any
}

func (h *Handlers) renderHR(w http.ResponseWriter, r *http.Request, view, module string, data any) {
	h.render(w, r, "hr", view, HRPage{User: GetUserFromContext(r), Module: module, Data: data})
}

// renderHRBlock executes a single named block of an HR view.
func (h *Handlers) renderHRBlock(w http.ResponseWriter, r *http.Request, view, block string, data any) {
	h.execute(w, "hr", view, block, HRPage{User: GetUserFromContext(r), Data: data})
}

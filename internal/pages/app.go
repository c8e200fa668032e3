// Package pages wires every page object of both applications around one
// browser page.
package pages

import (
	"strings"

	"pagecheck/internal/config"
	"pagecheck/internal/pages/hr"
	"pagecheck/internal/pages/travel"
	"pagecheck/internal/ui"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// App holds one instance of every page object, built for a single test.
type App struct {
	d   *ui.Driver
	cfg config.Suite

	Home         *travel.HomePage
	Destinations *travel.DestinationsPage
	Login        *hr.LoginPage
	SideMenu     *hr.SideMenu
	Admin        *hr.AdminPage
	PIM          *hr.PIMPage
}

// New builds the page objects over page. Nothing is navigated yet.
func New(page playwright.Page, cfg config.Suite, log logrus.FieldLogger) *App {
	d := ui.NewDriver(page, cfg.Timeouts, log)
	return &App{
		d:            d,
		cfg:          cfg,
		Home:         travel.NewHomePage(d),
		Destinations: travel.NewDestinationsPage(d),
		Login:        hr.NewLoginPage(d),
		SideMenu:     hr.NewSideMenu(d),
		Admin:        hr.NewAdminPage(d, cfg.SubmitSettle),
		PIM:          hr.NewPIMPage(d),
	}
}

// Driver returns the driver the page objects share.
func (a *App) Driver() *ui.Driver { return a.d }

// GotoTravel opens the tour site home page.
func (a *App) GotoTravel() error {
	return a.d.Goto(strings.TrimSuffix(a.cfg.TravelBaseURL, "/") + "/")
}

// GotoHR opens the HR app sign-in page.
func (a *App) GotoHR() error {
	return a.d.Goto(strings.TrimSuffix(a.cfg.HRBaseURL, "/") + "/auth/login")
}

// LoginHR opens the HR app and signs in with the configured account.
func (a *App) LoginHR() error {
	if err := a.GotoHR(); err != nil {
		return err
	}
	return a.Login.Login(a.cfg.HRUser, a.cfg.HRPassword)
}

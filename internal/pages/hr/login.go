package hr

import (
	"regexp"

	"pagecheck/internal/ui"

	"github.com/playwright-community/playwright-go"
)

var dashboardURL = regexp.MustCompile(`.*/dashboard/index`)

// LoginPage abstracts the sign-in form of the HR app.
type LoginPage struct {
	d        *ui.Driver
	username playwright.Locator
	password playwright.Locator
	submit   playwright.Locator
	errorMsg playwright.Locator
}

// NewLoginPage maps the sign-in form. It does not touch the browser.
func NewLoginPage(d *ui.Driver) *LoginPage {
	return &LoginPage{
		d:        d,
		username: d.Locator(selLoginUsername),
		password: d.Locator(selLoginPassword),
		submit:   d.Locator(selLoginSubmit),
		errorMsg: d.Locator(selLoginError),
	}
}

// Login signs in and waits for the dashboard.
func (p *LoginPage) Login(username, password string) error {
	if err := p.Submit(username, password); err != nil {
		return err
	}
	return p.d.ExpectURL(dashboardURL)
}

// Submit fills and sends the form without checking where it lands.
func (p *LoginPage) Submit(username, password string) error {
	if err := p.d.Fill("username input", p.username, username); err != nil {
		return err
	}
	if err := p.d.Fill("password input", p.password, password); err != nil {
		return err
	}
	return p.d.Click("login button", p.submit)
}

// AssertThat returns the checks on the login page.
func (p *LoginPage) AssertThat() *LoginPageAssertions {
	return &LoginPageAssertions{page: p}
}

// LoginPageAssertions groups the checks on a LoginPage.
type LoginPageAssertions struct {
	page *LoginPage
}

// ErrorShown checks the alert above the form reads msg.
func (a *LoginPageAssertions) ErrorShown(msg string) error {
	return a.page.d.ExpectText("login error", a.page.errorMsg, msg)
}

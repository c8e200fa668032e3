package hr

import (
	"pagecheck/internal/ui"

	"github.com/playwright-community/playwright-go"
)

// SystemUsersFilter abstracts the filter card above the system users table.
type SystemUsersFilter struct {
	d             *ui.Driver
	usernameInput playwright.Locator
	searchBtn     playwright.Locator
	resetBtn      playwright.Locator
	loader        playwright.Locator
}

// NewSystemUsersFilter maps the System Users filter form.
func NewSystemUsersFilter(d *ui.Driver) *SystemUsersFilter {
	return &SystemUsersFilter{
		d:             d,
		usernameInput: d.Locator(selFilterUsername),
		searchBtn:     d.Locator(selFilterSearch),
		resetBtn:      d.Locator(selFilterReset),
		loader:        d.Locator(selLoader),
	}
}

// FilterByUsername searches the table for username and waits for the reload.
func (f *SystemUsersFilter) FilterByUsername(username string) error {
	if err := f.d.Fill("username filter input", f.usernameInput, username); err != nil {
		return err
	}
	if err := f.d.ExpectValue("username filter input", f.usernameInput, username); err != nil {
		return err
	}
	if err := f.d.Click("search button", f.searchBtn); err != nil {
		return err
	}
	return f.awaitReload()
}

// Reset clears the filter and waits for the full table.
func (f *SystemUsersFilter) Reset() error {
	if err := f.d.Click("reset button", f.resetBtn); err != nil {
		return err
	}
	if err := f.awaitReload(); err != nil {
		return err
	}
	return f.d.ExpectValue("username filter input", f.usernameInput, "")
}

func (f *SystemUsersFilter) awaitReload() error {
	if err := f.d.ExpectVisible("loading spinner", f.loader); err != nil {
		return err
	}
	return f.d.WithTimeout(f.d.Timeouts().Refresh).ExpectHidden("loading spinner", f.loader)
}

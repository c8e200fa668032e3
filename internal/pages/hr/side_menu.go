package hr

import (
	"fmt"
	"regexp"

	"pagecheck/internal/ui"

	"github.com/playwright-community/playwright-go"
)

var (
	systemUsersURL  = regexp.MustCompile(`.*admin/viewSystemUsers.*`)
	employeeListURL = regexp.MustCompile(`.*/pim/viewEmployeeList`)
	activeClass     = ui.ClassRegexp("active")
)

// SideMenu abstracts the left side panel shown once signed in. Only a few of
// the menu entries are mapped.
type SideMenu struct {
	d           *ui.Driver
	logoLink    playwright.Locator
	searchInput playwright.Locator
	linkList    playwright.Locator
	adminLink   playwright.Locator
	pimLink     playwright.Locator
}

// NewSideMenu maps the side panel. It does not touch the browser.
func NewSideMenu(d *ui.Driver) *SideMenu {
	return &SideMenu{
		d:           d,
		logoLink:    d.Locator(selMenuLogo),
		searchInput: d.Locator(selMenuSearch),
		linkList:    d.Locator(selMenuItems),
		adminLink:   d.Locator(selMenuAdmin),
		pimLink:     d.Locator(selMenuPIM),
	}
}

// OpenAdminPage follows the Admin link and waits for the system users list.
func (m *SideMenu) OpenAdminPage() error {
	return m.open("admin link", m.adminLink, systemUsersURL)
}

// OpenPIMPage follows the PIM link and waits for the employee list.
func (m *SideMenu) OpenPIMPage() error {
	return m.open("pim link", m.pimLink, employeeListURL)
}

func (m *SideMenu) open(name string, link playwright.Locator, url *regexp.Regexp) error {
	if err := m.d.Click(name, link); err != nil {
		return err
	}
	if err := m.d.ExpectURL(url); err != nil {
		return err
	}
	return m.d.ExpectClass(name, link, activeClass)
}

// FilterBySearchInput types into the menu search and waits until a single
// entry is left.
func (m *SideMenu) FilterBySearchInput(text string) error {
	if err := m.d.Fill("menu search input", m.searchInput, text); err != nil {
		return err
	}
	return m.d.ExpectCount("menu items", m.linkList, 1)
}

// AssertThat returns the checks on the side menu.
func (m *SideMenu) AssertThat() *SideMenuAssertions {
	return &SideMenuAssertions{menu: m}
}

// SideMenuAssertions groups the checks on a SideMenu.
type SideMenuAssertions struct {
	menu *SideMenu
}

// AllMenuItemsVisible checks the mapped entries are shown.
func (a *SideMenuAssertions) AllMenuItemsVisible() error {
	m := a.menu
	items := []struct {
		name string
		loc  playwright.Locator
	}{
		{"logo link", m.logoLink},
		{"menu search input", m.searchInput},
		{"admin link", m.adminLink},
		{"pim link", m.pimLink},
	}
	for _, it := range items {
		if err := m.d.ExpectVisible(it.name, it.loc); err != nil {
			return err
		}
	}
	return nil
}

// OnlyItemVisible checks the menu lists exactly one entry and that it reads text.
func (a *SideMenuAssertions) OnlyItemVisible(text string) error {
	m := a.menu
	if err := m.d.ExpectCount("menu items", m.linkList, 1); err != nil {
		return err
	}
	return m.d.ExpectText(fmt.Sprintf("menu item %q", text), m.linkList, text)
}

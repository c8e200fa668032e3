package hr

import (
	"time"

	"pagecheck/internal/ui"

	"github.com/playwright-community/playwright-go"
)

// AdminPage is the Admin > User Management > Users screen.
type AdminPage struct {
	d       *ui.Driver
	module  playwright.Locator
	Menu    *SideMenu
	Filter  *SystemUsersFilter
	Table   *RecordsTable[*AdminRow]
	AddUser *AddUserForm
}

// NewAdminPage maps the Admin screen; settle is passed to the Add User form.
func NewAdminPage(d *ui.Driver, settle time.Duration) *AdminPage {
	return &AdminPage{
		d:       d,
		module:  d.Locator(selTopbarModule),
		Menu:    NewSideMenu(d),
		Filter:  NewSystemUsersFilter(d),
		Table:   newRecordsTable(d, newAdminRow),
		AddUser: NewAddUserForm(d, settle),
	}
}

// AddNewUser opens the form from the table and saves u.
func (p *AdminPage) AddNewUser(u UserData) error {
	if err := p.Table.ClickAdd(); err != nil {
		return err
	}
	return p.AddUser.AddNewUser(u)
}

// IsOpen checks the top bar names the Admin module.
func (p *AdminPage) IsOpen() error {
	return p.d.ExpectText("top bar module", p.module, "Admin")
}

// PIMPage is the PIM > Employee List screen.
type PIMPage struct {
	d           *ui.Driver
	module      playwright.Locator
	Menu        *SideMenu
	Table       *RecordsTable[*EmployeeRow]
	AddEmployee *AddEmployeeForm
}

// NewPIMPage maps the PIM screen.
func NewPIMPage(d *ui.Driver) *PIMPage {
	return &PIMPage{
		d:           d,
		module:      d.Locator(selTopbarModule),
		Menu:        NewSideMenu(d),
		Table:       newRecordsTable(d, newEmployeeRow),
		AddEmployee: NewAddEmployeeForm(d),
	}
}

// AddNewEmployee opens the form from the table, saves e and returns the
// employee id used.
func (p *PIMPage) AddNewEmployee(e EmployeeData) (string, error) {
	if err := p.Table.ClickAdd(); err != nil {
		return "", err
	}
	return p.AddEmployee.AddNewEmployee(e)
}

// IsOpen checks the top bar names the PIM module.
func (p *PIMPage) IsOpen() error {
	return p.d.ExpectText("top bar module", p.module, "PIM")
}

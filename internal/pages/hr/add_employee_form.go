package hr

import (
	"strconv"
	"strings"
	"time"

	"pagecheck/internal/ui"

	"github.com/playwright-community/playwright-go"
)

// EmployeeData is the input of the Add Employee form. An empty EmployeeID is
// derived from the clock.
type EmployeeData struct {
	FirstName  string `yaml:"first_name"`
	MiddleName string `yaml:"middle_name"`
	LastName   string `yaml:"last_name"`
	EmployeeID string `yaml:"employee_id"`
}

// DefaultEmployeeID derives an id from the Unix millisecond timestamp: nine
// digits after the first one, read as a number.
func DefaultEmployeeID(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	digits := ms[1:min(10, len(ms))]
	if id := strings.TrimLeft(digits, "0"); id != "" {
		return id
	}
	return "0"
}

// AddEmployeeForm abstracts the Add Employee form of the PIM module.
type AddEmployeeForm struct {
	d          *ui.Driver
	now        func() time.Time
	firstName  playwright.Locator
	middleName playwright.Locator
	lastName   playwright.Locator
	employeeID playwright.Locator
	saveBtn    playwright.Locator
}

// NewAddEmployeeForm maps the form. Generated ids use the wall clock.
func NewAddEmployeeForm(d *ui.Driver) *AddEmployeeForm {
	return &AddEmployeeForm{
		d:          d,
		now:        time.Now,
		firstName:  d.Locator(selFirstName),
		middleName: d.Locator(selMiddleName),
		lastName:   d.Locator(selLastName),
		employeeID: d.Locator(selEmployeeID),
		saveBtn:    d.Locator(selSave),
	}
}

func (f *AddEmployeeForm) fill(name string, loc playwright.Locator, value string) error {
	if err := f.d.Fill(name, loc, value); err != nil {
		return err
	}
	return f.d.ExpectValue(name, loc, value)
}

// FillFirstName types the first name.
func (f *AddEmployeeForm) FillFirstName(name string) error {
	return f.fill("first name input", f.firstName, name)
}

// FillMiddleName types the middle name.
func (f *AddEmployeeForm) FillMiddleName(name string) error {
	return f.fill("middle name input", f.middleName, name)
}

// FillLastName types the last name.
func (f *AddEmployeeForm) FillLastName(name string) error {
	return f.fill("last name input", f.lastName, name)
}

// FillEmployeeID replaces the suggested employee id.
func (f *AddEmployeeForm) FillEmployeeID(id string) error {
	return f.fill("employee id input", f.employeeID, id)
}

// Save submits the form and waits for it to go away.
func (f *AddEmployeeForm) Save() error {
	if err := f.d.Click("save button", f.saveBtn); err != nil {
		return err
	}
	return f.d.ExpectHidden("first name input", f.firstName)
}

// AddNewEmployee fills the form and saves it. It returns the employee id
// used, which is generated when e.EmployeeID is empty.
func (f *AddEmployeeForm) AddNewEmployee(e EmployeeData) (string, error) {
	if e.EmployeeID == "" {
		e.EmployeeID = DefaultEmployeeID(f.now())
	}
	if err := f.FillFirstName(e.FirstName); err != nil {
		return "", err
	}
	if err := f.FillMiddleName(e.MiddleName); err != nil {
		return "", err
	}
	if err := f.FillLastName(e.LastName); err != nil {
		return "", err
	}
	if err := f.FillEmployeeID(e.EmployeeID); err != nil {
		return "", err
	}
	return e.EmployeeID, f.Save()
}

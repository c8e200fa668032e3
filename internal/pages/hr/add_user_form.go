package hr

import (
	"time"

	"pagecheck/internal/ui"

	"github.com/playwright-community/playwright-go"
)

// UserData is the input of the Add User form.
type UserData struct {
	Role            string `yaml:"role"`
	EmployeeName    string `yaml:"employee_name"`
	Status          string `yaml:"status"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	ConfirmPassword string `yaml:"confirm_password"`
}

// AddUserForm abstracts the Add User form of the Admin module.
type AddUserForm struct {
	d                    *ui.Driver
	settle               time.Duration
	userRoleDdown        playwright.Locator
	employeeNameInput    playwright.Locator
	statusDdown          playwright.Locator
	usernameInput        playwright.Locator
	passwordInput        playwright.Locator
	confirmPasswordInput playwright.Locator
	popupListOption      playwright.Locator
	requiredErrorMsg     playwright.Locator
	saveBtn              playwright.Locator
}

// NewAddUserForm maps the form. settle is the pause taken before saving in
// AddNewUser; zero skips it.
func NewAddUserForm(d *ui.Driver, settle time.Duration) *AddUserForm {
	return &AddUserForm{
		d:                    d,
		settle:               settle,
		userRoleDdown:        d.Locator(selUserRole),
		employeeNameInput:    d.Locator(selEmployeeNameInput),
		statusDdown:          d.Locator(selUserStatus),
		usernameInput:        d.Locator(selUsername),
		passwordInput:        d.Locator(selPassword),
		confirmPasswordInput: d.Locator(selConfirmPassword),
		popupListOption:      d.Locator(selListboxOption),
		requiredErrorMsg:     d.Locator(selRequiredError),
		saveBtn:              d.Locator(selSave),
	}
}

func (f *AddUserForm) option(text string) playwright.Locator {
	return f.popupListOption.GetByText(text)
}

// SelectUserRole picks role from the User Role dropdown.
func (f *AddUserForm) SelectUserRole(role string) error {
	if err := f.d.Click("user role dropdown", f.userRoleDdown); err != nil {
		return err
	}
	if err := f.d.Click("user role option "+role, f.option(role)); err != nil {
		return err
	}
	return f.d.ExpectText("user role dropdown", f.userRoleDdown, role)
}

// SelectEmployeeName types name into the autocomplete and picks the suggestion.
func (f *AddUserForm) SelectEmployeeName(name string) error {
	if err := f.d.Fill("employee name input", f.employeeNameInput, name); err != nil {
		return err
	}
	if err := f.d.Click("employee suggestion "+name, f.option(name)); err != nil {
		return err
	}
	return f.d.ExpectValue("employee name input", f.employeeNameInput, name)
}

// SelectStatus picks status from the Status dropdown.
func (f *AddUserForm) SelectStatus(status string) error {
	if err := f.d.Click("status dropdown", f.statusDdown); err != nil {
		return err
	}
	if err := f.d.Click("status option "+status, f.option(status)); err != nil {
		return err
	}
	return f.d.ExpectText("status dropdown", f.statusDdown, status)
}

// FillUsername types the username.
func (f *AddUserForm) FillUsername(username string) error {
	if err := f.d.Fill("username input", f.usernameInput, username); err != nil {
		return err
	}
	return f.d.ExpectValue("username input", f.usernameInput, username)
}

// FillPassword types the password and checks it was taken.
func (f *AddUserForm) FillPassword(password string) error {
	if err := f.d.Fill("password input", f.passwordInput, password); err != nil {
		return err
	}
	return f.d.ExpectNotEmpty("password input", f.passwordInput)
}

// FillConfirmPassword types the password confirmation.
func (f *AddUserForm) FillConfirmPassword(password string) error {
	if err := f.d.Fill("confirm password input", f.confirmPasswordInput, password); err != nil {
		return err
	}
	return f.d.ExpectNotEmpty("confirm password input", f.confirmPasswordInput)
}

// Save submits the form and waits to be back on the system users list.
func (f *AddUserForm) Save() error {
	if err := f.d.Click("save button", f.saveBtn); err != nil {
		return err
	}
	return f.d.ExpectURL(systemUsersURL)
}

// AddNewUser fills every field and saves.
func (f *AddUserForm) AddNewUser(u UserData) error {
	steps := []func() error{
		func() error { return f.SelectUserRole(u.Role) },
		func() error { return f.SelectEmployeeName(u.EmployeeName) },
		func() error { return f.SelectStatus(u.Status) },
		func() error { return f.FillUsername(u.Username) },
		func() error { return f.FillPassword(u.Password) },
		func() error { return f.FillConfirmPassword(u.ConfirmPassword) },
		func() error { return f.d.ExpectHidden("required field error", f.requiredErrorMsg) },
		func() error { return f.d.ExpectEnabled("save button", f.saveBtn) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	// The form validates asynchronously after the last keystroke; a click
	// landing before that is swallowed.
	f.d.Pause("add user form settle", f.settle)
	return f.Save()
}

package hr

import (
	"fmt"
	"regexp"

	"pagecheck/internal/ui"

	"github.com/playwright-community/playwright-go"
)

// Row is a widget over one table card.
type Row interface {
	deleteButton() playwright.Locator
	label() string
}

// RecordsTable abstracts the records list shared by the Admin and PIM modules.
// R is the row widget of the concrete table.
type RecordsTable[R Row] struct {
	d               *ui.Driver
	addBtn          playwright.Locator
	recordsFoundMsg playwright.Locator
	tableRow        playwright.Locator
	confirmDelete   playwright.Locator
	newRow          func(d *ui.Driver, row playwright.Locator, index int) R
}

func newRecordsTable[R Row](d *ui.Driver, newRow func(*ui.Driver, playwright.Locator, int) R) *RecordsTable[R] {
	return &RecordsTable[R]{
		d:               d,
		addBtn:          d.Locator(selAddButton),
		recordsFoundMsg: d.Locator(selRecordsFound),
		tableRow:        d.Locator(selTableRow),
		confirmDelete:   d.Locator(selDeleteConfirm),
		newRow:          newRow,
	}
}

// RowByIndex returns the row at a 1-based position, 1 being the top one.
func (t *RecordsTable[R]) RowByIndex(index int) R {
	return t.newRow(t.d, t.tableRow.Nth(index-1), index)
}

// DeleteRowByIndex deletes a row and confirms the dialog.
func (t *RecordsTable[R]) DeleteRowByIndex(index int) error {
	row := t.RowByIndex(index)
	if err := t.d.Click(row.label()+" delete button", row.deleteButton()); err != nil {
		return err
	}
	if err := t.d.Click("confirm delete button", t.confirmDelete); err != nil {
		return err
	}
	return t.d.ExpectHidden("confirm delete button", t.confirmDelete)
}

// ClickAdd opens the add form of the table.
func (t *RecordsTable[R]) ClickAdd() error {
	return t.d.Click("add button", t.addBtn)
}

// RecordsFound reads the "(N) Records Found" message.
func (t *RecordsTable[R]) RecordsFound() (int, error) {
	msg, err := t.d.Text("records found message", t.recordsFoundMsg)
	if err != nil {
		return 0, err
	}
	n, err := ui.ParseRecordsFound(msg)
	if err != nil {
		return 0, t.d.Fail("read records found", "records found message", err)
	}
	return n, nil
}

// AssertThat returns the checks on the table.
func (t *RecordsTable[R]) AssertThat() *RecordsTableAssertions[R] {
	return &RecordsTableAssertions[R]{table: t}
}

// RecordsTableAssertions groups the checks on a RecordsTable.
type RecordsTableAssertions[R Row] struct {
	table *RecordsTable[R]
}

// NumberOfRowsIs checks how many rows are rendered.
func (a *RecordsTableAssertions[R]) NumberOfRowsIs(n int) error {
	return a.table.d.ExpectCount("table rows", a.table.tableRow, n)
}

// RecordsFoundIs waits for the records found message to report n.
func (a *RecordsTableAssertions[R]) RecordsFoundIs(n int) error {
	return a.table.d.ExpectTextMatch("records found message", a.table.recordsFoundMsg, recordsFoundPattern(n))
}

func recordsFoundPattern(n int) *regexp.Regexp {
	if n == 0 {
		return regexp.MustCompile(`No Records Found`)
	}
	return regexp.MustCompile(fmt.Sprintf(`\(%d\) Records? Found`, n))
}

// AdminRow is a row of the system users table.
type AdminRow struct {
	d            *ui.Driver
	name         string
	username     playwright.Locator
	userRole     playwright.Locator
	employeeName playwright.Locator
	status       playwright.Locator
	deleteBtn    playwright.Locator
}

func newAdminRow(d *ui.Driver, row playwright.Locator, index int) *AdminRow {
	cell := func(n int) playwright.Locator {
		return row.Locator(fmt.Sprintf("%s:nth-child(%d)", adminRowCells, n))
	}
	return &AdminRow{
		d:            d,
		name:         fmt.Sprintf("user row #%d", index),
		username:     cell(2),
		userRole:     cell(3),
		employeeName: cell(4),
		status:       cell(5),
		deleteBtn:    row.Locator(adminRowCells + selRowDelete),
	}
}

func (r *AdminRow) deleteButton() playwright.Locator { return r.deleteBtn }
func (r *AdminRow) label() string                    { return r.name }

// Username returns the username cell text.
func (r *AdminRow) Username() (string, error) {
	return r.d.Text(r.name+" username", r.username)
}

// AssertThat returns the checks on the row.
func (r *AdminRow) AssertThat() *AdminRowAssertions {
	return &AdminRowAssertions{row: r}
}

// AdminRowAssertions groups the checks on an AdminRow.
type AdminRowAssertions struct {
	row *AdminRow
}

// UsernameIs checks the Username cell.
func (a *AdminRowAssertions) UsernameIs(username string) error {
	return a.row.d.ExpectText(a.row.name+" username", a.row.username, username)
}

// UserRoleIs checks the User Role cell.
func (a *AdminRowAssertions) UserRoleIs(role string) error {
	return a.row.d.ExpectText(a.row.name+" user role", a.row.userRole, role)
}

// EmployeeNameIs checks the employee column, which shows "First Last".
func (a *AdminRowAssertions) EmployeeNameIs(firstName, lastName string) error {
	return a.row.d.ExpectText(a.row.name+" employee name", a.row.employeeName, firstName+" "+lastName)
}

// StatusIs checks the Status cell.
func (a *AdminRowAssertions) StatusIs(status string) error {
	return a.row.d.ExpectText(a.row.name+" status", a.row.status, status)
}

// EmployeeRow is a row of the PIM employee list.
type EmployeeRow struct {
	d                *ui.Driver
	name             string
	employeeID       playwright.Locator
	firstMiddleNames playwright.Locator
	lastName         playwright.Locator
	deleteBtn        playwright.Locator
}

func newEmployeeRow(d *ui.Driver, row playwright.Locator, index int) *EmployeeRow {
	cell := func(n int) playwright.Locator {
		return row.Locator(fmt.Sprintf("%s:nth-child(%d)", employeeRowCells, n))
	}
	return &EmployeeRow{
		d:                d,
		name:             fmt.Sprintf("employee row #%d", index),
		employeeID:       cell(2),
		firstMiddleNames: cell(3),
		lastName:         cell(4),
		deleteBtn:        row.Locator(employeeRowCells + selRowDelete),
	}
}

func (r *EmployeeRow) deleteButton() playwright.Locator { return r.deleteBtn }
func (r *EmployeeRow) label() string                    { return r.name }

// EmployeeID returns the id cell text.
func (r *EmployeeRow) EmployeeID() (string, error) {
	return r.d.Text(r.name+" id", r.employeeID)
}

// AssertThat returns the checks on the row.
func (r *EmployeeRow) AssertThat() *EmployeeRowAssertions {
	return &EmployeeRowAssertions{row: r}
}

// EmployeeRowAssertions groups the checks on an EmployeeRow.
type EmployeeRowAssertions struct {
	row *EmployeeRow
}

// EmployeeIDIs checks the Id cell.
func (a *EmployeeRowAssertions) EmployeeIDIs(id string) error {
	return a.row.d.ExpectText(a.row.name+" id", a.row.employeeID, id)
}

// FirstMiddleNamesAre checks the column holding first and middle name, e.g. "Linda Jane".
func (a *EmployeeRowAssertions) FirstMiddleNamesAre(names string) error {
	return a.row.d.ExpectText(a.row.name+" first (& middle) name", a.row.firstMiddleNames, names)
}

// LastNameIs checks the Last Name cell.
func (a *EmployeeRowAssertions) LastNameIs(name string) error {
	return a.row.d.ExpectText(a.row.name+" last name", a.row.lastName, name)
}

package e2e

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

// HRSuite covers the HR admin app, signed in as the configured admin.
type HRSuite struct {
	UISuite
}

func (s *HRSuite) SetupTest() {
	s.UISuite.SetupTest()
	s.Require().NoError(s.app.LoginHR())
}

func (s *HRSuite) TestSideMenuItemsVisible() {
	s.NoError(s.app.SideMenu.AssertThat().AllMenuItemsVisible())
}

func (s *HRSuite) TestSideMenuSearch() {
	s.Require().NoError(s.app.SideMenu.FilterBySearchInput(s.scenarios.MenuSearch))
	s.NoError(s.app.SideMenu.AssertThat().OnlyItemVisible(s.scenarios.MenuSearch))
}

func (s *HRSuite) TestOpenAdminPage() {
	s.Require().NoError(s.app.SideMenu.OpenAdminPage())
	s.NoError(s.app.Admin.IsOpen())

	n, err := s.app.Admin.Table.RecordsFound()
	s.Require().NoError(err)
	s.Positive(n)
}

func (s *HRSuite) TestOpenPIMPage() {
	s.Require().NoError(s.app.SideMenu.OpenPIMPage())
	s.NoError(s.app.PIM.IsOpen())
}

func (s *HRSuite) TestAddAndDeleteEmployee() {
	pim := s.app.PIM
	s.Require().NoError(s.app.SideMenu.OpenPIMPage())
	before, err := pim.Table.RecordsFound()
	s.Require().NoError(err)

	e := s.scenarios.Employee
	id, err := pim.AddNewEmployee(e)
	s.Require().NoError(err)
	s.Require().NoError(pim.Table.AssertThat().RecordsFoundIs(before + 1))

	row := pim.Table.RowByIndex(1)
	s.NoError(row.AssertThat().EmployeeIDIs(id))
	s.NoError(row.AssertThat().FirstMiddleNamesAre(e.FirstName + " " + e.MiddleName))
	s.NoError(row.AssertThat().LastNameIs(e.LastName))

	s.Require().NoError(pim.Table.DeleteRowByIndex(1))
	s.NoError(pim.Table.AssertThat().RecordsFoundIs(before))
}

func (s *HRSuite) TestAddUserThenFilter() {
	admin := s.app.Admin
	u := s.scenarios.User
	s.Require().NoError(s.app.SideMenu.OpenAdminPage())
	s.Require().NoError(admin.AddNewUser(u))

	s.Require().NoError(admin.Filter.FilterByUsername(u.Username))
	s.Require().NoError(admin.Table.AssertThat().RecordsFoundIs(1))

	row := admin.Table.RowByIndex(1)
	s.NoError(row.AssertThat().UsernameIs(u.Username))
	s.NoError(row.AssertThat().UserRoleIs(u.Role))
	first, last, _ := strings.Cut(u.EmployeeName, " ")
	s.NoError(row.AssertThat().EmployeeNameIs(first, last))
	s.NoError(row.AssertThat().StatusIs(u.Status))

	// Leave the shared database as found so the test can run again.
	s.Require().NoError(admin.Table.DeleteRowByIndex(1))
	s.NoError(admin.Table.AssertThat().RecordsFoundIs(0))

	s.Require().NoError(admin.Filter.Reset())
}

func (s *HRSuite) TestLoginRejectsBadPassword() {
	s.Require().NoError(s.context.ClearCookies())
	s.Require().NoError(s.app.GotoHR())
	s.Require().NoError(s.app.Login.Submit(s.cfg.HRUser, "not-the-password"))
	s.NoError(s.app.Login.AssertThat().ErrorShown("Invalid credentials"))
}

func TestHRSuite(t *testing.T) {
	suite.Run(t, new(HRSuite))
}

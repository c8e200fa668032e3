package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"pagecheck/internal/models"
	"pagecheck/internal/ui"

	"github.com/PuerkitoBio/goquery"
)

const adminUser = "paul.collings"

func (s *HandlersTestSuite) recordsFound(doc *goquery.Document) int {
	n, err := ui.ParseRecordsFound(doc.Find(".orangehrm-horizontal-padding .oxd-text--span").Text())
	s.Require().NoError(err)
	return n
}

func (s *HandlersTestSuite) TestModuleRedirects() {
	for path, want := range map[string]string{
		"/hr/admin/viewAdminModule": systemUsersPath,
		"/hr/pim/viewPimModule":     employeeListPath,
	} {
		w := s.do("GET", path, adminUser, nil)
		s.Equal(http.StatusFound, w.Code, path)
		s.Equal(want, w.Header().Get("Location"), path)
	}
}

func (s *HandlersTestSuite) TestSystemUsersTable() {
	doc := s.document(s.do("GET", systemUsersPath, adminUser, nil))
	s.Equal("Admin", strings.TrimSpace(doc.Find(".oxd-topbar-header-breadcrumb-module").Text()))
	s.Equal(3, s.recordsFound(doc))

	rows := doc.Find(".oxd-table-body > .oxd-table-card")
	s.Equal(3, rows.Length())
	cells := rows.First().Find(".oxd-table-row > .oxd-table-cell")
	s.Equal(6, cells.Length())
	s.Equal(1, rows.First().Find(":last-child button i.bi-trash").Length())
}

func (s *HandlersTestSuite) TestUsersFragmentFilters() {
	frag := s.document(s.do("GET", "/hr/admin/users?username=paul.collings", adminUser, nil, "HX-Request", "true"))
	s.Zero(frag.Find("aside.oxd-sidepanel").Length())
	s.Equal("(1) Record Found", frag.Find(".orangehrm-horizontal-padding .oxd-text--span").Text())
	cells := frag.Find(".oxd-table-body .oxd-table-cell")
	s.Equal("paul.collings", cells.Eq(1).Text())
	s.Equal("Admin", cells.Eq(2).Text())
	s.Equal("Paul Collings", cells.Eq(3).Text())
	s.Equal("Enabled", cells.Eq(4).Text())

	empty := s.document(s.do("GET", "/hr/admin/users?username=nobody", adminUser, nil))
	s.Zero(s.recordsFound(empty))
}

func (s *HandlersTestSuite) TestAddUserFormMarkup() {
	doc := s.document(s.do("GET", "/hr/admin/saveSystemUser", adminUser, nil))
	s.Equal(1, doc.Find("form[data-require-all]").Length())
	s.Equal("Admin|ESS", doc.Find(".oxd-select-wrapper").First().AttrOr("data-options", ""))
	s.Equal("/hr/api/employees", doc.Find("input[data-autocomplete]").AttrOr("data-autocomplete", ""))
}

func userForm(username string) url.Values {
	return url.Values{
		"role":             {models.RoleESS},
		"employee_name":    {"Rebecca Harmony"},
		"status":           {models.StatusEnabled},
		"username":         {username},
		"password":         {"harmony123"},
		"confirm_password": {"harmony123"},
	}
}

func (s *HandlersTestSuite) TestSaveUser() {
	w := s.do("POST", "/hr/admin/saveSystemUser", adminUser, userForm("rebecca.h"))
	s.Require().Equal(http.StatusFound, w.Code)
	s.Equal(systemUsersPath, w.Header().Get("Location"))

	u, err := s.db.GetUserByUsername("rebecca.h")
	s.Require().NoError(err)
	s.Equal(models.RoleESS, u.Role)
	s.Require().NotNil(u.EmployeeID)

	e, err := s.db.GetEmployee(*u.EmployeeID)
	s.Require().NoError(err)
	s.Equal("Rebecca Harmony", e.FullName())
}

func (s *HandlersTestSuite) TestSaveUserValidation() {
	tests := []struct {
		name  string
		edit  func(url.Values)
		field string
		msg   string
	}{
		{"short username", func(v url.Values) { v.Set("username", "abc") }, "username", "Should be at least 5 characters"},
		{"taken username", func(v url.Values) { v.Set("username", "linda.anderson") }, "username", "Already exists"},
		{"unknown employee", func(v url.Values) { v.Set("employee_name", "Nobody Here") }, "employee", "Invalid"},
		{"missing employee", func(v url.Values) { v.Set("employee_name", "") }, "employee", "Required"},
		{"bad role", func(v url.Values) { v.Set("role", "Root") }, "role", "Required"},
		{"short password", func(v url.Values) { v.Set("password", "abc"); v.Set("confirm_password", "abc") }, "password", "Should have at least 7 characters"},
		{"mismatched confirmation", func(v url.Values) { v.Set("confirm_password", "different1") }, "confirm_password", "Passwords do not match"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			form := userForm("rebecca.h")
			tt.edit(form)
			w := s.do("POST", "/hr/admin/saveSystemUser", adminUser, form)
			s.Equal(http.StatusUnprocessableEntity, w.Code)
			s.Contains(s.document(w).Find(".oxd-input-field-error-message").Text(), tt.msg)
		})
	}
	n, err := s.db.UserCount()
	s.NoError(err)
	s.Equal(3, n)
}

func (s *HandlersTestSuite) TestDeleteUser() {
	linda, err := s.db.GetUserByUsername("linda.anderson")
	s.Require().NoError(err)
	path := "/hr/admin/users/" + strconv.FormatInt(linda.ID, 10) + "/delete"

	s.Equal(http.StatusNoContent, s.do("POST", path, adminUser, nil).Code)
	s.Equal(http.StatusNotFound, s.do("POST", path, adminUser, nil).Code)

	self, err := s.db.GetUserByUsername(adminUser)
	s.Require().NoError(err)
	s.Equal(http.StatusConflict, s.do("POST", "/hr/admin/users/"+strconv.FormatInt(self.ID, 10)+"/delete", adminUser, nil).Code)
}

func (s *HandlersTestSuite) TestEmployeeListNewestFirst() {
	doc := s.document(s.do("GET", employeeListPath, adminUser, nil))
	s.Equal("PIM", strings.TrimSpace(doc.Find(".oxd-topbar-header-breadcrumb-module").Text()))
	s.Equal(5, s.recordsFound(doc))

	first := doc.Find(".oxd-table-body > .oxd-table-card").First().Find(".oxd-table-row--clickable > .oxd-table-cell")
	s.Equal("0005", first.Eq(1).Text())
	s.Equal("Rebecca", first.Eq(2).Text())
	s.Equal("Harmony", first.Eq(3).Text())
}

func (s *HandlersTestSuite) TestAddEmployeeFormSuggestsID() {
	doc := s.document(s.do("GET", "/hr/pim/addEmployee", adminUser, nil))
	s.Equal("0006", doc.Find(`input[name="employeeId"]`).AttrOr("value", ""))
	s.Equal(1, doc.Find(".orangehrm-employee-container input.orangehrm-firstname").Length())
}

func (s *HandlersTestSuite) TestSaveEmployee() {
	form := url.Values{"firstName": {"Ada"}, "middleName": {"King"}, "lastName": {"Lovelace"}, "employeeId": {"714060800"}}
	w := s.do("POST", "/hr/pim/addEmployee", adminUser, form)
	s.Require().Equal(http.StatusFound, w.Code)
	s.Equal(employeeListPath, w.Header().Get("Location"))

	frag := s.document(s.do("GET", "/hr/pim/employees", adminUser, nil))
	s.Equal(6, s.recordsFound(frag))
	first := frag.Find(".oxd-table-row--clickable > .oxd-table-cell")
	s.Equal("714060800", first.Eq(1).Text())
	s.Equal("Ada King", first.Eq(2).Text())

	w = s.do("POST", "/hr/pim/addEmployee", adminUser, form)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Contains(s.document(w).Find(".oxd-input-field-error-message").Text(), "Employee Id already exists")
}

func (s *HandlersTestSuite) TestSaveEmployeeValidation() {
	tests := []struct {
		name string
		form url.Values
		msg  string
	}{
		{"missing names", url.Values{"employeeId": {"1234"}}, "Required"},
		{"missing id", url.Values{"firstName": {"Ada"}, "lastName": {"Lovelace"}}, "Required"},
		{"long id", url.Values{"firstName": {"Ada"}, "lastName": {"Lovelace"}, "employeeId": {"12345678901"}}, "Should not exceed 10 characters"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do("POST", "/hr/pim/addEmployee", adminUser, tt.form)
			s.Equal(http.StatusUnprocessableEntity, w.Code)
			s.Contains(s.document(w).Find(".oxd-input-field-error-message").Text(), tt.msg)
		})
	}
}

func (s *HandlersTestSuite) TestDeleteEmployee() {
	list, err := s.db.ListEmployees()
	s.Require().NoError(err)
	path := "/hr/pim/employees/" + strconv.FormatInt(list[0].ID, 10) + "/delete"

	s.Equal(http.StatusNoContent, s.do("POST", path, adminUser, nil).Code)
	s.Equal(http.StatusNotFound, s.do("POST", path, adminUser, nil).Code)
	s.Equal(http.StatusNotFound, s.do("POST", "/hr/pim/employees/x/delete", adminUser, nil).Code)
}

func (s *HandlersTestSuite) TestSearchEmployees() {
	w := s.do("GET", "/hr/api/employees?q=Ham", adminUser, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("application/json", w.Header().Get("Content-Type"))

	var body struct {
		Data []EmployeeHint `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&body))
	s.Require().Len(body.Data, 1)
	s.Equal("Russel Hamilton", body.Data[0].Name)
}

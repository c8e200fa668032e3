package hr

// Selector contracts of the HR admin app.
const (
	selLoginUsername = `input[name="username"]`
	selLoginPassword = `input[name="password"]`
	selLoginSubmit   = `.orangehrm-login-form button[type="submit"]`
	selLoginError    = `.oxd-alert-content-text`

	selTopbarModule = `.oxd-topbar-header-breadcrumb-module`

	sidePanel     = `aside.oxd-sidepanel`
	selMenuLogo   = sidePanel + ` a.oxd-brand`
	selMenuSearch = sidePanel + ` input.oxd-input`
	selMenuItems  = sidePanel + ` ul.oxd-main-menu > li`
	selMenuAdmin  = sidePanel + ` a[href*="admin"]`
	selMenuPIM    = sidePanel + ` a[href*="viewPimModule"]`

	tableFilter       = `div.oxd-table-filter`
	selFilterUsername = tableFilter + ` input.oxd-input`
	selFilterSearch   = tableFilter + ` button[type="submit"]`
	selFilterReset    = tableFilter + ` button[type="reset"]`
	selLoader         = `.oxd-loading-spinner-container`

	paperContainer   = `div.orangehrm-paper-container`
	selAddButton     = paperContainer + ` .orangehrm-header-container button`
	selRecordsFound  = paperContainer + ` .orangehrm-horizontal-padding span`
	selTableRow      = paperContainer + ` .oxd-table-body > .oxd-table-card`
	selDeleteConfirm = `[role="dialog"] button.oxd-button--label-danger`

	adminRowCells    = `.oxd-table-row > .oxd-table-cell`
	employeeRowCells = `.oxd-table-row--clickable > .oxd-table-cell`
	selRowDelete     = `:last-child button i.bi-trash`

	cardContainer        = `.orangehrm-card-container`
	userFormGrid         = cardContainer + ` div[class="oxd-form-row"] .oxd-grid-2 > .oxd-grid-item`
	selUserRole          = userFormGrid + `:first-child .oxd-select-wrapper`
	selUserStatus        = userFormGrid + `:nth-child(3) .oxd-select-text-input`
	selEmployeeNameInput = cardContainer + ` input[placeholder*="for hints"]`
	selUsername          = cardContainer + ` input.oxd-input:not([type="password"])`
	selPassword          = cardContainer + ` div.user-password-cell input`
	selConfirmPassword   = cardContainer + ` .user-password-row div.oxd-grid-item:not([class*="user-password-cell"]) input`
	selListboxOption     = `[role="listbox"] > [role="option"] span`
	selRequiredError     = `span.oxd-input-field-error-message`
	selSave              = cardContainer + ` button[type="submit"]`

	selFirstName  = `.orangehrm-employee-container input.orangehrm-firstname`
	selMiddleName = `input.orangehrm-middlename`
	selLastName   = `input.orangehrm-lastname`
	selEmployeeID = `.oxd-form-row > div:last-child input.oxd-input`
)

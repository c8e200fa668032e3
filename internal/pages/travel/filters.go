package travel

import (
	"fmt"

	"pagecheck/internal/ui"

	"github.com/playwright-community/playwright-go"
)

var activeClass = ui.ClassRegexp("active")

// expandedClass marks an open filter dropdown.
const expandedClass = "op"

// FiltersSidebar abstracts the filters sidebar of the destination pages.
type FiltersSidebar struct {
	d *ui.Driver

	numOfFiltersAppliedMsg   playwright.Locator
	appliedFilters           playwright.Locator
	adventureStylesFilter    playwright.Locator
	operatedInFilter         playwright.Locator
	operatedInFilterExpanded playwright.Locator
	clearAllBtn              playwright.Locator
	// the tour list lives outside the sidebar; it carries the pending state
	pendingTourList playwright.Locator
}

// NewFiltersSidebar maps the sidebar. It does not touch the browser.
func NewFiltersSidebar(d *ui.Driver) *FiltersSidebar {
	return &FiltersSidebar{
		d:                        d,
		numOfFiltersAppliedMsg:   d.Locator(selAppliedCountMsg),
		appliedFilters:           d.Locator(selAppliedFilters),
		adventureStylesFilter:    d.Locator(selAdventureStyles),
		operatedInFilter:         d.Locator(selOperatedIn),
		operatedInFilterExpanded: d.Locator(selOperatedInExpanded),
		clearAllBtn:              d.Locator(selClearAll),
		pendingTourList:          d.Locator(selPendingTourList),
	}
}

// AppliedCount reads the number out of the "N filters applied" message.
func (f *FiltersSidebar) AppliedCount() (int, error) {
	msg, err := f.d.Text("filters applied message", f.numOfFiltersAppliedMsg)
	if err != nil {
		return 0, err
	}
	n, err := ui.ParseAppliedCount(msg)
	if err != nil {
		return 0, f.d.Fail("read applied filter count", "filters applied message", err)
	}
	return n, nil
}

// AppliedFilterLabels returns the texts of the applied filter chips.
func (f *FiltersSidebar) AppliedFilterLabels() ([]string, error) {
	return f.d.Texts("applied filters", f.appliedFilters)
}

// SelectAdventureStyles ticks options of the Adventure Style filter, e.g. "Explorer", "Bicycle".
func (f *FiltersSidebar) SelectAdventureStyles(options ...string) error {
	for _, opt := range options {
		if err := f.selectOption("adventure style", f.adventureStylesFilter, "substyles", opt); err != nil {
			return err
		}
	}
	return nil
}

// SelectOperatedIn ticks options of the Operated In filter, e.g. "German", "English".
// The dropdown is expanded first if needed.
func (f *FiltersSidebar) SelectOperatedIn(options ...string) error {
	if err := f.ExpandOperatedIn(); err != nil {
		return err
	}
	for _, opt := range options {
		if err := f.selectOption("operated in", f.operatedInFilterExpanded, "language", opt); err != nil {
			return err
		}
	}
	return nil
}

// ExpandOperatedIn opens the Operated In dropdown. It does not click when the
// dropdown is already open.
func (f *FiltersSidebar) ExpandOperatedIn() error {
	class, err := f.d.Attr("operated in filter", f.operatedInFilter, "class")
	if err != nil {
		return err
	}
	if !ui.HasClass(class, expandedClass) {
		if err := f.d.Click("operated in filter", f.operatedInFilter); err != nil {
			return err
		}
	}
	return f.d.ExpectClass("operated in filter", f.operatedInFilter, ui.ClassRegexp(expandedClass))
}

// selectOption clicks the option label, confirms its list item turned
// active, then waits out the result list refresh.
func (f *FiltersSidebar) selectOption(group string, list playwright.Locator, marker, option string) error {
	name := fmt.Sprintf("%s option %q", group, option)
	label := list.Locator(selOptionLabel, playwright.LocatorLocatorOptions{HasText: option})

	forAttr, err := f.d.Attr(name, label, "for")
	if err != nil {
		return err
	}
	id, err := ui.ExtractTrailingID(forAttr, marker)
	if err != nil {
		return f.d.Fail("select "+group, name, err)
	}

	if err := f.d.Click(name, label); err != nil {
		return err
	}
	item := list.Locator(fmt.Sprintf(`li[data-pid="%s"]`, id))
	if err := f.d.ExpectClass(name+" item", item, activeClass); err != nil {
		return err
	}
	return f.awaitResults()
}

// ClearAll removes every applied filter and waits until nothing is left to clear.
func (f *FiltersSidebar) ClearAll() error {
	if err := f.d.Click("clear all button", f.clearAllBtn); err != nil {
		return err
	}
	if err := f.awaitResults(); err != nil {
		return err
	}
	return f.d.ExpectHidden("clear all button", f.clearAllBtn)
}

// awaitResults brackets the asynchronous reload of the tour list.
func (f *FiltersSidebar) awaitResults() error {
	if err := f.d.ExpectVisible("pending tour list", f.pendingTourList); err != nil {
		return err
	}
	return f.d.WithTimeout(f.d.Timeouts().Refresh).ExpectHidden("pending tour list", f.pendingTourList)
}

// AssertThat returns the assertions of the sidebar.
func (f *FiltersSidebar) AssertThat() *FiltersSidebarAssertions {
	return &FiltersSidebarAssertions{sidebar: f}
}

// FiltersSidebarAssertions groups the checks on a FiltersSidebar.
type FiltersSidebarAssertions struct {
	sidebar *FiltersSidebar
}

// AllFiltersVisible checks the filter groups are shown.
func (a *FiltersSidebarAssertions) AllFiltersVisible() error {
	s := a.sidebar
	if err := s.d.ExpectVisible("adventure styles filter", s.adventureStylesFilter); err != nil {
		return err
	}
	return s.d.ExpectVisible("operated in filter", s.operatedInFilter)
}

// AppliedCountIs checks the number in the "filters applied" message.
func (a *FiltersSidebarAssertions) AppliedCountIs(n int) error {
	got, err := a.sidebar.AppliedCount()
	if err != nil {
		return err
	}
	return a.sidebar.d.ExpectEqual("filters applied message", n, got)
}

// AppliedListCountIs checks how many applied filter chips are listed.
func (a *FiltersSidebarAssertions) AppliedListCountIs(n int) error {
	return a.sidebar.d.ExpectCount("applied filters", a.sidebar.appliedFilters, n)
}

// AppliedFiltersContain checks a chip with the given text is shown,
// e.g. "Operated in German".
func (a *FiltersSidebarAssertions) AppliedFiltersContain(text string) error {
	chip := a.sidebar.appliedFilters.Filter(playwright.LocatorFilterOptions{HasText: text})
	return a.sidebar.d.ExpectVisible(fmt.Sprintf("applied filter %q", text), chip)
}

// ClearAllHidden checks there is nothing left to clear.
func (a *FiltersSidebarAssertions) ClearAllHidden() error {
	return a.sidebar.d.ExpectHidden("clear all button", a.sidebar.clearAllBtn)
}

// OperatedInExpanded checks the Operated In dropdown is open.
func (a *FiltersSidebarAssertions) OperatedInExpanded() error {
	s := a.sidebar
	if err := s.d.ExpectClass("operated in filter", s.operatedInFilter, ui.ClassRegexp(expandedClass)); err != nil {
		return err
	}
	return s.d.ExpectVisible("operated in options", s.operatedInFilterExpanded)
}

package travel

import (
	"regexp"

	"pagecheck/internal/ui"

	"github.com/playwright-community/playwright-go"
)

// TourPage abstracts a tour detail page, usually opened in its own tab.
type TourPage struct {
	d       *ui.Driver
	heading playwright.Locator
}

// NewTourPage maps the tour page bound to d.
func NewTourPage(d *ui.Driver) *TourPage {
	return &TourPage{d: d, heading: d.Locator(selTourHeading)}
}

// Title returns the document title.
func (p *TourPage) Title() (string, error) {
	return p.d.Title()
}

// Heading returns the tour name shown on the page.
func (p *TourPage) Heading() (string, error) {
	return p.d.Text("tour heading", p.heading)
}

// Close closes the tab.
func (p *TourPage) Close() error {
	return p.d.Close()
}

// AssertThat returns the assertions of the page.
func (p *TourPage) AssertThat() *TourPageAssertions {
	return &TourPageAssertions{page: p}
}

// TourPageAssertions groups the checks on a TourPage.
type TourPageAssertions struct {
	page *TourPage
}

// TitleContains checks the document title contains title, ignoring case.
func (a *TourPageAssertions) TitleContains(title string) error {
	return a.page.d.ExpectTitle(regexp.MustCompile(`(?i)` + regexp.QuoteMeta(title)))
}

// HeadingIs checks the tour name shown on the page.
func (a *TourPageAssertions) HeadingIs(title string) error {
	return a.page.d.ExpectText("tour heading", a.page.heading, title)
}

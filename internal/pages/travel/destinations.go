package travel

import (
	"fmt"
	"regexp"
	"time"

	"pagecheck/internal/ui"

	"github.com/playwright-community/playwright-go"
)

var destinationsTitle = regexp.MustCompile(`.*Best Europe Tours & Trips.*`)

// PopupLink names the map popup elements that open the tour page.
type PopupLink int

const (
	PopupTitle PopupLink = iota
	PopupViewTourButton
)

func (l PopupLink) String() string {
	if l == PopupTitle {
		return "popup tour title"
	}
	return "popup view tour button"
}

// UnmarshalText reads title or view_tour_button.
func (l *PopupLink) UnmarshalText(b []byte) error {
	switch string(b) {
	case "title":
		*l = PopupTitle
	case "view_tour_button":
		*l = PopupViewTourButton
	default:
		return fmt.Errorf("unknown popup link %q", b)
	}
	return nil
}

// DestinationsPage abstracts the Europe destinations listing.
type DestinationsPage struct {
	d *ui.Driver

	headerNavBar    playwright.Locator
	title           playwright.Locator
	pageDescription playwright.Locator
	tourCardItem    playwright.Locator
	pager           playwright.Locator
	mapPopup        playwright.Locator

	Filters *FiltersSidebar
}

// NewDestinationsPage maps the listing. It does not touch the browser.
func NewDestinationsPage(d *ui.Driver) *DestinationsPage {
	return &DestinationsPage{
		d:               d,
		headerNavBar:    d.Locator(selHeaderNavBar),
		title:           d.Locator(selPageTitle, "Europe Tours & Trips"),
		pageDescription: d.Locator(selPageDescription),
		tourCardItem:    d.Locator(selTourCard),
		pager:           d.Locator(selPager),
		mapPopup:        d.Locator(selMapPopup),
		Filters:         NewFiltersSidebar(d),
	}
}

// TourCardByIndex returns the card at a 1-based position, 1 being the topmost.
// The card is re-resolved against the live list on every use.
func (p *DestinationsPage) TourCardByIndex(index int) *TourCard {
	return newTourCard(p.d, p.tourCardItem.Nth(index-1), p.mapPopup, index)
}

// TourCount returns how many cards are currently rendered.
func (p *DestinationsPage) TourCount() (int, error) {
	return p.d.Count("tour cards", p.tourCardItem)
}

func (p *DestinationsPage) popupTourLink() playwright.Locator {
	return p.mapPopup.Locator(selPopupTourLink)
}

func (p *DestinationsPage) popupViewTour() playwright.Locator {
	return p.mapPopup.Locator(selPopupViewTour)
}

// MapPopupTourTitle returns the tour title shown in the map popup.
func (p *DestinationsPage) MapPopupTourTitle() (string, error) {
	return p.d.Text("map popup tour title", p.popupTourLink())
}

// ClickMapPopupTourTitle clicks the tour title in the map popup.
func (p *DestinationsPage) ClickMapPopupTourTitle() error {
	return p.d.Click("map popup tour title", p.popupTourLink())
}

// ClickMapPopupViewTour clicks the View Tour button in the map popup.
func (p *DestinationsPage) ClickMapPopupViewTour() error {
	return p.d.Click("map popup view tour button", p.popupViewTour())
}

// OpenTourFromMapPopup opens the popup's tour in a new tab.
func (p *DestinationsPage) OpenTourFromMapPopup(via PopupLink) (*TourPage, error) {
	trigger := p.ClickMapPopupTourTitle
	if via == PopupViewTourButton {
		trigger = p.ClickMapPopupViewTour
	}
	nd, err := p.d.OpenInNewPage("map "+via.String(), trigger)
	if err != nil {
		return nil, err
	}
	return NewTourPage(nd), nil
}

// WaitUntilAllThumbnailsLoaded waits for every photo and map
// thumbnail to be visible, each within timeout.
func (p *DestinationsPage) WaitUntilAllThumbnailsLoaded(timeout time.Duration) error {
	d := p.d.WithTimeout(timeout)
	for _, sel := range []string{selPhotoLoaded, selMapLoaded} {
		imgs, err := d.All("tour thumbnails", d.Locator(sel))
		if err != nil {
			return err
		}
		for _, img := range imgs {
			if err := d.ExpectVisible("tour thumbnail", img); err != nil {
				return err
			}
		}
	}
	return nil
}

// AssertThat returns the assertions of the page.
func (p *DestinationsPage) AssertThat() *DestinationsPageAssertions {
	return &DestinationsPageAssertions{page: p}
}

// DestinationsPageAssertions groups the checks on a DestinationsPage.
type DestinationsPageAssertions struct {
	page *DestinationsPage
}

// AllExpectedElementsVisible checks the page chrome, the filters and a full page of cards.
func (a *DestinationsPageAssertions) AllExpectedElementsVisible() error {
	p := a.page
	elements := []struct {
		name string
		loc  playwright.Locator
	}{
		{"header nav bar", p.headerNavBar},
		{"page title", p.title},
		{"page description", p.pageDescription},
		{"pager", p.pager},
	}
	for _, el := range elements {
		if err := p.d.ExpectVisible(el.name, el.loc); err != nil {
			return err
		}
	}
	if err := p.Filters.AssertThat().AllFiltersVisible(); err != nil {
		return err
	}
	return a.TourCountIs(PageSize)
}

// TourCountIs checks exactly n cards are rendered.
func (a *DestinationsPageAssertions) TourCountIs(n int) error {
	return a.page.d.ExpectCount("tour cards", a.page.tourCardItem, n)
}

// PageTitleIsCorrect checks the document title.
func (a *DestinationsPageAssertions) PageTitleIsCorrect() error {
	return a.page.d.ExpectTitle(destinationsTitle)
}

// MapPopupTourTitleIs checks the tour title shown in the map popup.
func (a *DestinationsPageAssertions) MapPopupTourTitleIs(title string) error {
	got, err := a.page.MapPopupTourTitle()
	if err != nil {
		return err
	}
	return a.page.d.ExpectEqual("map popup tour title", title, got)
}

// AllToursHaveAdventureStyles checks every rendered card belongs to
// at least one of styles.
func (a *DestinationsPageAssertions) AllToursHaveAdventureStyles(styles ...string) error {
	if len(styles) == 0 {
		return a.page.d.Fail("expect adventure styles", "tour cards", errNoStyles)
	}
	n, err := a.page.TourCount()
	if err != nil {
		return err
	}
	for i := 1; i <= n; i++ {
		if err := a.page.TourCardByIndex(i).AssertThat().CategoryMatchesAny(styles...); err != nil {
			return err
		}
	}
	return nil
}

// AllToursOperatedIn checks every rendered card lists language.
func (a *DestinationsPageAssertions) AllToursOperatedIn(language string) error {
	n, err := a.page.TourCount()
	if err != nil {
		return err
	}
	for i := 1; i <= n; i++ {
		if err := a.page.TourCardByIndex(i).AssertThat().OperatedInContains(language); err != nil {
			return err
		}
	}
	return nil
}

// MapPopupVisible checks the map popup is shown.
func (a *DestinationsPageAssertions) MapPopupVisible() error {
	return a.page.d.ExpectVisible("map popup", a.page.mapPopup)
}

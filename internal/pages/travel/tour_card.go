package travel

import (
	"fmt"

	"pagecheck/internal/ui"

	"github.com/playwright-community/playwright-go"
)

// TourLink names the card elements that open the tour page in a new tab.
type TourLink int

const (
	ViaPhoto TourLink = iota
	ViaTitle
	ViaViewTourButton
)

func (l TourLink) String() string {
	switch l {
	case ViaPhoto:
		return "photo thumbnail"
	case ViaTitle:
		return "title"
	case ViaViewTourButton:
		return "view tour button"
	}
	return fmt.Sprintf("TourLink(%d)", int(l))
}

// UnmarshalText reads photo, title or view_tour_button.
func (l *TourLink) UnmarshalText(b []byte) error {
	switch string(b) {
	case "photo":
		*l = ViaPhoto
	case "title":
		*l = ViaTitle
	case "view_tour_button":
		*l = ViaViewTourButton
	default:
		return fmt.Errorf("unknown tour link %q", b)
	}
	return nil
}

var errNoStyles = fmt.Errorf("%w: no adventure styles given", ui.ErrAssertion)

// TourCard abstracts one tour item of a destination listing.
type TourCard struct {
	d     *ui.Driver
	label string

	photoThumbnail     playwright.Locator
	mapThumbnail       playwright.Locator
	category           playwright.Locator
	title              playwright.Locator
	reviews            playwright.Locator
	totalPrice         playwright.Locator
	length             playwright.Locator
	viewTourBtn        playwright.Locator
	downloadBrochure   playwright.Locator
	operatedInLanguage playwright.Locator
	mapPopup           playwright.Locator
}

func newTourCard(d *ui.Driver, card, mapPopup playwright.Locator, index int) *TourCard {
	return &TourCard{
		d:                  d,
		label:              fmt.Sprintf("tour card #%d", index),
		photoThumbnail:     card.Locator(selCardPhoto),
		mapThumbnail:       card.Locator(selCardMap),
		category:           card.Locator(selCardCategory),
		title:              card.Locator(selCardTitle),
		reviews:            card.Locator(selCardReviews),
		totalPrice:         card.Locator(selCardPrice),
		length:             card.Locator(selCardLength),
		viewTourBtn:        card.Locator(selCardViewTour),
		downloadBrochure:   card.Locator(selCardBrochure),
		operatedInLanguage: card.Locator(selCardOperatedIn),
		mapPopup:           mapPopup,
	}
}

func (c *TourCard) name(part string) string {
	return c.label + " " + part
}

// ClickPhotoThumbnail clicks the photo of the card.
func (c *TourCard) ClickPhotoThumbnail() error {
	return c.d.Click(c.name("photo thumbnail"), c.photoThumbnail)
}

// ClickMapThumbnail clicks the map of the card and waits for the map popup.
func (c *TourCard) ClickMapThumbnail() error {
	if err := c.d.Click(c.name("map thumbnail"), c.mapThumbnail); err != nil {
		return err
	}
	return c.d.ExpectVisible("map popup", c.mapPopup)
}

// ClickTitle clicks the title of the card.
func (c *TourCard) ClickTitle() error {
	return c.d.Click(c.name("title"), c.title)
}

// ClickViewTourBtn clicks the View Tour button of the card.
func (c *TourCard) ClickViewTourBtn() error {
	return c.d.Click(c.name("view tour button"), c.viewTourBtn)
}

func (c *TourCard) click(via TourLink) error {
	switch via {
	case ViaPhoto:
		return c.ClickPhotoThumbnail()
	case ViaTitle:
		return c.ClickTitle()
	case ViaViewTourButton:
		return c.ClickViewTourBtn()
	}
	return fmt.Errorf("unknown tour link %v", via)
}

// OpenTour clicks one of the card links and returns the tour page it opens in a new tab.
func (c *TourCard) OpenTour(via TourLink) (*TourPage, error) {
	nd, err := c.d.OpenInNewPage(c.name(via.String()), func() error { return c.click(via) })
	if err != nil {
		return nil, err
	}
	return NewTourPage(nd), nil
}

// Title returns the trimmed tour title.
func (c *TourCard) Title() (string, error) {
	return c.d.Text(c.name("title"), c.title)
}

// Category returns the adventure styles line of the card.
func (c *TourCard) Category() (string, error) {
	return c.d.Text(c.name("category"), c.category)
}

// OperatedIn returns the guide languages line of the card.
func (c *TourCard) OperatedIn() (string, error) {
	return c.d.Text(c.name("operated in"), c.operatedInLanguage)
}

// AssertThat returns the assertions of the card.
func (c *TourCard) AssertThat() *TourCardAssertions {
	return &TourCardAssertions{card: c}
}

// TourCardAssertions groups the checks on a TourCard.
type TourCardAssertions struct {
	card *TourCard
}

// AllElementsVisible checks every mapped element of the card.
func (a *TourCardAssertions) AllElementsVisible() error {
	c := a.card
	elements := []struct {
		name string
		loc  playwright.Locator
	}{
		{"photo thumbnail", c.photoThumbnail},
		{"title", c.title},
		{"map thumbnail", c.mapThumbnail},
		{"category", c.category},
		{"reviews", c.reviews},
		{"total price", c.totalPrice},
		{"length", c.length},
		{"view tour button", c.viewTourBtn},
		{"download brochure button", c.downloadBrochure},
	}
	for _, el := range elements {
		if err := c.d.ExpectVisible(c.name(el.name), el.loc); err != nil {
			return err
		}
	}
	return nil
}

// CategoryMatchesAny checks the category line names at least one of styles.
func (a *TourCardAssertions) CategoryMatchesAny(styles ...string) error {
	if len(styles) == 0 {
		return a.card.d.Fail("expect category", a.card.name("category"), errNoStyles)
	}
	return a.card.d.ExpectContainsText(a.card.name("category"), a.card.category, ui.AnyOf(styles...))
}

// OperatedInContains checks the card lists language among its guide languages.
func (a *TourCardAssertions) OperatedInContains(language string) error {
	return a.card.d.ExpectContainsText(a.card.name("operated in"), a.card.operatedInLanguage, language)
}

package travel

import (
	"pagecheck/internal/ui"

	"github.com/playwright-community/playwright-go"
)

// HomePage abstracts the landing page. Only the elements the suite needs are mapped.
type HomePage struct {
	d                *ui.Driver
	europeAdventures playwright.Locator
}

// NewHomePage maps the home page. It does not touch the browser.
func NewHomePage(d *ui.Driver) *HomePage {
	return &HomePage{
		d:                d,
		europeAdventures: d.Locator(selEuropeLink),
	}
}

// OpenAllEuropeAdventures follows the "All adventures" link of the Europe
// destination and waits for the home page to be left.
func (h *HomePage) OpenAllEuropeAdventures() error {
	if err := h.d.Click("all Europe adventures link", h.europeAdventures); err != nil {
		return err
	}
	return h.d.ExpectHidden("all Europe adventures link", h.europeAdventures)
}

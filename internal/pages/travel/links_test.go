package travel

import (
	"testing"

	"pagecheck/internal/config"
	"pagecheck/internal/ui"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLinksFromYAML(t *testing.T) {
	var in struct {
		Card  []TourLink  `yaml:"card"`
		Popup []PopupLink `yaml:"popup"`
	}
	src := "card: [photo, title, view_tour_button]\npopup: [view_tour_button, title]\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &in))
	assert.Equal(t, []TourLink{ViaPhoto, ViaTitle, ViaViewTourButton}, in.Card)
	assert.Equal(t, []PopupLink{PopupViewTourButton, PopupTitle}, in.Popup)
}

func TestLinksFromYAMLRejectUnknown(t *testing.T) {
	var card []TourLink
	assert.Error(t, yaml.Unmarshal([]byte("[reviews]"), &card))
	var popup []PopupLink
	assert.Error(t, yaml.Unmarshal([]byte("[photo]"), &popup))
}

func TestTourLinkString(t *testing.T) {
	assert.Equal(t, "view tour button", ViaViewTourButton.String())
	assert.Equal(t, "TourLink(7)", TourLink(7).String())
	assert.Equal(t, "popup tour title", PopupTitle.String())
}

func TestStyleChecksNeedStyles(t *testing.T) {
	d := ui.NewDriver(nil, config.Timeouts{}, nil)

	card := &TourCard{d: d, label: "tour card #1"}
	err := card.AssertThat().CategoryMatchesAny()
	assert.ErrorIs(t, err, ui.ErrAssertion)

	page := &DestinationsPage{d: d}
	err = page.AssertThat().AllToursHaveAdventureStyles()
	assert.ErrorIs(t, err, ui.ErrAssertion)
}

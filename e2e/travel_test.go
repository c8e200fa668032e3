package e2e

import (
	"slices"
	"testing"
	"time"

	"pagecheck/internal/pages/travel"
	"pagecheck/internal/ui"

	"github.com/stretchr/testify/suite"
)

// TravelSuite covers the Europe listing of the tour site.
type TravelSuite struct {
	UISuite
}

func (s *TravelSuite) SetupTest() {
	s.UISuite.SetupTest()
	s.Require().NoError(s.app.GotoTravel())
	s.Require().NoError(s.app.Home.OpenAllEuropeAdventures())
}

func (s *TravelSuite) TestAllPageElementsVisible() {
	dest := s.app.Destinations
	s.Require().NoError(dest.AssertThat().PageTitleIsCorrect())
	s.NoError(dest.AssertThat().AllExpectedElementsVisible())
	s.NoError(dest.Filters.AssertThat().AllFiltersVisible())
	s.NoError(dest.TourCardByIndex(1).AssertThat().AllElementsVisible())
}

func (s *TravelSuite) TestFirstPageListsFifteenTours() {
	dest := s.app.Destinations
	s.Require().NoError(dest.AssertThat().TourCountIs(travel.PageSize))
	s.NoError(dest.WaitUntilAllThumbnailsLoaded(s.cfg.Timeouts.Refresh))

	n, err := dest.TourCount()
	s.Require().NoError(err)
	s.Equal(travel.PageSize, n)
}

func (s *TravelSuite) TestOpenTourFromCard() {
	for _, via := range s.scenarios.TourLinks {
		s.Run(via.String(), func() {
			card := s.app.Destinations.TourCardByIndex(2)
			title, err := card.Title()
			s.Require().NoError(err)
			again, err := card.Title()
			s.Require().NoError(err)
			s.Equal(title, again, "reading the title twice")

			tour, err := card.OpenTour(via)
			s.Require().NoError(err)
			defer tour.Close()

			s.NoError(tour.AssertThat().HeadingIs(title))
			s.NoError(tour.AssertThat().TitleContains(title))
		})
	}
}

func (s *TravelSuite) TestMapPopupOpensSameTourAsList() {
	dest := s.app.Destinations
	card := dest.TourCardByIndex(1)
	title, err := card.Title()
	s.Require().NoError(err)

	fromList, err := card.OpenTour(travel.ViaTitle)
	s.Require().NoError(err)
	listHeading, err := fromList.Heading()
	s.Require().NoError(err)
	s.Require().NoError(fromList.Close())

	for _, via := range s.scenarios.PopupLinks {
		s.Run(via.String(), func() {
			s.Require().NoError(card.ClickMapThumbnail())
			s.Require().NoError(dest.AssertThat().MapPopupVisible())
			s.Require().NoError(dest.AssertThat().MapPopupTourTitleIs(title))

			fromPopup, err := dest.OpenTourFromMapPopup(via)
			s.Require().NoError(err)
			defer fromPopup.Close()

			s.NoError(fromPopup.AssertThat().HeadingIs(listHeading))
		})
	}
}

func (s *TravelSuite) TestApplyAndClearFilters() {
	f := s.app.Destinations.Filters
	data := s.scenarios.Filters

	s.Require().NoError(f.SelectAdventureStyles(data.AdventureStyles...))
	s.Require().NoError(f.SelectOperatedIn(data.OperatedIn...))

	s.NoError(f.AssertThat().AppliedCountIs(data.Applied))
	s.NoError(f.AssertThat().AppliedListCountIs(data.Applied))
	for _, lang := range data.OperatedIn {
		s.NoError(f.AssertThat().AppliedFiltersContain("Operated in " + lang))
		s.NoError(s.app.Destinations.AssertThat().AllToursOperatedIn(lang))
	}
	s.NoError(s.app.Destinations.AssertThat().AllToursHaveAdventureStyles(data.AdventureStyles...))

	for _, style := range data.AdventureStyles {
		s.NoError(f.AssertThat().AppliedFiltersContain(style))
	}

	want := slices.Clone(data.AdventureStyles)
	for _, lang := range data.OperatedIn {
		want = append(want, "Operated in "+lang)
	}
	labels, err := f.AppliedFilterLabels()
	s.Require().NoError(err)
	s.Len(labels, data.Applied)
	s.ElementsMatch(want, labels)

	s.Require().NoError(f.ClearAll())
	s.NoError(f.AssertThat().AppliedCountIs(0))
	s.NoError(f.AssertThat().ClearAllHidden())
}

func (s *TravelSuite) TestExpandOperatedInIsIdempotent() {
	f := s.app.Destinations.Filters
	s.Require().NoError(f.ExpandOperatedIn())
	s.Require().NoError(f.ExpandOperatedIn())
	s.NoError(f.AssertThat().OperatedInExpanded())
}

func (s *TravelSuite) TestMissingCardTimesOut() {
	short := travel.NewDestinationsPage(s.app.Driver().WithTimeout(500 * time.Millisecond))
	_, err := short.TourCardByIndex(travel.PageSize + 1).Title()
	s.Require().Error(err)
	s.ErrorIs(err, ui.ErrTimeout)

	var step *ui.StepError
	s.Require().ErrorAs(err, &step)
	s.Contains(step.Element, "tour card #16")
}

func TestTravelSuite(t *testing.T) {
	suite.Run(t, new(TravelSuite))
}

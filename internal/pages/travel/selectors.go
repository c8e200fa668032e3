package travel

// Selector contracts of the tour site. A change to any of these on the
// application side breaks the suite.
const (
	selEuropeLink = `.ao-clp-seo-destination-links a[href="/d/europe"]`

	selHeaderNavBar    = `div[data-cy="common-header"]`
	selPageTitle       = `section h1.aa-text-h4`
	selPageDescription = `section p.ao-serp-hero__description`
	selTourCard        = `[data-cy="serp-tours--list"] ul li[data-cy="serp-tour"]`
	selPager           = `div.pag`
	selMapPopup        = `div#map_popup`
	selPopupTourLink   = `a.ao-common-map-popup__content-info-details-tour-link`
	selPopupViewTour   = `a.aa-icon-btn--chevron-right`
	selPhotoLoaded     = `img[data-id]:not([class*="lazy"])`
	selMapLoaded       = `img.map:not([class*="lazy"])`

	selCardPhoto      = `img[data-id]`
	selCardMap        = `img.map`
	selCardCategory   = `a.ao-serp-tour__travel-style-link`
	selCardTitle      = `h4`
	selCardReviews    = `a.js-reviews`
	selCardPrice      = `span.br__price-wrapper-price-description-value`
	selCardLength     = `.br__price-wrapper-info > :nth-child(2)`
	selCardViewTour   = `a[class*="aa-btn"][class*="tourLink"]`
	selCardBrochure   = `[data-cy="serp-tour--download-brochure"]`
	selCardOperatedIn = `dl.values > dd:nth-of-type(5)`

	filtersParent         = `[data-cy="serp-filters"] aside`
	selAppliedCountMsg    = filtersParent + ` [data-cy="serp-filters--filter-card-number-of-filters-applied"]`
	selClearAll           = filtersParent + ` a.serp-parameters__clear-all`
	selAppliedFilters     = filtersParent + ` .js-serp-parameters__filters > div[data-clear]`
	selAdventureStyles    = filtersParent + ` ul[data-cy="serp-filters--travel-substyles-list"]`
	selOperatedIn         = filtersParent + ` div[data-select-label^="Operated in"]`
	selOperatedInExpanded = filtersParent + ` ul[data-cy="serp-filters--guide-language-list"]`
	selOptionLabel        = `label[for^="checkbox"]`
	selPendingTourList    = `div.js-serp-tour-list.pending`

	selTourHeading = `h1[data-cy="tour-title"]`
)

// PageSize is the number of tour cards a listing page renders.
const PageSize = 15

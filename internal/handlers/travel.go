package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"pagecheck/internal/models"
	"pagecheck/internal/storage"
)

// PageSize is the number of tour cards per listing page.
const PageSize = 15

// Destination is a popular destination linked from the home page.
type Destination struct {
	Slug string
	Name string
}

var destinations = []Destination{
	{"europe", "Europe"},
	{"asia", "Asia"},
}

func destinationName(slug string) (string, bool) {
	for _, d := range destinations {
		if d.Slug == slug {
			return d.Name, true
		}
	}
	return "", false
}

// Home renders the landing page.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "travel", "home.html", struct{ Destinations []Destination }{destinations})
}

// FilterItem is one checkbox of a filter group.
type FilterItem struct {
	models.FilterOption
	Active bool
}

// AppliedFilter is one chip of the applied filters list.
type AppliedFilter struct {
	Key   string
	Label string
}

// TourCard is one card of the listing.
type TourCard struct {
	models.Tour
	Styles    string
	Languages string
	PriceText string
}

// ListingViewModel is the data passed to the destination listing.
type ListingViewModel struct {
	Slug         string
	Name         string
	Substyles    []FilterItem
	Languages    []FilterItem
	Applied      []AppliedFilter
	AppliedCount int
	OperatedOpen bool
	Tours        []TourCard
	Total        int
	Page         int
	Pages        []PageLink
}

// PageLink is one entry of the pager.
type PageLink struct {
	N       int
	Href    string
	Current bool
}

// AppliedMessage renders the "N filters applied" line.
func (v ListingViewModel) AppliedMessage() string {
	if v.AppliedCount == 1 {
		return "1 filter applied"
	}
	return fmt.Sprintf("%d filters applied", v.AppliedCount)
}

// Destination renders a destination listing.
func (h *Handlers) Destination(w http.ResponseWriter, r *http.Request) {
	vm, ok := h.listing(w, r)
	if ok {
		h.render(w, r, "travel", "destination.html", vm)
	}
}

// DestinationResults renders the listing content block for a filter change.
func (h *Handlers) DestinationResults(w http.ResponseWriter, r *http.Request) {
	if !h.hold(r) {
		return
	}
	vm, ok := h.listing(w, r)
	if ok {
		h.execute(w, "travel", "destination.html", "content", vm)
	}
}

// listing builds the view model of a listing. It answers the request itself
// and reports false when that is not possible.
func (h *Handlers) listing(w http.ResponseWriter, r *http.Request) (ListingViewModel, bool) {
	slug := r.PathValue("dest")
	name, ok := destinationName(slug)
	if !ok {
		http.NotFound(w, r)
		return ListingViewModel{}, false
	}

	q := r.URL.Query()
	substyleIDs := parseIDs(q.Get("substyles"))
	languageIDs := parseIDs(q.Get("languages"))
	page, _ := strconv.Atoi(q.Get("page"))
	page = max(page, 1)

	substyles, err := h.db.ListSubstyles(slug)
	if err != nil {
		h.serverError(w, "list substyles", err)
		return ListingViewModel{}, false
	}
	languages, err := h.db.ListLanguages(slug)
	if err != nil {
		h.serverError(w, "list languages", err)
		return ListingViewModel{}, false
	}

	vm := ListingViewModel{
		Slug:         slug,
		Name:         name,
		OperatedOpen: q.Get("op") == "1",
	}
	for _, o := range substyles {
		active := slices.Contains(substyleIDs, o.ID)
		vm.Substyles = append(vm.Substyles, FilterItem{o, active})
		if active {
			vm.Applied = append(vm.Applied, AppliedFilter{Key: fmt.Sprintf("substyles-%d", o.ID), Label: o.Name})
		}
	}
	for _, o := range languages {
		active := slices.Contains(languageIDs, o.ID)
		vm.Languages = append(vm.Languages, FilterItem{o, active})
		if active {
			vm.Applied = append(vm.Applied, AppliedFilter{Key: fmt.Sprintf("language-%d", o.ID), Label: "Operated in " + o.Name})
		}
	}
	vm.AppliedCount = len(vm.Applied)

	filter := models.TourFilter{
		Destination: slug,
		SubstyleIDs: substyleIDs,
		LanguageIDs: languageIDs,
		Limit:       PageSize,
	}
	total, err := h.db.CountTours(filter)
	if err != nil {
		h.serverError(w, "count tours", err)
		return ListingViewModel{}, false
	}
	page = min(page, lastPage(total))
	vm.Page = page
	filter.Offset = (page - 1) * PageSize
	tours, _, err := h.db.ListTours(filter)
	if err != nil {
		h.serverError(w, "list tours", err)
		return ListingViewModel{}, false
	}
	vm.Total = total
	for n := 1; (n-1)*PageSize < total; n++ {
		vm.Pages = append(vm.Pages, PageLink{
			N:       n,
			Href:    "/d/" + slug + "?" + pageQuery(substyleIDs, languageIDs, n),
			Current: n == page,
		})
	}
	for _, t := range tours {
		vm.Tours = append(vm.Tours, TourCard{
			Tour:      t,
			Styles:    strings.Join(t.Substyles, ", "),
			Languages: strings.Join(t.Languages, ", "),
			PriceText: formatPrice(t.Price),
		})
	}

	return vm, true
}

// TourViewModel is the data passed to the tour page.
type TourViewModel struct {
	TourCard
	DestinationName string
}

// Tour renders a tour detail page.
func (h *Handlers) Tour(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	t, err := h.db.GetTour(id)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, "get tour", err)
		return
	}
	name, _ := destinationName(t.Destination)
	h.render(w, r, "travel", "tour.html", TourViewModel{
		TourCard: TourCard{
			Tour:      *t,
			Styles:    strings.Join(t.Substyles, ", "),
			Languages: strings.Join(t.Languages, ", "),
			PriceText: formatPrice(t.Price),
		},
		DestinationName: name,
	})
}

// lastPage is the number of the last listing page; an empty listing still
// has page 1.
func lastPage(total int) int {
	return max(1, (total+PageSize-1)/PageSize)
}

// parseIDs reads a comma separated id list, skipping anything that is not a
// positive integer.
func parseIDs(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err == nil && id > 0 && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func pageQuery(substyles, languages []int64, page int) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if len(substyles) > 0 {
		v.Set("substyles", joinIDs(substyles))
	}
	if len(languages) > 0 {
		v.Set("languages", joinIDs(languages))
	}
	return v.Encode()
}

func joinIDs(ids []int64) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(s, ",")
}

// formatPrice renders whole euros with a thousands separator, e.g. "€1,290".
func formatPrice(euros int) string {
	s := strconv.Itoa(euros)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return "€" + s
}

func (h *Handlers) serverError(w http.ResponseWriter, op string, err error) {
	h.log.WithError(err).Error(op)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

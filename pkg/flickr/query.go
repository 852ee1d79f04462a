package flickr

import (
	"net/url"
	"strconv"
)

const (
	// SearchMethod is the Flickr API method identifier for photo searches
	SearchMethod = "flickr.photos.search"

	// contentTypePhotos restricts results to photos (no screenshots or "other")
	contentTypePhotos = "1"

	// searchExtras asks the API to include the original and medium size URLs
	// in every photo record
	searchExtras = "url_o,url_m"
)

// SearchQuery holds the per-call parameters of one photo search.
type SearchQuery struct {
	Word    string
	Page    int
	PerPage int
	License int
}

// NewSearchQuery builds the query for one page of results
func NewSearchQuery(word string, page, perPage, license int) SearchQuery {
	return SearchQuery{
		Word:    word,
		Page:    page,
		PerPage: perPage,
		License: license,
	}
}

// Values encodes the query as the form fields the REST endpoint expects.
// The API key is not part of the query; the client adds it when the
// request is sent.
func (q SearchQuery) Values() url.Values {
	v := url.Values{}
	v.Set("text", q.Word)
	v.Set("license", strconv.Itoa(q.License))
	v.Set("per_page", strconv.Itoa(q.PerPage))
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("method", SearchMethod)
	v.Set("content_type", contentTypePhotos)
	v.Set("format", "json")
	v.Set("nojsoncallback", "1")
	v.Set("extras", searchExtras)
	return v
}

package flickr

// SearchResponse represents the top-level response from the Flickr REST API.
// Code and Message are only populated when Stat is "fail".
type SearchResponse struct {
	Photos  Photos `json:"photos"`
	Stat    string `json:"stat"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Photos contains one page of search results along with pagination counters.
type Photos struct {
	Page    int     `json:"page"`
	Pages   int     `json:"pages"`
	PerPage int     `json:"perpage"`
	Total   int     `json:"total"`
	Photo   []Photo `json:"photo"`
}

// Photo represents a single photo record. URLOriginal and URLMedium are
// only present when the search requested the url_o/url_m extras and the
// photo owner allows that size.
type Photo struct {
	ID          string `json:"id"`
	Owner       string `json:"owner"`
	Secret      string `json:"secret"`
	Server      string `json:"server"`
	Title       string `json:"title"`
	URLOriginal string `json:"url_o,omitempty"`
	URLMedium   string `json:"url_m,omitempty"`
}

// HasDownloadURL reports whether at least one size variant is available.
func (p *Photo) HasDownloadURL() bool {
	return p.URLOriginal != "" || p.URLMedium != ""
}

// LastPage reports whether this page is the final one for the query.
func (ph *Photos) LastPage() bool {
	return ph.Page >= ph.Pages
}

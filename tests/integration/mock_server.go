package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"flickrget/pkg/flickr"
)

// MockFlickrServer simulates the Flickr REST API and the photo CDN behind
// the url_m/url_o links it hands out.
type MockFlickrServer struct {
	server         *httptest.Server
	catalog        map[string]*wordCatalog
	errorResponses map[string]int // endpoint patterns to HTTP error codes
	apiFailures    map[string]apiFailure
	searchCount    int32
	downloadCount  int32
	mu             sync.RWMutex
	searchForms    []url.Values // every form the search endpoint received
}

// wordCatalog describes the synthetic search results for one word
type wordCatalog struct {
	seed       int
	pages      int
	perPage    int
	mediumOnly map[int]bool // photo indexes without an original size URL
}

// apiFailure is a stat:"fail" response for a word
type apiFailure struct {
	code    int
	message string
}

// NewMockFlickrServer creates a mock Flickr API server
func NewMockFlickrServer() *MockFlickrServer {
	m := &MockFlickrServer{
		catalog:        make(map[string]*wordCatalog),
		errorResponses: make(map[string]int),
		apiFailures:    make(map[string]apiFailure),
	}

	mux := http.NewServeMux()

	// REST endpoint, form-encoded POST
	mux.HandleFunc("/services/rest", m.handleSearch)

	// Photo download endpoint (simulated CDN)
	mux.HandleFunc("/photos/", m.handlePhotoDownload)

	m.server = httptest.NewServer(mux)
	return m
}

// SetCatalog registers synthetic search results for a word
func (m *MockFlickrServer) SetCatalog(word string, pages, perPage int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog[word] = &wordCatalog{
		seed:       len(m.catalog) + 1,
		pages:      pages,
		perPage:    perPage,
		mediumOnly: make(map[int]bool),
	}
}

// SetMediumOnly marks one photo index of a word as having no original URL
func (m *MockFlickrServer) SetMediumOnly(word string, index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.catalog[word]; ok {
		c.mediumOnly[index] = true
	}
}

// PhotoID returns the id the catalog generates for a word, page and index
func (m *MockFlickrServer) PhotoID(word string, page, index int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.catalog[word]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d%d%02d", c.seed, page, index)
}

// handleSearch handles flickr.photos.search requests
func (m *MockFlickrServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&m.searchCount, 1)

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	word := r.PostForm.Get("text")

	m.mu.Lock()
	m.searchForms = append(m.searchForms, r.PostForm)
	m.mu.Unlock()

	// Check for configured transport errors
	if code := m.getErrorResponse("search:" + word); code > 0 {
		w.WriteHeader(code)
		fmt.Fprintf(w, "Error %d", code)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	// API key is mandatory
	if r.PostForm.Get("api_key") == "" {
		m.writeFailure(w, 100, "Invalid API Key (Key has invalid format)")
		return
	}
	if r.PostForm.Get("method") != "flickr.photos.search" {
		m.writeFailure(w, 112, "Method not found")
		return
	}

	// Configured API-level failures
	m.mu.RLock()
	failure, failed := m.apiFailures[word]
	c, known := m.catalog[word]
	m.mu.RUnlock()

	if failed {
		m.writeFailure(w, failure.code, failure.message)
		return
	}

	page, _ := strconv.Atoi(r.PostForm.Get("page"))
	if page < 1 {
		page = 1
	}

	// Unknown words return an empty result set, like the real API
	if !known {
		m.writeSearchResponse(w, &flickr.SearchResponse{
			Photos: flickr.Photos{Page: page, Pages: 0, PerPage: 0, Total: 0, Photo: []flickr.Photo{}},
			Stat:   "ok",
		})
		return
	}

	photos := make([]flickr.Photo, 0, c.perPage)
	for i := 0; i < c.perPage; i++ {
		id := fmt.Sprintf("%d%d%02d", c.seed, page, i)
		p := flickr.Photo{
			ID:        id,
			Owner:     "owner" + strconv.Itoa(c.seed),
			Secret:    "secret" + id,
			Server:    "mock",
			Title:     fmt.Sprintf("%s photo %d", word, i),
			URLMedium: m.server.URL + "/photos/" + id + "_m.jpg",
		}
		if !c.mediumOnly[i] {
			p.URLOriginal = m.server.URL + "/photos/" + id + "_o.jpg"
		}
		photos = append(photos, p)
	}

	m.writeSearchResponse(w, &flickr.SearchResponse{
		Photos: flickr.Photos{
			Page:    page,
			Pages:   c.pages,
			PerPage: c.perPage,
			Total:   c.pages * c.perPage,
			Photo:   photos,
		},
		Stat: "ok",
	})
}

// handlePhotoDownload simulates CDN downloads
func (m *MockFlickrServer) handlePhotoDownload(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&m.downloadCount, 1)

	name := strings.TrimPrefix(r.URL.Path, "/photos/")

	// Check for configured errors
	if code := m.getErrorResponse("photo:" + name); code > 0 {
		w.WriteHeader(code)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Write(TestImageBytes(name))
}

// TestImageBytes returns the deterministic fake image the CDN serves for
// a file name
func TestImageBytes(name string) []byte {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte((i + len(name)) % 256)
	}
	return append([]byte("JPEG:"+name+":"), data...)
}

// writeSearchResponse encodes a search response
func (m *MockFlickrServer) writeSearchResponse(w http.ResponseWriter, resp *flickr.SearchResponse) {
	json.NewEncoder(w).Encode(resp)
}

// writeFailure encodes a stat:"fail" response. The real API reports
// failures with HTTP 200.
func (m *MockFlickrServer) writeFailure(w http.ResponseWriter, code int, message string) {
	json.NewEncoder(w).Encode(map[string]interface{}{
		"stat":    "fail",
		"code":    code,
		"message": message,
	})
}

// SetErrorResponse configures an endpoint to return a specific error code.
// Patterns: "search:<word>" for the REST endpoint, "photo:<file>" for the CDN.
func (m *MockFlickrServer) SetErrorResponse(endpoint string, code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorResponses[endpoint] = code
}

// ClearErrorResponse removes error configuration for an endpoint
func (m *MockFlickrServer) ClearErrorResponse(endpoint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.errorResponses, endpoint)
}

// SetAPIFailure makes searches for a word fail at the API level
func (m *MockFlickrServer) SetAPIFailure(word string, code int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiFailures[word] = apiFailure{code: code, message: message}
}

// getErrorResponse checks if an error is configured for the endpoint
func (m *MockFlickrServer) getErrorResponse(endpoint string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errorResponses[endpoint]
}

// GetURL returns the base URL of the mock server
func (m *MockFlickrServer) GetURL() string {
	return m.server.URL
}

// Endpoint returns the REST endpoint URL for client configuration
func (m *MockFlickrServer) Endpoint() string {
	return m.server.URL + "/services/rest"
}

// GetSearchCount returns the number of search requests received
func (m *MockFlickrServer) GetSearchCount() int {
	return int(atomic.LoadInt32(&m.searchCount))
}

// GetDownloadCount returns the number of CDN requests received
func (m *MockFlickrServer) GetDownloadCount() int {
	return int(atomic.LoadInt32(&m.downloadCount))
}

// SearchForms returns a copy of every form the search endpoint received
func (m *MockFlickrServer) SearchForms() []url.Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	forms := make([]url.Values, len(m.searchForms))
	copy(forms, m.searchForms)
	return forms
}

// LastSearchForm returns the most recent search form, or nil
func (m *MockFlickrServer) LastSearchForm() url.Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.searchForms) == 0 {
		return nil
	}
	return m.searchForms[len(m.searchForms)-1]
}

// ResetCounters resets request counters and recorded forms
func (m *MockFlickrServer) ResetCounters() {
	atomic.StoreInt32(&m.searchCount, 0)
	atomic.StoreInt32(&m.downloadCount, 0)
	m.mu.Lock()
	m.searchForms = nil
	m.mu.Unlock()
}

// Close shuts down the mock server
func (m *MockFlickrServer) Close() {
	m.server.Close()
}

package fetcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"flickrget/pkg/config"
	"flickrget/pkg/errors"
	"flickrget/pkg/flickr"
	"flickrget/pkg/logger"
	"flickrget/pkg/storage"
)

// singlePageFloor is the start page at or above which a run fetches exactly
// one page. Runs starting below it walk pages [start, max).
const singlePageFloor = 8

// PageOutcome reports how a processed page left the pagination loop.
type PageOutcome int

const (
	// PageOutcomeMorePages means further result pages exist.
	PageOutcomeMorePages PageOutcome = iota
	// PageOutcomeLastPage means the processed page was the final one.
	PageOutcomeLastPage
)

// DownloadEntry is one element of the persisted URL list artifact. Field
// order matches the alphabetical key order of the JSON output.
type DownloadEntry struct {
	Key         string `json:"key"`
	URLMedium   string `json:"url_m,omitempty"`
	URLOriginal string `json:"url_o,omitempty"`
}

// DownloadTarget pairs a chosen image URL with the file name it is saved
// under.
type DownloadTarget struct {
	URL      string
	Filename string
}

// Fetcher orchestrates the search and download process for words
type Fetcher struct {
	client  Client
	storage *storage.Manager
	config  *config.Config
	logger  logger.Logger
}

// New creates a new Fetcher instance
func New(cfg *config.Config) (*Fetcher, error) {
	log := logger.GetLogger()

	client := flickr.NewClient(cfg, log)

	manager, err := storage.NewManager(cfg.Output.BaseDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage manager: %w", err)
	}

	return &Fetcher{
		client:  client,
		storage: manager,
		config:  cfg,
		logger:  log,
	}, nil
}

// ExtractDownloadList builds the download list for one search response.
// Entries keep their response order. A record with at least one size URL
// is kept; records with neither are skipped and logged.
func (f *Fetcher) ExtractDownloadList(resp *flickr.SearchResponse) []DownloadEntry {
	entries := make([]DownloadEntry, 0, len(resp.Photos.Photo))
	skipped := 0

	for _, photo := range resp.Photos.Photo {
		if !photo.HasDownloadURL() {
			skipped++
			f.logger.ErrorWithFields("photo record has no download URL", map[string]interface{}{
				"id":    photo.ID,
				"title": photo.Title,
			})
			continue
		}

		entries = append(entries, DownloadEntry{
			Key:         photo.ID,
			URLMedium:   photo.URLMedium,
			URLOriginal: photo.URLOriginal,
		})
	}

	if skipped > 0 {
		f.logger.WarnWithFields("photo records without URLs skipped", map[string]interface{}{
			"skipped": skipped,
			"kept":    len(entries),
		})
	}

	return entries
}

// PersistPage writes the two JSON artifacts for one page of results: the
// raw API response and the derived download list. Existing artifacts of
// the same name are overwritten.
func (f *Fetcher) PersistPage(word string, page int, raw []byte, list []DownloadEntry) error {
	return f.persistPage(f.storage, word, page, raw, list)
}

func (f *Fetcher) persistPage(store *storage.Manager, word string, page int, raw []byte, list []DownloadEntry) error {
	prefix := fmt.Sprintf("%s_%d", storage.SanitizeWord(word), page)

	// Indenting the raw bytes keeps the API's key order in the artifact
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "    "); err != nil {
		return fmt.Errorf("failed to format response JSON: %w", err)
	}
	if err := store.WriteJSON(prefix+".json", pretty.Bytes()); err != nil {
		return err
	}

	listJSON, err := json.MarshalIndent(list, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode download list: %w", err)
	}
	if err := store.WriteJSON(prefix+"_url.json", listJSON); err != nil {
		return err
	}

	f.logger.DebugWithFields("page artifacts written", map[string]interface{}{
		"word":    word,
		"page":    page,
		"entries": len(list),
	})

	return nil
}

// FetchImage downloads one image and writes it into the output directory
func (f *Fetcher) FetchImage(target DownloadTarget) error {
	return f.fetchImage(f.storage, target)
}

func (f *Fetcher) fetchImage(store *storage.Manager, target DownloadTarget) error {
	data, err := f.client.Download(target.URL)
	if err != nil {
		return err
	}
	return store.SaveImage(bytes.NewReader(data), target.Filename)
}

// downloadTarget picks the image URL for an entry. The configured size is
// preferred; when that variant is missing the other one is used.
func (f *Fetcher) downloadTarget(entry DownloadEntry) string {
	preferred, fallback := entry.URLMedium, entry.URLOriginal
	if f.config.Search.OriginalSize {
		preferred, fallback = entry.URLOriginal, entry.URLMedium
	}

	if preferred == "" {
		f.logger.WarnWithFields("preferred size unavailable, using the other variant", map[string]interface{}{
			"key": entry.Key,
		})
		return fallback
	}
	return preferred
}

// downloadEntries fetches every image in the list sequentially. A failed
// entry is logged and skipped; the loop always reaches the end of the list.
func (f *Fetcher) downloadEntries(store *storage.Manager, word string, page int, list []DownloadEntry) {
	for i, entry := range list {
		imageURL := f.downloadTarget(entry)

		filename, err := storage.FileNameFromURL(imageURL)
		if err != nil {
			f.logger.ErrorWithFields("skipping image with unusable URL", map[string]interface{}{
				"word":  word,
				"page":  page,
				"url":   imageURL,
				"error": err.Error(),
			})
			continue
		}

		f.logger.InfoWithFields(fmt.Sprintf("downloading %s %d/%d", imageURL, i+1, len(list)), map[string]interface{}{
			"word": word,
			"page": page,
		})

		if err := f.fetchImage(store, DownloadTarget{URL: imageURL, Filename: filename}); err != nil {
			f.logger.ErrorWithFields("image download failed", map[string]interface{}{
				"word":  word,
				"page":  page,
				"url":   imageURL,
				"error": err.Error(),
			})
			continue
		}
	}
}

// RunPage processes one page for a word: search, persist the artifacts,
// download the images. The returned outcome tells the caller whether the
// response reported the final page. Per-image failures never fail the
// page; search and persistence failures do.
func (f *Fetcher) RunPage(word string, page int) (PageOutcome, error) {
	return f.runPage(f.storage, word, page)
}

func (f *Fetcher) runPage(store *storage.Manager, word string, page int) (PageOutcome, error) {
	query := flickr.NewSearchQuery(word, page, f.config.Search.PerPage, f.config.Search.License)

	result, raw, err := f.client.Search(query)
	if err != nil {
		return PageOutcomeMorePages, fmt.Errorf("search failed for %q page %d: %w", word, page, err)
	}

	list := f.ExtractDownloadList(result)

	if err := f.persistPage(store, word, page, raw, list); err != nil {
		return PageOutcomeMorePages, err
	}

	f.downloadEntries(store, word, page, list)

	if result.Photos.LastPage() {
		f.logger.InfoWithFields("no more pages", map[string]interface{}{
			"word":  word,
			"page":  result.Photos.Page,
			"pages": result.Photos.Pages,
		})
		return PageOutcomeLastPage, nil
	}

	return PageOutcomeMorePages, nil
}

// RunWord searches one word and downloads its images. Start pages at or
// above singlePageFloor fetch exactly that page; lower start pages walk
// pages [start, max) and stop early once the API reports the last page.
func (f *Fetcher) RunWord(word string) error {
	return f.runWord(f.storage, word)
}

func (f *Fetcher) runWord(store *storage.Manager, word string) error {
	start := f.config.Search.StartPage
	maxPage := f.config.Search.MaxPage

	if start >= singlePageFloor {
		_, err := f.runPage(store, word, start)
		return err
	}

	for page := start; page < maxPage; page++ {
		f.logger.InfoWithFields("start download", map[string]interface{}{
			"word": word,
			"page": page,
		})

		outcome, err := f.runPage(store, word, page)
		if err != nil {
			return err
		}
		if outcome == PageOutcomeLastPage {
			break
		}
	}

	return nil
}

// RunWordList runs every word in a newline-delimited list file, each into
// its own subdirectory under the output directory. Words run sequentially
// in file order; a failing word stops the run.
func (f *Fetcher) RunWordList(path string) error {
	words, err := loadWordList(path)
	if err != nil {
		return err
	}

	f.logger.InfoWithFields("word list loaded", map[string]interface{}{
		"file":  path,
		"words": len(words),
	})

	for _, word := range words {
		store := f.storage
		if f.config.Output.WordSubdirs {
			sub, err := f.storage.WordDir(word)
			if err != nil {
				return err
			}
			store = sub
		}

		if err := f.runWord(store, word); err != nil {
			return err
		}
	}

	return nil
}

// loadWordList reads a newline-delimited word list. Lines are trimmed and
// blank lines dropped.
func loadWordList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeConfig,
			Message: fmt.Sprintf("failed to read word list: %v", err),
			Code:    0,
		}
	}

	var words []string
	for _, line := range strings.Split(string(data), "\n") {
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}
		words = append(words, word)
	}

	return words, nil
}

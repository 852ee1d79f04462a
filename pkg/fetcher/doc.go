// Package fetcher provides the core search-and-download flow.
//
// The fetcher package drives one run of the tool: it pages through Flickr
// search results for a word, persists the JSON artifacts for every page,
// and downloads the listed images one at a time.
//
// Architecture:
//
// The Fetcher struct is the main component that:
//   - Issues search requests through the Flickr client
//   - Derives the download list from each response
//   - Writes the raw page and URL list artifacts
//   - Downloads images sequentially in listing order
//   - Walks pages until the configured maximum or the API's last page
//
// Usage:
//
//	fetcher, err := fetcher.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Single word into the output directory
//	err = fetcher.RunWord("cat")
//
//	// Word list file, one subdirectory per word
//	err = fetcher.RunWordList("words.txt")
//
// Artifacts:
//
// Every processed page leaves two files in the output directory:
// {word}_{page}.json holds the raw API response, {word}_{page}_url.json the
// derived download list. Images are saved under the final path segment of
// their URL. Re-running a page overwrites its artifacts in place.
//
// Failure policy:
//
// A failed image download or a record without usable URLs is logged and
// skipped; the page always runs to the end of its list. Search failures
// and unwritable artifacts end the run.
package fetcher

package fetcher

import "flickrget/pkg/flickr"

// Client defines the interface for Flickr API operations
type Client interface {
	Search(query flickr.SearchQuery) (*flickr.SearchResponse, []byte, error)
	Download(imageURL string) ([]byte, error)
}

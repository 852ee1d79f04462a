// Package flickr provides a client for the Flickr REST API.
//
// This package includes:
//   - A configurable HTTP client with request logging and typed errors
//   - Models matching the flickr.photos.search JSON response
//   - A SearchQuery builder that emits the API form fields
//   - Image download over plain GET
//
// Example usage:
//
//	client := flickr.NewClient(cfg, log)
//
//	// Search for photos
//	query := flickr.NewSearchQuery("cat", 1, 500, 4)
//	result, raw, err := client.Search(query)
//	if err != nil {
//	    if apiErr, ok := err.(*errors.Error); ok {
//	        switch apiErr.Type {
//	        case errors.ErrorTypeAPI:
//	            // Flickr rejected the call (bad key, bad parameter)
//	        case errors.ErrorTypeNetwork:
//	            // Transport failure
//	        }
//	    }
//	}
//
//	// Download photos
//	for _, photo := range result.Photos.Photo {
//	    if photo.HasDownloadURL() {
//	        data, err := client.Download(photo.URLMedium)
//	        // Handle image data
//	    }
//	}
package flickr

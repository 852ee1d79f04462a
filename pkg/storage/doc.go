// Package storage provides file output for the Flickr fetcher.
//
// The storage package handles:
//   - Creating the output directory tree, including per-word subdirectories
//   - Writing JSON artifacts (raw search pages and download URL lists)
//   - Saving images with atomic write operations
//   - Deriving file and directory names from URLs and search words
//
// The Manager type is rooted at one output directory. Word-list runs get a
// child manager per word via WordDir, so every word writes its artifacts
// into its own subdirectory.
//
// Usage:
//
//	manager, err := storage.NewManager("./download")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Persist a page artifact
//	err = manager.WriteJSON("cat_1.json", rawBody)
//
//	// Save an image under its URL basename
//	name, err := storage.FileNameFromURL(photoURL)
//	if err == nil {
//	    err = manager.SaveImage(bytes.NewReader(data), name)
//	}
package storage

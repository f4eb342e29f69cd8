// Package snapshot bundles a small demo content tree into the binary for
// the embedded read-only storage backend.
package snapshot

import (
	"embed"
	"io/fs"
)

//go:embed all:content
var content embed.FS

// Content returns the demo tree rooted at the storage root.
func Content() fs.FS {
	sub, err := fs.Sub(content, "content")
	if err != nil {
		// The subtree is compiled in; this cannot fail at runtime.
		panic(err)
	}
	return sub
}

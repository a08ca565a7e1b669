package handlers

import (
	"os"
	"path/filepath"
	"sync"
)

// ImagePlaceholder is shown in place of a missing product photo
const ImagePlaceholder = "🍱"

// ImageResolver checks catalog image references against the assets
// directory. Lookups are cached since the catalog never changes at runtime.
type ImageResolver struct {
	dir   string
	mu    sync.RWMutex
	found map[string]bool
}

// NewImageResolver creates a resolver rooted at dir. An empty dir trusts
// every non-empty reference.
func NewImageResolver(dir string) *ImageResolver {
	return &ImageResolver{dir: dir, found: make(map[string]bool)}
}

// Resolve returns the image to show, or the placeholder when there is none
func (r *ImageResolver) Resolve(ref string) (image, placeholder string) {
	if ref == "" {
		return "", ImagePlaceholder
	}
	if r.dir == "" || r.exists(ref) {
		return ref, ""
	}
	return "", ImagePlaceholder
}

func (r *ImageResolver) exists(ref string) bool {
	r.mu.RLock()
	ok, cached := r.found[ref]
	r.mu.RUnlock()
	if cached {
		return ok
	}

	info, err := os.Stat(filepath.Join(r.dir, filepath.Clean("/"+ref)))
	ok = err == nil && !info.IsDir()

	r.mu.Lock()
	r.found[ref] = ok
	r.mu.Unlock()
	return ok
}

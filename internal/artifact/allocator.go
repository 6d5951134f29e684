package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

var trailingCounter = regexp.MustCompile(`^(.+)_(\d+)$`)

// Allocator derives non-colliding output paths by appending an incrementing
// numeric suffix to the desired stem. All writers of a run share one
// Allocator; calls serialize through its mutex so that no two callers are
// ever handed the same path. It never overwrites an existing file.
type Allocator struct {
	mu     sync.Mutex
	issued map[string]bool
}

// NewAllocator creates an Allocator for a single run.
func NewAllocator() *Allocator {
	return &Allocator{issued: make(map[string]bool)}
}

// Allocate returns desired unchanged when it is free, otherwise the first
// `stem_n.ext` (n = 1, 2, 3, ...) that neither exists on disk nor was
// already issued during this run. Existence is checked at call time; the
// issued set covers the window between allocation and the caller's write.
func (a *Allocator) Allocate(desired string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.free(desired) {
		a.issued[desired] = true
		return desired
	}

	dir := filepath.Dir(desired)
	ext := filepath.Ext(desired)
	stem := strings.TrimSuffix(filepath.Base(desired), ext)

	// A stem that already carries a trailing _<n> restarts its numbering
	// from the bare name.
	if m := trailingCounter.FindStringSubmatch(stem); m != nil {
		stem = m[1]
	}

	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		if a.free(candidate) {
			a.issued[candidate] = true
			return candidate
		}
	}
}

func (a *Allocator) free(path string) bool {
	if a.issued[path] {
		return false
	}
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns match the world document files a data directory holds.
var DefaultPatterns = []string{"**/*.yaml", "**/*.yml", "**/*.json"}

// Finder discovers world document files under a data directory by glob
// pattern, with ** support.
type Finder struct {
	dir      string
	patterns []string
}

// NewFinder returns a finder over dir. Without patterns it uses
// DefaultPatterns.
func NewFinder(dir string, patterns ...string) *Finder {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &Finder{dir: dir, patterns: patterns}
}

// Find returns the matching files, deduplicated and sorted. A data
// directory with no matches yields an empty result, not an error.
func (f *Finder) Find() ([]string, error) {
	var found []string
	seen := make(map[string]bool)

	for _, pattern := range f.patterns {
		matches, err := doublestar.FilepathGlob(filepath.Join(f.dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			if !seen[match] {
				seen[match] = true
				found = append(found, match)
			}
		}
	}

	sort.Strings(found)
	return found, nil
}

package msbuild

import (
	"fmt"
	"os"
	"path/filepath"
)

// resolveOverlays returns absolute paths of the user property sheets in the
// order given. Relative names are looked up in dir.
func resolveOverlays(dir string, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := name
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		p, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			return nil, fmt.Errorf("%w: %q", ErrMissingOverlayFile, name)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// overlayChain places the generated sheet before the user sheets, so that
// later imports override earlier ones.
func overlayChain(generated string, user []string) []string {
	chain := make([]string, 0, 1+len(user))
	chain = append(chain, generated)
	return append(chain, user...)
}

package diagfmt

import "path/filepath"

func formatPath(path string, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if base != "" {
			if rel, err := filepath.Rel(base, path); err == nil {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}

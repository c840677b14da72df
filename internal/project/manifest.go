package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrPackageSectionMissing indicates that [package] is missing in dalc.toml.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing in dalc.toml.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

// DefaultUnitGlob selects unit files when [check].units is absent.
const DefaultUnitGlob = "*" + UnitSuffix

// Manifest is a loaded dalc.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Check   CheckConfig   `toml:"check"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type CheckConfig struct {
	Units          []string `toml:"units"`
	Jobs           int      `toml:"jobs"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	CacheDir       string   `toml:"cache_dir"`
}

// LoadManifest finds dalc.toml at or above startDir and decodes it.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes and validates the manifest at path.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Check.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	if len(cfg.Check.Units) == 0 {
		cfg.Check.Units = []string{DefaultUnitGlob}
	}
	return cfg, nil
}

// UnitPaths expands [check].units relative to the manifest directory. The
// result is sorted and free of duplicates.
func (m *Manifest) UnitPaths() ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range m.Config.Check.Units {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(m.Root, filepath.FromSlash(pattern))
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: bad [check].units pattern %q: %w", m.Path, pattern, err)
		}
		for _, match := range matches {
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			out = append(out, match)
		}
	}
	sort.Strings(out)
	return out, nil
}

// CacheDir returns the configured cache directory resolved against Root, or "".
func (m *Manifest) CacheDir() string {
	dir := strings.TrimSpace(m.Config.Check.CacheDir)
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}

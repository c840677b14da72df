package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[package]
name = "shop"

[check]
units = ["units/*.dalc.toml", "units/a.dalc.toml"]
jobs = 2
cache_dir = ".dalc-cache"
`)
	writeFile(t, filepath.Join(root, "units", "b.dalc.toml"), `name = "b"`)
	writeFile(t, filepath.Join(root, "units", "a.dalc.toml"), `name = "a"`)
	nested := filepath.Join(root, "units", "deeper")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("load manifest: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "shop" || m.Config.Check.Jobs != 2 {
		t.Fatalf("unexpected config %+v", m.Config)
	}
	paths, err := m.UnitPaths()
	if err != nil {
		t.Fatalf("unit paths: %v", err)
	}
	if len(paths) != 2 || filepath.Base(paths[0]) != "a.dalc.toml" || filepath.Base(paths[1]) != "b.dalc.toml" {
		t.Fatalf("unexpected unit paths %v", paths)
	}
	if m.CacheDir() != filepath.Join(root, ".dalc-cache") {
		t.Fatalf("unexpected cache dir %q", m.CacheDir())
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, ok, err := LoadManifest(t.TempDir())
	if err != nil || ok {
		t.Fatalf("expected no manifest, got ok=%v err=%v", ok, err)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]struct {
		body string
		want error
		text string
	}{
		"no package":   {body: `[check]`, want: ErrPackageSectionMissing},
		"no name":      {body: "[package]\nname = \" \"", want: ErrPackageNameMissing},
		"unknown key":  {body: "[package]\nname = \"x\"\ncolour = 1", text: "unknown key"},
		"negative job": {body: "[package]\nname = \"x\"\n[check]\njobs = -1", text: "jobs"},
	}
	for name, tc := range cases {
		path := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".toml")
		writeFile(t, path, tc.body)
		_, err := LoadConfig(path)
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
		if tc.text != "" && !strings.Contains(err.Error(), tc.text) {
			t.Fatalf("%s: expected %q in %v", name, tc.text, err)
		}
	}

	path := filepath.Join(dir, "defaults.toml")
	writeFile(t, path, "[package]\nname = \"x\"")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if len(cfg.Check.Units) != 1 || cfg.Check.Units[0] != DefaultUnitGlob {
		t.Fatalf("expected default unit glob, got %v", cfg.Check.Units)
	}
}

func TestDecodeUnit(t *testing.T) {
	data := []byte(`
[[function]]
name = " total "
params = ["Iterable<Decimal>"]
returns = "Decimal"

[[function]]
name = "log"
params = []

[[call]]
name = "total"
args = [" Set<DecimalRange> "]
`)
	src, err := DecodeUnit("units/orders.dalc.toml", data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if src.Name != "orders" {
		t.Fatalf("unit name should default to the file name, got %q", src.Name)
	}
	if len(src.Functions) != 2 || src.Functions[0].Name != "total" || src.Functions[1].Returns != "" {
		t.Fatalf("unexpected functions %+v", src.Functions)
	}
	if len(src.Calls) != 1 || src.Calls[0].Args[0] != "Set<DecimalRange>" {
		t.Fatalf("unexpected calls %+v", src.Calls)
	}
	if src.Digest != DigestOf(data) {
		t.Fatalf("digest must cover the raw bytes")
	}
}

func TestDecodeUnitNormalisesIdentifiers(t *testing.T) {
	// decomposed e + U+0301 must compare equal to the precomposed form
	src, err := DecodeUnit("u.dalc.toml", []byte("[[function]]\nname = \"re\u0301sume\u0301\"\nparams = []\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if src.Functions[0].Name != "r\u00e9sum\u00e9" {
		t.Fatalf("expected NFC name, got %q", src.Functions[0].Name)
	}
}

func TestDecodeUnitErrors(t *testing.T) {
	for name, body := range map[string]string{
		"syntax":      "[[function]\n",
		"unknown key": "[[function]]\nname = \"f\"\nresult = \"Decimal\"\n",
		"call name":   "[[call]]\nargs = []\n",
	} {
		if _, err := DecodeUnit("u.dalc.toml", []byte(body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadUnitMissingFile(t *testing.T) {
	if _, err := LoadUnit(filepath.Join(t.TempDir(), "none.dalc.toml")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

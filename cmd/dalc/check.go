package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dalc/internal/diag"
	"dalc/internal/diagfmt"
	"dalc/internal/driver"
	"dalc/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check compilation units",
	Long: `Check registers the functions of each unit and resolves its calls.
Without paths the units listed in the nearest dalc.toml are checked.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	checkCmd.Flags().String("cache-dir", "", "result cache directory (default: $XDG_CACHE_HOME/dalc)")
	checkCmd.Flags().Bool("notes", true, "show diagnostic notes")
	checkCmd.Flags().Bool("resolutions", false, "list resolved calls per unit")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

type checkSettings struct {
	format      string
	opts        driver.Options
	noCache     bool
	cacheDir    string
	notes       bool
	resolutions bool
	timings     bool
	ui          bool
	baseDir     string
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings, paths, err := checkInputs(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(paths) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: no compilation units found\n", diag.ProjNoUnits.ID())
		return errReported
	}

	if !settings.noCache {
		cache, err := driver.OpenDiskCache(settings.cacheDir)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: cache disabled: %v\n", diag.IOCacheError.ID(), err)
		} else {
			settings.opts.Cache = cache
		}
	}

	u, set, err := loadBuiltins()
	if err != nil {
		return err
	}
	var report *driver.Report
	if settings.ui {
		report, err = runCheckWithUI(cmd.Context(), cmd.ErrOrStderr(), set, u, paths, settings.opts)
	} else {
		report, err = driver.Check(cmd.Context(), set, u, paths, settings.opts)
	}
	if err != nil {
		return err
	}

	bag := report.Diagnostics()
	switch settings.format {
	case "json":
		err = diagfmt.JSON(out, bag, diagfmt.JSONOpts{
			PathMode:     diagfmt.PathModeRelative,
			BaseDir:      settings.baseDir,
			IncludeNotes: settings.notes,
		})
	default:
		err = diagfmt.Pretty(out, bag, diagfmt.PrettyOpts{
			Color:     !color.NoColor,
			PathMode:  diagfmt.PathModeRelative,
			BaseDir:   settings.baseDir,
			ShowNotes: settings.notes,
		})
		if err == nil && settings.resolutions {
			err = printResolutions(out, report)
		}
		if err == nil {
			err = diagfmt.Summary(out, bag, len(report.Units))
		}
	}
	if err != nil {
		return err
	}
	if settings.timings {
		fmt.Fprint(cmd.ErrOrStderr(), report.Timing.Summary())
	}
	if report.HasErrors() {
		return errReported
	}
	return nil
}

// checkInputs merges flags with the manifest. Explicit flags win over
// [check] settings; explicit paths bypass the manifest's unit list.
func checkInputs(cmd *cobra.Command, args []string) (checkSettings, []string, error) {
	var s checkSettings
	var err error
	flags := cmd.Flags()
	if s.format, err = flags.GetString("format"); err != nil {
		return s, nil, err
	}
	s.format = strings.ToLower(s.format)
	if s.format != "pretty" && s.format != "json" {
		return s, nil, fmt.Errorf("unsupported format %q (must be pretty or json)", s.format)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return s, nil, err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return s, nil, err
	}
	s.ui = s.format == "pretty" && shouldUseTUI(mode)
	if s.noCache, err = flags.GetBool("no-cache"); err != nil {
		return s, nil, err
	}
	if s.cacheDir, err = flags.GetString("cache-dir"); err != nil {
		return s, nil, err
	}
	if s.notes, err = flags.GetBool("notes"); err != nil {
		return s, nil, err
	}
	if s.resolutions, err = flags.GetBool("resolutions"); err != nil {
		return s, nil, err
	}
	root := cmd.Root().PersistentFlags()
	if s.timings, err = root.GetBool("timings"); err != nil {
		return s, nil, err
	}
	if s.opts.Jobs, err = root.GetInt("jobs"); err != nil {
		return s, nil, err
	}
	if s.opts.MaxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return s, nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return s, nil, err
	}
	s.baseDir = cwd

	manifest, ok, err := project.LoadManifest(cwd)
	if err != nil {
		return s, nil, err
	}
	if ok {
		cfg := manifest.Config.Check
		if !root.Changed("jobs") {
			s.opts.Jobs = cfg.Jobs
		}
		if !root.Changed("max-diagnostics") {
			s.opts.MaxDiagnostics = cfg.MaxDiagnostics
		}
		if !flags.Changed("cache-dir") {
			s.cacheDir = manifest.CacheDir()
		}
	}

	if len(args) > 0 {
		paths, err := driver.ListUnits(args)
		return s, paths, err
	}
	if !ok {
		return s, nil, fmt.Errorf("no paths given and no %s found", project.ManifestName)
	}
	paths, err := manifest.UnitPaths()
	return s, paths, err
}

func printResolutions(w io.Writer, report *driver.Report) error {
	for _, unit := range report.Units {
		if _, err := fmt.Fprintf(w, "%s (%s)\n", unit.Name, unit.Path); err != nil {
			return err
		}
		for _, r := range unit.Resolved {
			origin := "user"
			if r.Builtin {
				origin = "builtin"
			}
			if _, err := fmt.Fprintf(w, "  call[%d] %s -> %s [%s]\n", r.Index, r.Call, r.Target, origin); err != nil {
				return err
			}
		}
	}
	return nil
}

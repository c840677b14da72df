package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"dalc/internal/diag"
	"dalc/internal/observ"
	"dalc/internal/project"
	"dalc/internal/sema"
	"dalc/internal/symbols"
	"dalc/internal/trace"
	"dalc/internal/types"
	"dalc/internal/version"
)

// DefaultMaxDiagnostics is the per-unit diagnostic cap used when
// Options.MaxDiagnostics is zero.
const DefaultMaxDiagnostics = 200

// Options control a check run.
type Options struct {
	// Jobs bounds the number of units checked at once; 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps diagnostics kept per unit; 0 means DefaultMaxDiagnostics.
	MaxDiagnostics int
	// Cache, when non-nil, is consulted before and filled after each unit.
	Cache *DiskCache
	// Progress, when non-nil, receives a queued event for every unit and
	// then its status changes.
	Progress ProgressSink
}

// ResolvedCall is the serialisable form of a call resolution.
type ResolvedCall struct {
	Index   int
	Call    string
	Target  string
	Builtin bool
}

// UnitResult is the outcome of checking one unit file.
type UnitResult struct {
	Path       string
	Name       string
	Bag        *diag.Bag
	Declared   []string
	Resolved   []ResolvedCall
	Rejected   int
	Unresolved int
	Cached     bool
}

// Report is the outcome of a check run. Units are ordered by path.
type Report struct {
	Units  []UnitResult
	Timing observ.Report
}

// HasErrors reports whether any unit produced an error diagnostic.
func (r *Report) HasErrors() bool {
	for _, u := range r.Units {
		if u.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Diagnostics merges every unit's diagnostics into one sorted bag.
func (r *Report) Diagnostics() *diag.Bag {
	all := diag.NewBag(0)
	for _, u := range r.Units {
		all.Merge(u.Bag)
	}
	all.Sort()
	return all
}

// ListUnits expands paths into unit files. Directories are walked for files
// ending in project.UnitSuffix; plain files are taken as given. The result
// is sorted and free of duplicates.
func ListUnits(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(filepath.Clean(root))
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, project.UnitSuffix) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

// Check loads and checks every unit in paths concurrently. All workers share
// builtins; each unit gets its own registry. The returned error is non-nil
// only when ctx is cancelled; per-unit problems are diagnostics.
func Check(ctx context.Context, builtins *symbols.BuiltinSet, u *types.Universe, paths []string, opts Options) (*Report, error) {
	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeDriver, "check", trace.ParentFrom(ctx))
	defer runSpan.End("")
	runSpan.WithExtra("units", strconv.Itoa(len(paths)))

	timer := observ.NewTimer()
	done := timer.Track("check")

	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = DefaultMaxDiagnostics
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	limit, err := safecast.Conv[int32](min(jobs, max(len(paths), 1)))
	if err != nil {
		limit = 1
	}

	for _, path := range paths {
		emit(opts.Progress, path, StatusQueued)
	}

	results := make([]UnitResult, len(paths))
	g, gctx := errgroup.WithContext(trace.WithParent(ctx, runSpan.ID()))
	g.SetLimit(int(limit))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(opts.Progress, path, StatusChecking)
			res, err := checkUnit(gctx, builtins, u, path, opts, timer)
			if err != nil {
				emit(opts.Progress, path, StatusError)
				return err
			}
			switch {
			case res.Bag.HasErrors():
				emit(opts.Progress, path, StatusError)
			case res.Cached:
				emit(opts.Progress, path, StatusCached)
			default:
				emit(opts.Progress, path, StatusDone)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		done("cancelled")
		return nil, err
	}
	done(fmt.Sprintf("%d units", len(paths)))
	return &Report{Units: results, Timing: timer.Report()}, nil
}

func checkUnit(ctx context.Context, builtins *symbols.BuiltinSet, u *types.Universe, path string, opts Options, timer *observ.Timer) (UnitResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeUnit, "unit", trace.ParentFrom(ctx))
	span.WithExtra("path", path)
	done := timer.Track("unit " + filepath.Base(path))

	bag := diag.NewBag(opts.MaxDiagnostics)
	res := UnitResult{Path: path, Bag: bag}

	src, err := project.LoadUnit(path)
	if err != nil {
		code := diag.ProjInvalidUnit
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			code = diag.IOLoadFileError
		}
		bag.Add(diag.NewError(code, diag.Location{File: path}, err.Error()))
		done("load failed")
		span.End("load failed")
		return res, nil
	}
	res.Name = src.Name

	key := project.Combine(src.Digest, version.Version, builtins.Fingerprint(), strconv.Itoa(opts.MaxDiagnostics))
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, diag.Location{File: path}, "cache read: "+err.Error()))
		}
		if hit {
			decodeDiagnostics(payload.Diagnostics, path, bag)
			res.Declared = payload.Declared
			res.Resolved = payload.Resolved
			res.Rejected = payload.Rejected
			res.Unresolved = payload.Unresolved
			res.Cached = true
			done("cached")
			span.End("cached")
			return res, nil
		}
	}

	reporter := diag.BagReporter{Bag: bag}
	reg := symbols.NewRegistry(builtins)
	unit := sema.BuildUnit(u, src, reporter)
	checked, err := sema.Check(trace.WithParent(ctx, span.ID()), reg, unit, reporter)
	if err != nil {
		done("cancelled")
		span.End("cancelled")
		return res, err
	}

	for _, sig := range checked.Declared {
		res.Declared = append(res.Declared, sig.DetailString())
	}
	for _, r := range checked.Resolved {
		res.Resolved = append(res.Resolved, ResolvedCall{
			Index:   r.Call.Index,
			Call:    r.Call.Key(),
			Target:  r.Target.DetailString(),
			Builtin: r.Builtin,
		})
	}
	res.Rejected = checked.Rejected
	res.Unresolved = checked.Unresolved

	if opts.Cache != nil {
		payload := &DiskPayload{
			Schema:      diskCacheSchemaVersion,
			Name:        res.Name,
			Diagnostics: encodeDiagnostics(bag.Items()),
			Declared:    res.Declared,
			Resolved:    res.Resolved,
			Rejected:    res.Rejected,
			Unresolved:  res.Unresolved,
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, diag.Location{File: path}, "cache write: "+err.Error()))
		}
	}

	done(fmt.Sprintf("%d declared, %d calls", len(res.Declared), len(res.Resolved)+res.Unresolved))
	span.End("")
	return res, nil
}

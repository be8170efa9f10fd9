// Package runner lints a set of templates: it resolves the checks, finds
// the files, parses each one and runs the checks in parallel.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"liquidlint/internal/config"
	"liquidlint/internal/diag"
	"liquidlint/internal/finder"
	"liquidlint/internal/lint"
	"liquidlint/internal/observ"
	"liquidlint/internal/source"
	"liquidlint/internal/trace"
)

// Options configure one run.
type Options struct {
	// Config is the merged configuration. Required.
	Config *config.Config
	// Registry defaults to lint.Default().
	Registry *lint.Registry
	Select   lint.SelectOptions

	// Files are paths, directories or glob patterns.
	Files []string
	// Exclude adds to the configuration's exclude globs.
	Exclude []string

	// Stdin, when set, is linted instead of Files under StdinPath.
	Stdin     io.Reader
	StdinPath string

	// Jobs bounds parallelism; <= 0 means GOMAXPROCS.
	Jobs int

	Cache    *DiskCache
	Progress ProgressSink
	Timer    *observ.Timer
}

// Run lints the requested templates. Errors are run-level failures
// (no checks, bad path, unreadable stdin); per-file problems end up as
// issues in the report.
func Run(ctx context.Context, opts Options) (*diag.Report, error) {
	if opts.Config == nil {
		return nil, errors.New("runner: nil config")
	}
	reg := opts.Registry
	if reg == nil {
		reg = lint.Default()
	}
	ctx, span := trace.Start(ctx, trace.ScopePass, "lint")
	defer span.End("")

	phase := opts.Timer.Begin("select")
	selector, err := lint.NewSelector(reg, opts.Config, opts.Select)
	if err != nil {
		opts.Timer.End(phase, "")
		return nil, err
	}
	opts.Timer.End(phase, fmt.Sprintf("%d checks", len(selector.Names())))

	fileSet := source.NewFileSet()
	var jobs []job
	if opts.Stdin != nil {
		name := opts.StdinPath
		if name == "" {
			name = "-"
		}
		id, err := fileSet.LoadReader(name, opts.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		jobs = append(jobs, job{path: name, file: fileSet.Get(id)})
	} else {
		phase = opts.Timer.Begin("discover")
		files, err := discover(ctx, opts)
		if err != nil {
			opts.Timer.End(phase, "")
			return nil, err
		}
		opts.Timer.End(phase, fmt.Sprintf("%d files", len(files)))
		jobs = preload(fileSet, files)
	}

	paths := make([]string, len(jobs))
	for i, j := range jobs {
		paths[i] = j.path
		emit(opts.Progress, Event{File: j.path, Stage: StageLoad, Status: StatusQueued})
	}

	phase = opts.Timer.Begin("lint")
	results, err := lintAll(ctx, opts, selector, jobs)
	var total int
	for _, r := range results {
		total += len(r)
	}
	opts.Timer.End(phase, fmt.Sprintf("%d issues", total))
	if err != nil {
		return nil, err
	}

	issues := make([]diag.Issue, 0, total)
	for _, r := range results {
		issues = append(issues, r...)
	}
	span.WithExtra("files", fmt.Sprint(fileSet.Len())).WithExtra("issues", fmt.Sprint(total))
	return diag.NewReport(issues, paths), nil
}

type job struct {
	path    string
	file    *source.File
	loadErr error
}

func discover(ctx context.Context, opts Options) ([]string, error) {
	_, span := trace.Start(ctx, trace.ScopePass, "discover")
	excludes := append(append([]string(nil), opts.Config.Exclude()...), opts.Exclude...)
	files, err := finder.Find(ctx, opts.Files, excludes)
	span.End(fmt.Sprintf("%d files", len(files)))
	return files, err
}

// preload reads every file up front; FileSet is not safe for concurrent Add.
func preload(fileSet *source.FileSet, files []string) []job {
	jobs := make([]job, 0, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			jobs = append(jobs, job{path: path, loadErr: err})
			continue
		}
		jobs = append(jobs, job{path: path, file: fileSet.Get(id)})
	}
	return jobs
}

func lintAll(ctx context.Context, opts Options, selector *lint.Selector, jobs []job) ([][]diag.Issue, error) {
	results := make([][]diag.Issue, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}
	n := opts.Jobs
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}

	cfgDigest := opts.Config.Digest()
	checkNames := selector.Names()

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(n, len(jobs)))
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = lintOne(gctx, opts, selector, j, cfgDigest, checkNames)
			return nil
		})
	}
	return results, g.Wait()
}

func lintOne(ctx context.Context, opts Options, selector *lint.Selector, j job, cfgDigest [32]byte, checkNames []string) []diag.Issue {
	start := time.Now()
	ctx, span := trace.Start(trace.WithFile(ctx, j.path), trace.ScopeFile, "file:"+j.path)
	defer span.End("")

	if j.loadErr != nil {
		emit(opts.Progress, Event{File: j.path, Stage: StageLoad, Status: StatusError, Err: j.loadErr, Elapsed: time.Since(start)})
		return []diag.Issue{diag.NewError("", j.path, 0, "failed to load file: "+j.loadErr.Error())}
	}

	useCache := opts.Cache != nil && j.file.Flags&source.FileVirtual == 0
	var key [32]byte
	if useCache {
		key = CacheKey(j.path, j.file.Hash, cfgDigest, checkNames)
		if issues, ok, err := opts.Cache.Get(key, j.path); err == nil && ok {
			span.WithExtra("cache", "hit")
			emit(opts.Progress, Event{File: j.path, Stage: StageLint, Status: StatusCached, Issues: len(issues), Elapsed: time.Since(start)})
			return issues
		}
	}

	emit(opts.Progress, Event{File: j.path, Stage: StageLoad, Status: StatusWorking})
	doc, err := lint.NewDocumentFromFile(j.file, lint.DocumentOptions{
		File:            j.path,
		SkipFrontmatter: opts.Config.SkipFrontmatter(),
	})
	var issues []diag.Issue
	if err != nil {
		var perr *lint.ParseError
		if !errors.As(err, &perr) {
			emit(opts.Progress, Event{File: j.path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(start)})
			return []diag.Issue{diag.NewError("", j.path, 0, err.Error())}
		}
		issues = []diag.Issue{perr.Issue(j.path)}
	} else {
		emit(opts.Progress, Event{File: j.path, Stage: StageLint, Status: StatusWorking})
		issues = runChecks(ctx, opts.Timer, selector.ForFile(j.path), doc)
	}

	if useCache {
		if err := opts.Cache.Put(key, issues); err != nil {
			trace.PointCtx(ctx, trace.ScopeFile, "cache-write-failed", err.Error())
		}
	}
	status := StatusDone
	if len(issues) > 0 && err != nil {
		status = StatusError
	}
	span.WithExtra("issues", fmt.Sprint(len(issues)))
	emit(opts.Progress, Event{File: j.path, Stage: StageLint, Status: status, Issues: len(issues), Elapsed: time.Since(start)})
	return issues
}

func runChecks(ctx context.Context, timer *observ.Timer, checks []lint.Linter, doc *lint.Document) []diag.Issue {
	bag := diag.NewBag(0)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	for _, check := range checks {
		checkCtx, span := trace.Start(ctx, trace.ScopeNode, "check:"+check.Name())
		if ca, ok := check.(lint.ContextAware); ok {
			ca.SetContext(checkCtx)
		}
		start := time.Now()
		found := check.Run(doc)
		timer.AddCheck(check.Name(), time.Since(start))
		span.End(fmt.Sprintf("%d issues", len(found)))
		for _, it := range found {
			reporter.Report(it)
		}
	}
	return bag.Items()
}

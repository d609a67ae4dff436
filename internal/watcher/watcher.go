// Package watcher implements the scan-classify-relocate pipeline and the
// periodic scheduler that drives it.
//
// A Processor polls the configured watch folder at a fixed interval. Each
// cycle re-provisions the destination folders, scans for files matching the
// configured glob, classifies every file by name, and routes it through the
// matching handler. Files held by another writer are skipped and retried on
// a later cycle; per-file failures are logged and never abort the cycle or
// the scheduler.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/filerelay/internal/config"
	"github.com/harrison/filerelay/internal/fileutil"
	"github.com/harrison/filerelay/internal/journal"
	"github.com/harrison/filerelay/internal/logger"
	"github.com/harrison/filerelay/internal/paths"
)

// ProcessedExtension replaces a test-marker file's extension to signal that
// the watcher saw it.
const ProcessedExtension = ".processed"

// ConfigProvider supplies the current configuration. It is called at the
// start of every cycle so configuration changes take effect without a
// restart; only the scan interval is read once at Start.
type ConfigProvider func() *config.Config

// LockChecker reports whether a file is held by another writer and
// therefore unsafe to relocate.
type LockChecker interface {
	IsLocked(path string) bool
}

// watchedFile is a filesystem entry observed during a scan. It lives for a
// single cycle.
type watchedFile struct {
	path string
	base string
	ext  string
}

// folderSet holds the resolved destination roles for one cycle. It is
// recomputed every cycle rather than cached so external configuration or
// folder changes take effect between scans.
type folderSet struct {
	watch      string
	processing string
	errdir     string
}

// Processor wires the pipeline together and owns the periodic scheduler.
// Construct with New; Start and Stop manage the scheduling lifecycle.
type Processor struct {
	provider ConfigProvider
	resolver *paths.Resolver
	locks    LockChecker
	log      logger.Logger
	journal  journal.Recorder

	mu      sync.Mutex
	running bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// Option customizes a Processor.
type Option func(*Processor)

// WithLockChecker overrides the lock probe, primarily for tests.
func WithLockChecker(lc LockChecker) Option {
	return func(p *Processor) { p.locks = lc }
}

// WithJournal sets the transfer journal recorder. Defaults to a discarding
// recorder.
func WithJournal(rec journal.Recorder) Option {
	return func(p *Processor) { p.journal = rec }
}

// WithResolver overrides the special-folder token resolver.
func WithResolver(r *paths.Resolver) Option {
	return func(p *Processor) { p.resolver = r }
}

// New creates a Processor. provider must not be nil; log may be nil, in
// which case output is discarded.
func New(provider ConfigProvider, log logger.Logger, opts ...Option) *Processor {
	if log == nil {
		log = logger.Nop{}
	}
	p := &Processor{
		provider: provider,
		resolver: paths.NewResolver(),
		locks:    defaultLockChecker{},
		log:      log,
		journal:  journal.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start provisions the configured folders and begins periodic scanning at
// the configured interval. Calling Start on a running Processor is a no-op.
// The interval is captured here; later configuration changes to it require
// a restart, unlike the folder paths which are re-read every cycle.
func (p *Processor) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	cfg := p.provider()
	if cfg == nil {
		return errors.New("configuration provider returned nil")
	}
	interval := cfg.ScanInterval
	if interval <= 0 {
		return fmt.Errorf("scan interval must be > 0, got %v", interval)
	}

	folders, err := p.resolveFolders(cfg)
	if err != nil {
		return err
	}
	p.provisionFolders(folders)

	p.done = make(chan struct{})
	p.running = true

	p.wg.Add(1)
	go p.run(interval)

	p.log.Infof("watcher started: scanning every %v", interval)
	return nil
}

// Stop ceases scheduling further cycles. A cycle already in progress is
// allowed to finish; Stop blocks until it has. Calling Stop on a stopped
// Processor is a no-op.
func (p *Processor) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.done)
	p.mu.Unlock()

	p.wg.Wait()
	p.log.Infof("watcher stopped")
}

// run is the scheduler loop. A slow filesystem delays the next tick rather
// than overlapping with it: cycles never run concurrently.
func (p *Processor) run(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.RunCycle()
		}
	}
}

// RunCycle executes a single scan-and-process cycle synchronously. It is
// called by the scheduler on every tick and exported so callers (and tests)
// can trigger a cycle without waiting on real time.
func (p *Processor) RunCycle() {
	cycleID := uuid.NewString()

	cfg := p.provider()
	if cfg == nil {
		p.log.Errorf("cycle %s: configuration provider returned nil", cycleID)
		return
	}

	folders, err := p.resolveFolders(cfg)
	if err != nil {
		p.log.Errorf("cycle %s: %v", cycleID, err)
		return
	}

	// Folders may have been removed externally since the last cycle.
	if !p.provisionFolders(folders) {
		p.log.Warnf("cycle %s: watch folder unavailable, skipping scan", cycleID)
		return
	}

	files, err := fileutil.ScanFolder(folders.watch, cfg.FilePattern)
	if err != nil {
		if errors.Is(err, fileutil.ErrMissingFolder) {
			p.log.Warnf("cycle %s: watch folder %s missing, skipping cycle", cycleID, folders.watch)
		} else {
			p.log.Errorf("cycle %s: scan failed: %v", cycleID, err)
		}
		return
	}

	if len(files) == 0 {
		p.log.Tracef("cycle %s: no files matching %s in %s", cycleID, cfg.FilePattern, folders.watch)
		return
	}

	p.log.Debugf("cycle %s: %d file(s) matching %s", cycleID, len(files), cfg.FilePattern)
	for _, path := range files {
		p.dispatch(cycleID, folders, newWatchedFile(path))
	}
}

// resolveFolders expands special-folder tokens in the configured paths.
// A path that resolves to empty is a configuration fault, not a transient
// condition, so it is an error rather than a skipped cycle.
func (p *Processor) resolveFolders(cfg *config.Config) (folderSet, error) {
	var folders folderSet
	var err error

	if folders.watch, err = p.resolver.Resolve(cfg.WatchFolder); err != nil {
		return folders, fmt.Errorf("failed to resolve watch folder: %w", err)
	}
	if folders.processing, err = p.resolver.Resolve(cfg.ProcessingFolder); err != nil {
		return folders, fmt.Errorf("failed to resolve processing folder: %w", err)
	}
	if folders.errdir, err = p.resolver.Resolve(cfg.ErrorFolder); err != nil {
		return folders, fmt.Errorf("failed to resolve error folder: %w", err)
	}

	if folders.watch == "" || folders.processing == "" || folders.errdir == "" {
		return folders, fmt.Errorf("configuration produced an empty folder path: %+v", folders)
	}
	return folders, nil
}

// provisionFolders ensures all three folders exist. Errors are logged per
// folder and do not block attempting the remaining folders. Returns false
// when the watch folder could not be provisioned, in which case the scan
// must not proceed.
func (p *Processor) provisionFolders(folders folderSet) bool {
	watchOK := true
	if err := fileutil.EnsureDir(folders.watch); err != nil {
		p.log.Errorf("failed to provision watch folder: %v", err)
		watchOK = false
	}
	if err := fileutil.EnsureDir(folders.processing); err != nil {
		p.log.Errorf("failed to provision processing folder: %v", err)
	}
	if err := fileutil.EnsureDir(folders.errdir); err != nil {
		p.log.Errorf("failed to provision error folder: %v", err)
	}
	return watchOK
}

func newWatchedFile(path string) watchedFile {
	base, ext := fileutil.SplitName(filepath.Base(path))
	return watchedFile{path: path, base: base, ext: ext}
}

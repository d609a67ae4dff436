package watcher

import (
	"os"
	"path/filepath"

	"github.com/harrison/filerelay/internal/classify"
	"github.com/harrison/filerelay/internal/filelock"
	"github.com/harrison/filerelay/internal/fileutil"
	"github.com/harrison/filerelay/internal/journal"
)

// defaultLockChecker adapts filelock.Checker to the LockChecker interface.
type defaultLockChecker struct{}

func (defaultLockChecker) IsLocked(path string) bool {
	var c filelock.Checker
	return c.IsLocked(path)
}

// dispatch classifies a file and routes it to the matching handler. All
// three handlers share the same shape: lock check, compute a collision-safe
// target, transfer, record the outcome.
func (p *Processor) dispatch(cycleID string, folders folderSet, file watchedFile) {
	decision := classify.Classify(file.base)
	p.log.Tracef("cycle %s: %s classified as %s", cycleID, file.path, decision)

	switch decision {
	case classify.TestMarker:
		p.handleTestMarker(cycleID, file)
	case classify.Malformed:
		p.handleMove(cycleID, file, folders.errdir, decision)
	default:
		p.handleMove(cycleID, file, folders.processing, decision)
	}
}

// handleMove relocates a file into destDir under a collision-safe name.
// It serves both the normal and the malformed paths, which differ only in
// destination. A locked file is skipped silently and retried next cycle;
// any other failure is logged and the source is left in place.
func (p *Processor) handleMove(cycleID string, file watchedFile, destDir string, decision classify.Decision) {
	if p.locks.IsLocked(file.path) {
		p.log.Debugf("cycle %s: %s is locked, retrying next cycle", cycleID, file.path)
		p.record(cycleID, file, "", decision, journal.OutcomeSkipped, nil)
		return
	}

	dst, err := fileutil.AvailableName(destDir, file.base+file.ext)
	if err != nil {
		p.log.Errorf("cycle %s: no destination name for %s: %v", cycleID, file.path, err)
		p.record(cycleID, file, "", decision, journal.OutcomeFailed, err)
		return
	}

	if err := fileutil.MoveFile(file.path, dst); err != nil {
		p.log.Errorf("cycle %s: failed to move %s: %v", cycleID, file.path, err)
		p.record(cycleID, file, dst, decision, journal.OutcomeFailed, err)
		return
	}

	p.log.Infof("cycle %s: moved %s to %s", cycleID, file.path, dst)
	p.record(cycleID, file, dst, decision, journal.OutcomeMoved, nil)
}

// handleTestMarker confirms the watcher is alive without triggering real
// processing: the marker file is copied alongside itself with the
// .processed extension and the original is deleted afterwards. Copy before
// delete is deliberate: the confirmation file appears before the probe
// disappears.
func (p *Processor) handleTestMarker(cycleID string, file watchedFile) {
	if p.locks.IsLocked(file.path) {
		p.log.Debugf("cycle %s: %s is locked, retrying next cycle", cycleID, file.path)
		p.record(cycleID, file, "", classify.TestMarker, journal.OutcomeSkipped, nil)
		return
	}

	dir := filepath.Dir(file.path)
	dst, err := fileutil.AvailableName(dir, file.base+ProcessedExtension)
	if err != nil {
		p.log.Errorf("cycle %s: no destination name for %s: %v", cycleID, file.path, err)
		p.record(cycleID, file, "", classify.TestMarker, journal.OutcomeFailed, err)
		return
	}

	if err := fileutil.CopyFile(file.path, dst); err != nil {
		p.log.Errorf("cycle %s: failed to copy %s: %v", cycleID, file.path, err)
		p.record(cycleID, file, dst, classify.TestMarker, journal.OutcomeFailed, err)
		return
	}

	if err := os.Remove(file.path); err != nil {
		p.log.Errorf("cycle %s: failed to remove test marker %s: %v", cycleID, file.path, err)
		p.record(cycleID, file, dst, classify.TestMarker, journal.OutcomeFailed, err)
		return
	}

	p.log.Infof("cycle %s: test marker %s acknowledged as %s", cycleID, file.path, dst)
	p.record(cycleID, file, dst, classify.TestMarker, journal.OutcomeCopied, nil)
}

// record journals a per-file outcome. Journal failures are logged and
// swallowed: the journal is an audit aid and must never affect the
// pipeline.
func (p *Processor) record(cycleID string, file watchedFile, dst string, decision classify.Decision, outcome string, cause error) {
	entry := journal.Entry{
		CycleID:        cycleID,
		SourcePath:     file.path,
		DestPath:       dst,
		Classification: decision.String(),
		Outcome:        outcome,
	}
	if cause != nil {
		entry.ErrorMessage = cause.Error()
	}
	if err := p.journal.Record(entry); err != nil {
		p.log.Warnf("cycle %s: failed to journal transfer for %s: %v", cycleID, file.path, err)
	}
}

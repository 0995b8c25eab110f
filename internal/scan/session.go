package scan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"mkvscan/internal/media/ffprobe"
	"mkvscan/internal/media/info"
)

// Observer is invoked after each file finishes probing, successful or not.
type Observer func(record info.Record)

// Summary aggregates the outcome of one AddFiles batch.
type Summary struct {
	BatchID string
	Scanned int
	Failed  int
	// MissingBinary is set when at least one failure was caused by the
	// ffprobe binary being absent, so the shell can warn once globally.
	MissingBinary bool
}

// Options configures a Session.
type Options struct {
	Prober   ffprobe.Prober
	Logger   *slog.Logger
	Observer Observer
}

// Session holds an ordered collection of records keyed by absolute path.
// Re-adding a path replaces its record in place.
type Session struct {
	prober   ffprobe.Prober
	logger   *slog.Logger
	observer Observer

	mu      sync.Mutex
	records []info.Record
	index   map[string]int
}

// NewSession constructs a Session. Options.Prober is required.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Session{
		prober:   opts.Prober,
		logger:   logger,
		observer: opts.Observer,
		index:    make(map[string]int),
	}
}

// AddFiles probes and parses each path sequentially. Per-file failures never
// abort the batch; they become rows with Err set and TierUnknown. The only
// error returned is context cancellation.
func (s *Session) AddFiles(ctx context.Context, paths []string) (Summary, error) {
	summary := Summary{BatchID: uuid.NewString()}
	s.logger.Info("scan batch started", "batch_id", summary.BatchID, "files", len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			s.logger.Info("scan batch canceled", "batch_id", summary.BatchID, "scanned", summary.Scanned)
			return summary, err
		}

		record, binaryMissing := s.probeOne(ctx, path)
		if record.Failed() && ctx.Err() != nil {
			// In-flight probe aborted by cancellation; do not record it as a
			// per-file failure.
			s.logger.Info("scan batch canceled", "batch_id", summary.BatchID, "scanned", summary.Scanned)
			return summary, ctx.Err()
		}

		s.upsert(record)
		summary.Scanned++
		if record.Failed() {
			summary.Failed++
			if binaryMissing {
				summary.MissingBinary = true
			}
			s.logger.Warn("probe failed", "batch_id", summary.BatchID, "file", record.Path, "error", record.Err)
		} else {
			s.logger.Debug("probe succeeded", "batch_id", summary.BatchID, "file", record.Path, "tier", record.Tier.String())
		}
		if s.observer != nil {
			s.observer(record)
		}
	}

	s.logger.Info("scan batch finished", "batch_id", summary.BatchID, "scanned", summary.Scanned, "failed", summary.Failed)
	return summary, nil
}

// probeOne probes and parses a single file. The second return reports whether
// the failure was caused by a missing ffprobe binary.
func (s *Session) probeOne(ctx context.Context, path string) (info.Record, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return failedRecord(path, err), false
	}

	result, err := s.prober.Inspect(ctx, abs)
	if err != nil {
		var probeErr *ffprobe.ProbeError
		missing := errors.As(err, &probeErr) && probeErr.MissingBinary()
		return failedRecord(abs, err), missing
	}

	record, err := info.Parse(abs, result)
	if err != nil {
		return failedRecord(abs, err), false
	}

	if fi, err := os.Stat(abs); err == nil {
		record.SizeBytes = fi.Size()
	}
	return record, false
}

func failedRecord(path string, err error) info.Record {
	return info.Record{Path: path, Tier: info.TierUnknown, Err: err.Error()}
}

func (s *Session) upsert(record info.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index[record.Path]; ok {
		s.records[i] = record
		return
	}
	s.index[record.Path] = len(s.records)
	s.records = append(s.records, record)
}

// Clear empties the collection.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.index = make(map[string]int)
}

// Records returns a snapshot of the ordered records.
func (s *Session) Records() []info.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]info.Record, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// Len reports the number of rows.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Package cachesync populates the cache from the durable store: a detail hash
// for every artwork and a creation-time ranking for every productive artist.
package cachesync

import (
	"context"
	"fmt"
	"time"

	"github.com/artvault/artvault/pkg/logger"
	"github.com/artvault/artvault/pkg/records"
	"github.com/artvault/artvault/pkg/store"
	"github.com/artvault/artvault/pkg/telemetry"
)

const (
	ProcedureArtworkDetails    = "artwork_details"
	ProcedureProductiveArtists = "productive_artists"

	// DefaultProductiveThreshold is the artwork count an artist must exceed to
	// get a ranking.
	DefaultProductiveThreshold = 3
)

// Mode decides what a sync does when one entity fails.
type Mode string

const (
	// ModeAllOrNothing aborts on the first failure.
	ModeAllOrNothing Mode = "all-or-nothing"
	// ModePartial records the failure and carries on with the next entity.
	ModePartial Mode = "partial"
)

// ParseMode accepts the configured mode name; empty means ModeAllOrNothing.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAllOrNothing:
		return ModeAllOrNothing, nil
	case ModePartial:
		return ModePartial, nil
	default:
		return "", fmt.Errorf("unknown sync mode %q", s)
	}
}

// Reader is the read side of the durable store the engine needs.
type Reader interface {
	ListArtworks(ctx context.Context) ([]records.Artwork, error)
	ListArtists(ctx context.Context) ([]records.Artist, error)
	GetArtwork(ctx context.Context, id string) (*records.Artwork, error)
}

type Options struct {
	// ProductiveThreshold defaults to DefaultProductiveThreshold when not positive.
	ProductiveThreshold int
	Mode                Mode
	// Metrics may be nil.
	Metrics *telemetry.SyncMetrics
}

// Engine runs the sync procedures. Procedures are sequential and issue one
// cache round trip per entity; the engine holds no locks, so concurrent
// writers to the same keys get last-writer-wins.
type Engine struct {
	reader    Reader
	cache     *store.Store
	threshold int
	mode      Mode
	metrics   *telemetry.SyncMetrics
}

func New(reader Reader, cache *store.Store, opts Options) *Engine {
	threshold := opts.ProductiveThreshold
	if threshold <= 0 {
		threshold = DefaultProductiveThreshold
	}
	mode := opts.Mode
	if mode == "" {
		mode = ModeAllOrNothing
	}
	return &Engine{
		reader:    reader,
		cache:     cache,
		threshold: threshold,
		mode:      mode,
		metrics:   opts.Metrics,
	}
}

func (e *Engine) Mode() Mode {
	return e.mode
}

func (e *Engine) Threshold() int {
	return e.threshold
}

// Run performs Detail Sync and then Productive-Artist Index Sync. It stops at
// the first procedure that returns an error and returns the reports gathered
// so far.
func (e *Engine) Run(ctx context.Context) ([]*Report, error) {
	reports := make([]*Report, 0, 2)

	details, err := e.SyncArtworkDetails(ctx)
	reports = append(reports, details)
	if err != nil {
		return reports, err
	}

	productive, err := e.SyncProductiveArtists(ctx)
	reports = append(reports, productive)
	if err != nil {
		return reports, err
	}
	return reports, nil
}

// procedure wraps the bookkeeping shared by every sync procedure: logging,
// metrics and the last-sync marker.
func (e *Engine) procedure(ctx context.Context, name string, body func(ctx context.Context, report *Report) error) (*Report, error) {
	ctx = logger.AddValuesToContext(ctx, map[string]interface{}{
		"procedure": name,
		"mode":      string(e.mode),
	})
	log := logger.Logger(ctx)
	log.Info("starting cache sync")

	report := &Report{Procedure: name, Mode: e.mode, StartedAt: time.Now()}
	err := body(ctx, report)
	report.FinishedAt = time.Now()

	e.metrics.RecordSync(ctx, name, report.Synced, report.Skipped, report.Failed, report.Duration(), firstErr(err, report.Err()))

	fields := map[string]interface{}{
		"synced":   report.Synced,
		"skipped":  report.Skipped,
		"failed":   report.Failed,
		"duration": report.Duration().String(),
	}
	if err != nil {
		log.WithFields(fields).WithError(err).Error("cache sync failed")
		return report, err
	}

	if report.Failed > 0 {
		log.WithFields(fields).Warn("cache sync finished with failures")
		return report, nil
	}

	if metaErr := e.cache.Meta.SetLastSync(ctx, name, report.FinishedAt); metaErr != nil {
		log.WithError(metaErr).Warn("failed to record last sync time")
	}
	log.WithFields(fields).Info("cache sync finished")
	return report, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

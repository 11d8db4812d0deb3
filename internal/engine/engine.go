// Package engine drives the incremental analytics cycle: list the sermon
// catalog, diff it against the processed set, fetch transcript chunks in
// batches, and fold each new sermon's citations into the aggregates and
// occurrence shards. All mutable state lives in the Aggregates value the
// engine owns for the run; nothing is package-global.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jwheeler-fc/sermonlytics/internal/analytics"
	"github.com/jwheeler-fc/sermonlytics/internal/api"
	"github.com/jwheeler-fc/sermonlytics/internal/citation"
	"github.com/jwheeler-fc/sermonlytics/internal/config"
	"github.com/jwheeler-fc/sermonlytics/internal/dates"
	"github.com/jwheeler-fc/sermonlytics/internal/store"
)

// Engine ties the API client, the shard store, and the aggregate state
// together for one run.
type Engine struct {
	cfg     config.Config
	client  *api.Client
	store   *store.Store
	matcher *citation.Matcher
	logger  *slog.Logger
}

// New builds an engine. A nil logger discards engine logs.
func New(cfg config.Config, client *api.Client, st *store.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		cfg:     cfg,
		client:  client,
		store:   st,
		matcher: citation.NewMatcher(),
		logger:  logger,
	}
}

// Report summarizes one incremental run.
type Report struct {
	TotalListed      int `json:"total_listed"`
	AlreadyProcessed int `json:"already_processed"`
	Processed        int `json:"processed"`
	Skipped          int `json:"skipped"`
	Failed           int `json:"failed"`
	NewReferences    int `json:"new_references"`
}

// Run executes one incremental cycle. A listing failure is fatal; a
// per-sermon chunk fetch failure is logged and the sermon is retried on the
// next run. When the catalog holds nothing new, no file is touched.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	aggs, err := analytics.Load(e.cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	processed, err := analytics.LoadProcessed(e.cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	sermons, err := e.client.ListSermons(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sermons: %w", err)
	}

	report := &Report{TotalListed: len(sermons)}

	var pending []api.Sermon
	for _, sermon := range sermons {
		if processed.Contains(sermon.VideoID) {
			report.AlreadyProcessed++
			continue
		}
		pending = append(pending, sermon)
	}

	e.logger.Info("catalog diffed",
		"listed", len(sermons),
		"processed", report.AlreadyProcessed,
		"new", len(pending))

	if len(pending) == 0 {
		return report, nil
	}

	before := aggs.Summary.TotalReferences

	batchSize := e.cfg.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}
	for start := 0; start < len(pending); start += batchSize {
		end := start + batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		if err := e.runBatch(ctx, batch, aggs, processed, report); err != nil {
			return nil, err
		}

		if err := aggs.Save(e.cfg.OutputDir, time.Now()); err != nil {
			return nil, err
		}
		if err := processed.Save(e.cfg.OutputDir); err != nil {
			return nil, err
		}

		if end < len(pending) {
			if err := pause(ctx, e.cfg.BatchPause); err != nil {
				return nil, err
			}
		}
	}

	index, err := e.store.ReferenceIndex()
	if err != nil {
		return nil, err
	}
	if err := analytics.WriteReferenceIndex(e.cfg.OutputDir, index); err != nil {
		return nil, err
	}

	report.NewReferences = aggs.Summary.TotalReferences - before
	e.logger.Info("run complete",
		"processed", report.Processed,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"new_references", report.NewReferences)
	return report, nil
}

// runBatch fetches every chunk list in the batch concurrently, then merges
// the results strictly in listing order so aggregate files come out the same
// no matter how the fetches interleave.
func (e *Engine) runBatch(ctx context.Context, batch []api.Sermon, aggs *analytics.Aggregates, processed *analytics.ProcessedSet, report *Report) error {
	chunks := e.fetchBatch(ctx, batch)

	for i, sermon := range batch {
		if err := ctx.Err(); err != nil {
			return err
		}
		if chunks[i].err != nil {
			report.Failed++
			e.logger.Warn("chunk fetch failed, will retry next run",
				"sermon", sermon.VideoID, "error", chunks[i].err)
			continue
		}
		if len(chunks[i].chunks) == 0 {
			report.Skipped++
			e.logger.Info("sermon has no chunks yet, will retry next run",
				"sermon", sermon.VideoID)
			continue
		}
		if err := e.ingest(aggs, sermon, chunks[i].chunks); err != nil {
			return err
		}
		processed.Add(sermon.VideoID)
		report.Processed++
	}
	return nil
}

type fetchResult struct {
	chunks []api.Chunk
	err    error
}

func (e *Engine) fetchBatch(ctx context.Context, batch []api.Sermon) []fetchResult {
	results := make([]fetchResult, len(batch))

	var wg sync.WaitGroup
	for i, sermon := range batch {
		wg.Add(1)
		go func(idx int, videoID string) {
			defer wg.Done()
			// Each goroutine writes only to its own index.
			results[idx].chunks, results[idx].err = e.client.GetChunks(ctx, videoID)
		}(i, sermon.VideoID)
	}
	wg.Wait()

	return results
}

// ingest analyzes one sermon and writes its statistics into the aggregates
// and the three shard namespaces.
func (e *Engine) ingest(aggs *analytics.Aggregates, sermon api.Sermon, chunks []api.Chunk) error {
	stats := analytics.AnalyzeSermon(e.matcher, sermon.VideoID, chunks)

	rec := analytics.SermonRecord{Sermon: sermon, ChunkCount: len(chunks)}
	aggs.MergeSermon(rec, stats)

	if when, ok := dates.Parse(string(sermon.PublishDate)); ok {
		aggs.Timeline.Add(sermon.VideoID, when)
	} else if sermon.PublishDate != "" {
		e.logger.Warn("unparsable publish date, sermon excluded from timeline",
			"sermon", sermon.VideoID, "publish_date", string(sermon.PublishDate))
	}

	for _, key := range stats.OccurrenceKeys() {
		if err := e.store.UpsertReference(key, stats.Occurrences(key), sermon); err != nil {
			return err
		}
	}
	for _, book := range stats.BookCounts.Keys() {
		if err := e.store.UpsertBook(book, sermon, stats.BookOccurrences(book)); err != nil {
			return err
		}
	}
	for _, chapter := range stats.ChapterCounts.Keys() {
		if err := e.store.UpsertChapter(chapter, sermon, stats.ChapterOccurrences(chapter)); err != nil {
			return err
		}
	}

	e.logger.Info("sermon ingested",
		"sermon", sermon.VideoID,
		"chunks", len(chunks),
		"references", stats.TotalReferences)
	return nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

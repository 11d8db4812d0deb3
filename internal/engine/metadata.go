package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jwheeler-fc/sermonlytics/internal/analytics"
	"github.com/jwheeler-fc/sermonlytics/internal/dates"
	"github.com/jwheeler-fc/sermonlytics/internal/store"
)

// Metadata refreshes sermon metadata and the timeline from the catalog
// listing alone, without fetching any transcript chunks. Already-analyzed
// sermons keep their chunk counts; listing-only sermons get a zero count
// until a full run picks them up. Only sermons.json and timeline.json are
// rewritten.
func (e *Engine) Metadata(ctx context.Context) (int, error) {
	aggs, err := analytics.Load(e.cfg.OutputDir)
	if err != nil {
		return 0, err
	}

	sermons, err := e.client.ListSermons(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing sermons: %w", err)
	}

	added := 0
	for _, sermon := range sermons {
		rec, known := aggs.Sermons[sermon.VideoID]
		if !known {
			added++
		}
		rec.Sermon = sermon
		aggs.Sermons[sermon.VideoID] = rec

		if when, ok := dates.Parse(string(sermon.PublishDate)); ok {
			aggs.Timeline.Add(sermon.VideoID, when)
		}
	}

	if err := store.WriteJSON(filepath.Join(e.cfg.OutputDir, analytics.SermonsFile), aggs.Sermons); err != nil {
		return 0, err
	}
	if err := store.WriteJSON(filepath.Join(e.cfg.OutputDir, analytics.TimelineFile), aggs.Timeline); err != nil {
		return 0, err
	}

	e.logger.Info("metadata refreshed", "listed", len(sermons), "added", added)
	return added, nil
}

package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jwheeler-fc/sermonlytics/internal/store"
)

// Static data file names under the bible data directory.
const (
	BibleStatsFile = "bible_stats.json"
	BibleBooksFile = "bible_books.json"
	bookRefsDir    = "books"
)

// FetchBibleData pulls the book-level reference statistics from the API and
// writes them as static JSON under dir: the corpus-wide stats, the per-book
// count list, and one reference file per book. A failing book is logged and
// skipped so one gap does not abort the whole export. Returns the number of
// book files written.
func (e *Engine) FetchBibleData(ctx context.Context, dir string) (int, error) {
	if err := os.MkdirAll(filepath.Join(dir, bookRefsDir), 0755); err != nil {
		return 0, fmt.Errorf("creating bible data dir: %w", err)
	}

	stats, err := e.client.BibleStats(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching bible stats: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, BibleStatsFile), stats, 0644); err != nil {
		return 0, err
	}

	books, err := e.client.BibleBooks(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching bible books: %w", err)
	}
	if err := store.WriteJSON(filepath.Join(dir, BibleBooksFile), books); err != nil {
		return 0, err
	}

	written := 0
	for _, book := range books {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		refs, err := e.client.BookReferences(ctx, book.Book)
		if err != nil {
			e.logger.Warn("skipping book references",
				"book", book.Book, "error", err)
			continue
		}
		path := filepath.Join(dir, bookRefsDir, store.SafeKey(book.Book)+".json")
		if err := os.WriteFile(path, refs, 0644); err != nil {
			return written, err
		}
		written++
	}

	e.logger.Info("bible data saved", "dir", dir, "books", written)
	return written, nil
}

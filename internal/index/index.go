// Package index maintains a derived SQLite view of the occurrence shards
// for ad-hoc lookups. The JSON shard files stay canonical; the database is
// ephemeral and is rebuilt from them on demand.
package index

import (
	"database/sql"
	"fmt"

	"github.com/jwheeler-fc/sermonlytics/internal/store"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite occurrence index.
type DB struct {
	db *sql.DB
}

const selectOccFields = `reference, book, sermon_id, timestamp,
	context, sermon_title, playback_url, publish_date`

// Open opens or creates the occurrence index at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS occurrences (
			reference TEXT NOT NULL,
			book TEXT NOT NULL,
			sermon_id TEXT NOT NULL,
			timestamp REAL NOT NULL,
			context TEXT,
			sermon_title TEXT,
			playback_url TEXT,
			publish_date TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_occ_reference ON occurrences(reference);
		CREATE INDEX IF NOT EXISTS idx_occ_book ON occurrences(book);
		CREATE INDEX IF NOT EXISTS idx_occ_sermon ON occurrences(sermon_id);
	`
	_, err := db.Exec(schema)
	return err
}

// RebuildFromStore clears the index and repopulates it from the reference
// shards. Returns the number of occurrences indexed.
func (d *DB) RebuildFromStore(s *store.Store) (int, error) {
	if _, err := d.db.Exec("DELETE FROM occurrences"); err != nil {
		return 0, fmt.Errorf("clearing occurrences: %w", err)
	}

	stmt, err := d.db.Prepare(`
		INSERT INTO occurrences (` + selectOccFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	total := 0
	err = s.WalkReferences(func(shard *store.ReferenceShard) error {
		book := bookOf(shard.Reference)
		for _, occ := range shard.Occurrences {
			_, err := stmt.Exec(
				shard.Reference, book, occ.SermonID, occ.Timestamp,
				occ.Context, occ.SermonTitle, occ.URL, string(occ.PublishDate),
			)
			if err != nil {
				return fmt.Errorf("inserting occurrence for %q: %w", shard.Reference, err)
			}
			total++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// bookOf strips the chapter:verse tail from a citation key. Book names may
// themselves contain spaces ("1 John", "Song of Solomon"), so only a
// trailing all-digit token is treated as the chapter.
func bookOf(reference string) string {
	for i := len(reference) - 1; i >= 0; i-- {
		c := reference[i]
		if c >= '0' && c <= '9' || c == ':' || c == '-' {
			continue
		}
		if c == ' ' && i < len(reference)-1 {
			return reference[:i]
		}
		break
	}
	return reference
}

// Entry is one indexed occurrence row.
type Entry struct {
	Reference   string
	Book        string
	SermonID    string
	Timestamp   float64
	Context     string
	SermonTitle string
	PlaybackURL string
	PublishDate string
}

// Lookup returns every occurrence of an exact citation key, ordered by
// sermon and timestamp.
func (d *DB) Lookup(reference string) ([]Entry, error) {
	rows, err := d.db.Query(`
		SELECT `+selectOccFields+`
		FROM occurrences
		WHERE reference = ?
		ORDER BY sermon_id, timestamp
	`, reference)
	if err != nil {
		return nil, fmt.Errorf("looking up %q: %w", reference, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// LookupBook returns every occurrence whose citation falls inside a book,
// whatever its chapter or verse.
func (d *DB) LookupBook(book string) ([]Entry, error) {
	rows, err := d.db.Query(`
		SELECT `+selectOccFields+`
		FROM occurrences
		WHERE book = ?
		ORDER BY reference, sermon_id, timestamp
	`, book)
	if err != nil {
		return nil, fmt.Errorf("looking up book %q: %w", book, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// SermonReferences returns every occurrence from one sermon in spoken order.
func (d *DB) SermonReferences(sermonID string) ([]Entry, error) {
	rows, err := d.db.Query(`
		SELECT `+selectOccFields+`
		FROM occurrences
		WHERE sermon_id = ?
		ORDER BY timestamp
	`, sermonID)
	if err != nil {
		return nil, fmt.Errorf("looking up sermon %q: %w", sermonID, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// RefCount pairs a citation key with its occurrence count.
type RefCount struct {
	Reference string `json:"reference"`
	Count     int    `json:"count"`
}

// TopReferences returns the most-cited keys, most frequent first. Ties
// order alphabetically so repeated queries return the same rows.
func (d *DB) TopReferences(limit int) ([]RefCount, error) {
	rows, err := d.db.Query(`
		SELECT reference, COUNT(*) AS n
		FROM occurrences
		GROUP BY reference
		ORDER BY n DESC, reference
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking references: %w", err)
	}
	defer rows.Close()

	var out []RefCount
	for rows.Next() {
		var rc RefCount
		if err := rows.Scan(&rc.Reference, &rc.Count); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

// Count returns the total number of indexed occurrences.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM occurrences").Scan(&count)
	return count, err
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		var context, title, url, date sql.NullString
		err := rows.Scan(
			&e.Reference, &e.Book, &e.SermonID, &e.Timestamp,
			&context, &title, &url, &date,
		)
		if err != nil {
			return nil, err
		}
		e.Context = context.String
		e.SermonTitle = title.String
		e.PlaybackURL = url.String
		e.PublishDate = date.String
		out = append(out, e)
	}
	return out, rows.Err()
}

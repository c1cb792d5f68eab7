package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/johnbean393/orstats/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache is a SQLite-backed cache of extracted per-model daily analytics.
// A backfill run fetches one page per slug; rerunning it the same day
// (after a crash or a flag change) can serve every already-fetched slug
// from here instead of the network.
type Cache struct {
	db *sql.DB
}

// CachePath returns the default cache database location.
func CachePath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "orstats", "pages.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "orstats", "pages.db")
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveDailyHistory stores one model's extracted daily analytics, tagged
// with the fetch date. Previous rows for the slug are replaced.
func (c *Cache) SaveDailyHistory(slug, fetchedOn string, history model.DailyHistory) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM model_days WHERE slug = ?", slug); err != nil {
		return err
	}

	for day, rec := range history {
		_, err := tx.Exec(`INSERT INTO model_days
			(slug, day, prompt_tokens, completion_tokens, reasoning_tokens, cached_tokens, request_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			slug, day, rec.PromptTokens, rec.CompletionTokens,
			rec.ReasoningTokens, rec.CachedTokens, rec.RequestCount,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO fetch_tracker (slug, fetched_on, day_count)
		VALUES (?, ?, ?)`, slug, fetchedOn, len(history))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetDailyHistory returns the cached analytics for a slug if they were
// fetched on the given date. A slug cached on an earlier date misses:
// analytics pages change daily.
func (c *Cache) GetDailyHistory(slug, fetchedOn string) (model.DailyHistory, bool, error) {
	var trackedOn string
	err := c.db.QueryRow("SELECT fetched_on FROM fetch_tracker WHERE slug = ?", slug).Scan(&trackedOn)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if trackedOn != fetchedOn {
		return nil, false, nil
	}

	rows, err := c.db.Query(`SELECT day, prompt_tokens, completion_tokens,
		reasoning_tokens, cached_tokens, request_count
		FROM model_days WHERE slug = ?`, slug)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = rows.Close() }()

	history := make(model.DailyHistory)
	for rows.Next() {
		var day string
		var rec model.DailyRecord
		if err := rows.Scan(&day, &rec.PromptTokens, &rec.CompletionTokens,
			&rec.ReasoningTokens, &rec.CachedTokens, &rec.RequestCount); err != nil {
			return nil, false, err
		}
		history[day] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	return history, true, nil
}

// TrackedSlugCount returns the number of slugs with cached analytics.
func (c *Cache) TrackedSlugCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM fetch_tracker").Scan(&count)
	return count, err
}

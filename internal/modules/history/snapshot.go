package history

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog"
)

// SnapshotReader imports a real gold-price series from an externally
// maintained SQLite snapshot (one row per month). The snapshot is
// opened read-only and never written; when no snapshot is configured
// or present the caller falls back to the synthetic generator.
type SnapshotReader struct {
	path string
	log  zerolog.Logger
}

// NewSnapshotReader creates a reader for the snapshot at path. An
// empty path disables snapshot import.
func NewSnapshotReader(path string, log zerolog.Logger) *SnapshotReader {
	return &SnapshotReader{
		path: path,
		log:  log.With().Str("component", "history_snapshot").Logger(),
	}
}

// Available reports whether a snapshot file is configured and exists.
func (s *SnapshotReader) Available() bool {
	if s.path == "" {
		return false
	}
	_, err := os.Stat(s.path)
	return err == nil
}

// ReadSeries loads the monthly prices from the snapshot in
// chronological order.
func (s *SnapshotReader) ReadSeries() ([]Point, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", s.path))
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", s.path, err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT year_month, avg_price
		FROM monthly_prices
		ORDER BY year_month ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot prices: %w", err)
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.YearMonth, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.log.Info().Int("points", len(points)).Str("path", s.path).Msg("Imported snapshot series")
	return points, nil
}

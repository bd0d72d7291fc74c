package history

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// Repository caches the monthly price series in the app database so
// repeated simulation requests do not regenerate it.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new history repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("component", "history_repository").Logger(),
	}
}

// SaveSeries replaces the cached series with the given one.
func (r *Repository) SaveSeries(points []Point) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM monthly_prices`); err != nil {
		return fmt.Errorf("failed to clear monthly prices: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO monthly_prices (year_month, price) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.Exec(p.YearMonth, p.Price); err != nil {
			return fmt.Errorf("failed to insert price for %s: %w", p.YearMonth, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit series: %w", err)
	}

	r.log.Debug().Int("points", len(points)).Msg("Saved price series")
	return nil
}

// LoadSeries returns the cached series in chronological order. An
// empty slice means no cache exists yet.
func (r *Repository) LoadSeries() ([]Point, error) {
	rows, err := r.db.Query(`SELECT year_month, price FROM monthly_prices ORDER BY year_month ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly prices: %w", err)
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.YearMonth, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan price row: %w", err)
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

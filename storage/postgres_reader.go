package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"playstore-analytics/models"
	"playstore-analytics/utils"
)

// PostgresReader loads the raw catalog from the raw_apps staging table.
// Every column is text; NULL cells come back as missing (empty) values.
type PostgresReader struct {
	db *sql.DB
}

// NewPostgresReader opens a connection and waits for the server to answer.
func NewPostgresReader(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresReader, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, &IOError{Path: "postgres", Err: fmt.Errorf("open: %w", err)}
	}

	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, &IOError{Path: "postgres", Err: err}
	}
	return NewPostgresReaderFromDB(db), nil
}

// NewPostgresReaderFromDB wraps an already opened database handle.
func NewPostgresReaderFromDB(db *sql.DB) *PostgresReader {
	return &PostgresReader{db: db}
}

// ReadRaw retrieves every staged row in insertion order.
func (pr *PostgresReader) ReadRaw() ([]*models.RawApp, error) {
	rows, err := pr.db.Query(`
		SELECT id, app, category, rating, reviews, size, installs, type, price,
		       content_rating, genres, last_updated, current_ver, android_ver
		FROM raw_apps
		ORDER BY id
	`)
	if err != nil {
		return nil, &IOError{Path: "postgres:raw_apps", Err: fmt.Errorf("query: %w", err)}
	}
	defer rows.Close()

	var apps []*models.RawApp
	for rows.Next() {
		var (
			id    int
			cells [13]sql.NullString
		)
		dest := []any{&id}
		for i := range cells {
			dest = append(dest, &cells[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, &ParseError{Path: "postgres:raw_apps", Line: id, Err: fmt.Errorf("scan row: %w", err)}
		}
		apps = append(apps, &models.RawApp{
			Line:          id,
			App:           cells[0].String,
			Category:      cells[1].String,
			Rating:        cells[2].String,
			Reviews:       cells[3].String,
			Size:          cells[4].String,
			Installs:      cells[5].String,
			Type:          cells[6].String,
			Price:         cells[7].String,
			ContentRating: cells[8].String,
			Genres:        cells[9].String,
			LastUpdated:   cells[10].String,
			CurrentVer:    cells[11].String,
			AndroidVer:    cells[12].String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &IOError{Path: "postgres:raw_apps", Err: err}
	}
	return apps, nil
}

func (pr *PostgresReader) Close() error {
	return pr.db.Close()
}

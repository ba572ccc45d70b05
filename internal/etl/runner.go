// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package etl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/metrics"
)

// ErrInvalidInput is returned for unusable step parameters.
var ErrInvalidInput = errors.New("invalid etl input")

// Result describes one completed step.
type Result struct {
	Step     string        `json:"step"`
	Rows     int64         `json:"rows"`
	Outputs  []string      `json:"outputs"`
	Duration time.Duration `json:"duration"`
}

// Runner executes ETL steps on an embedded DuckDB database.
//
// Steps stage their data in temporary tables, so the runner holds a single
// connection. It is not safe for concurrent use.
type Runner struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open creates a runner. An empty path uses an in-memory database; a file
// path lets DuckDB spill large joins to disk.
func Open(path string, logger zerolog.Logger) (*Runner, error) {
	target := ":memory:"
	if path != "" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
		target = path
	}

	// Disable auto-install/auto-load: the steps only need the built-in CSV reader.
	connStr := fmt.Sprintf("%s?threads=%d&autoinstall_known_extensions=false&autoload_known_extensions=false",
		target, runtime.NumCPU())
	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Runner{
		db:     db,
		logger: logger.With().Str("component", "etl").Logger(),
	}, nil
}

// Close releases the database.
func (r *Runner) Close() error {
	return r.db.Close()
}

func (r *Runner) exec(ctx context.Context, query string) error {
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return err
	}
	return nil
}

func (r *Runner) count(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// copyTo writes a query result as a headed CSV file.
func (r *Runner) copyTo(ctx context.Context, query, path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	stmt := fmt.Sprintf("COPY (%s) TO %s (FORMAT CSV, HEADER true, DELIMITER ',')", query, sqlString(path))
	if err := r.exec(ctx, stmt); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (r *Runner) finish(step string, rows int64, outputs []string, start time.Time) Result {
	res := Result{Step: step, Rows: rows, Outputs: outputs, Duration: time.Since(start)}
	metrics.RecordETLStep(step, rows, res.Duration)
	r.logger.Info().
		Str("step", step).
		Int64("rows", rows).
		Strs("outputs", outputs).
		Dur("duration", res.Duration).
		Msg("ETL step completed")
	return res
}

// sqlString quotes s as a SQL string literal.
func sqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func sqlList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = sqlString(v)
	}
	return strings.Join(quoted, ", ")
}

func requireFile(path, what string) error {
	if path == "" {
		return fmt.Errorf("%w: %s path is empty", ErrInvalidInput, what)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidInput, what, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s %s is a directory", ErrInvalidInput, what, path)
	}
	return nil
}

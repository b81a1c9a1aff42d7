// Package catalog records every produced scenario in a SQLite database so
// runs can be listed and traced back to their inputs and seeds.
package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no scenario has the requested id.
var ErrNotFound = errors.New("scenario not found in catalog")

//go:embed migrations/*.sql
var migrations embed.FS

// Source tells how a scenario was produced.
type Source string

// Scenario sources.
const (
	SourceBitmap Source = "bitmap"
	SourceRandom Source = "random"
)

// Entry is one catalogued scenario. Random-only fields are nil for bitmap
// scenarios.
type Entry struct {
	ID              string
	Name            string
	Source          Source
	Frame           string
	InputPath       string
	Seed            *uint64
	Width           *int
	Depth           *int
	Height          *int
	Probability     *float64
	RoutePoints     int
	CollisionPoints int
	RouteLength     float64
	OutputDir       string
	CreatedAt       time.Time
}

// Catalog is a scenario catalog backed by SQLite.
type Catalog struct {
	*sql.DB
}

// Open opens (creating if needed) the catalog at path and migrates it to the
// latest schema.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	c := &Catalog{db}
	if err := c.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// migrateUp applies all embedded migrations.
func (c *Catalog) migrateUp() error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("loading catalog migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(c.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating sqlite migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	// m is not closed: closing it would close the shared *sql.DB.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("catalog migration failed: %w", err)
	}
	return nil
}

// Record stores e under a fresh id and returns the id.
func (c *Catalog) Record(ctx context.Context, e Entry) (string, error) {
	id := uuid.New().String()
	_, err := c.ExecContext(ctx, `
		INSERT INTO scenarios (
			scenario_id, name, source, frame, input_path, seed,
			width, depth, height, probability,
			route_points, collision_points, route_length, output_dir
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, e.Name, string(e.Source), e.Frame, nullString(e.InputPath), nullSeed(e.Seed),
		e.Width, e.Depth, e.Height, e.Probability,
		e.RoutePoints, e.CollisionPoints, e.RouteLength, e.OutputDir,
	)
	if err != nil {
		return "", fmt.Errorf("recording scenario %s: %w", e.Name, err)
	}
	return id, nil
}

const selectColumns = `
	SELECT scenario_id, name, source, frame, input_path, seed,
		width, depth, height, probability,
		route_points, collision_points, route_length, output_dir, created_at
	FROM scenarios`

// Get returns the entry with the given id.
func (c *Catalog) Get(ctx context.Context, id string) (*Entry, error) {
	row := c.QueryRowContext(ctx, selectColumns+` WHERE scenario_id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns the most recent entries first. A limit of 0 returns all.
func (c *Catalog) List(ctx context.Context, limit int) ([]Entry, error) {
	query := selectColumns + ` ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := c.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*Entry, error) {
	var (
		e           Entry
		source      string
		inputPath   sql.NullString
		seed        sql.NullInt64
		width       sql.NullInt64
		depth       sql.NullInt64
		height      sql.NullInt64
		probability sql.NullFloat64
	)
	err := s.Scan(&e.ID, &e.Name, &source, &e.Frame, &inputPath, &seed,
		&width, &depth, &height, &probability,
		&e.RoutePoints, &e.CollisionPoints, &e.RouteLength, &e.OutputDir, &e.CreatedAt)
	if err != nil {
		return nil, err
	}

	e.Source = Source(source)
	e.InputPath = inputPath.String
	if seed.Valid {
		v := uint64(seed.Int64)
		e.Seed = &v
	}
	e.Width = nullableInt(width)
	e.Depth = nullableInt(depth)
	e.Height = nullableInt(height)
	if probability.Valid {
		e.Probability = &probability.Float64
	}
	return &e, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullSeed stores the seed's bit pattern; SQLite integers are signed.
func nullSeed(seed *uint64) sql.NullInt64 {
	if seed == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*seed), Valid: true}
}

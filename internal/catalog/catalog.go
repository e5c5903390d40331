// Package catalog serves seating-category and vendor-source reference data.
//
// Reads prefer the database; when it is unreachable or not configured the
// compiled-in static set below is returned instead, so callers always get a
// usable catalog.
package catalog

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmorales/seatscout/internal/model"
)

// Catalog provides read-only reference data.
type Catalog struct {
	db     *pgxpool.Pool // nil = static only
	logger *slog.Logger
}

// New creates a catalog. A nil pool serves the static data set.
func New(db *pgxpool.Pool, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{db: db, logger: logger}
}

// Categories lists seating categories in display order. Never fails; on a
// database error the static set is returned.
func (c *Catalog) Categories(ctx context.Context) []model.Category {
	if c.db == nil {
		return StaticCategories()
	}

	rows, err := c.db.Query(ctx,
		`SELECT id, name, description FROM categories ORDER BY position`)
	if err != nil {
		c.logger.Warn("category query failed, using static catalog", "error", err)
		return StaticCategories()
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description); err != nil {
			c.logger.Warn("category scan failed, using static catalog", "error", err)
			return StaticCategories()
		}
		out = append(out, cat)
	}
	if rows.Err() != nil || len(out) == 0 {
		return StaticCategories()
	}
	return out
}

// Sources lists known ticket vendors. Never fails; on a database error the
// static set is returned.
func (c *Catalog) Sources(ctx context.Context) []model.VendorSource {
	if c.db == nil {
		return StaticSources()
	}

	rows, err := c.db.Query(ctx,
		`SELECT id, name, homepage FROM vendor_sources ORDER BY id`)
	if err != nil {
		c.logger.Warn("source query failed, using static catalog", "error", err)
		return StaticSources()
	}
	defer rows.Close()

	var out []model.VendorSource
	for rows.Next() {
		var src model.VendorSource
		if err := rows.Scan(&src.ID, &src.Name, &src.Homepage); err != nil {
			c.logger.Warn("source scan failed, using static catalog", "error", err)
			return StaticSources()
		}
		out = append(out, src)
	}
	if rows.Err() != nil || len(out) == 0 {
		return StaticSources()
	}
	return out
}

// Package repository contains the PostgreSQL access layer for the
// wash-center reference catalog. This is the only persistent data in
// the system; session and booking state live in internal/store.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/bikewash/internal/model"
)

// ErrCenterNotFound is returned when no wash center has the given id.
var ErrCenterNotFound = errors.New("wash center not found")

// CenterRepository reads the wash-center catalog.
type CenterRepository struct {
	pool *pgxpool.Pool
}

// NewCenterRepository creates a new catalog repository.
func NewCenterRepository(pool *pgxpool.Pool) *CenterRepository {
	return &CenterRepository{pool: pool}
}

const centerColumns = `
	id, name, address, rating, lat, lon,
	price_pickup_cents, price_drop_cents, price_pickup_drop_cents`

// ListCenters returns the whole catalog. The set is small (one city's
// worth of centers), so there is no pagination.
func (r *CenterRepository) ListCenters(ctx context.Context) ([]model.WashCenter, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+centerColumns+` FROM wash_centers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list wash centers: %w", err)
	}
	defer rows.Close()

	var centers []model.WashCenter
	for rows.Next() {
		c, err := scanCenter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wash center: %w", err)
		}
		centers = append(centers, c)
	}
	return centers, rows.Err()
}

// GetCenter returns a single center by id.
func (r *CenterRepository) GetCenter(ctx context.Context, id string) (model.WashCenter, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+centerColumns+` FROM wash_centers WHERE id = $1`, id)
	c, err := scanCenter(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.WashCenter{}, ErrCenterNotFound
	}
	if err != nil {
		return model.WashCenter{}, fmt.Errorf("get wash center %s: %w", id, err)
	}
	return c, nil
}

func scanCenter(row pgx.Row) (model.WashCenter, error) {
	var c model.WashCenter
	err := row.Scan(
		&c.ID, &c.Name, &c.Address, &c.Rating,
		&c.Location.Lat, &c.Location.Lon,
		&c.Prices.Pickup, &c.Prices.Drop, &c.Prices.PickupDrop,
	)
	return c, err
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// CatalogRepository serves product lookups from the products table.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// Lookup returns (nil, nil) for an unknown product; absence is decided
// by the orchestrator, not here.
func (r *CatalogRepository) Lookup(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT id, name, unit_price::text FROM products WHERE id = $1`

	var (
		id, name, price string
	)
	err := r.pool.QueryRow(ctx, query, productID).Scan(&id, &name, &price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	unitPrice, err := domain.MoneyFromString(price)
	if err != nil {
		return nil, err
	}

	return &domain.Product{ID: id, Name: name, UnitPrice: unitPrice}, nil
}

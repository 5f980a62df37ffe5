package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InventoryRepository reserves stock with a single conditional UPDATE,
// so concurrent reservations cannot oversell a product.
type InventoryRepository struct {
	pool *pgxpool.Pool
}

func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

// Reserve decrements stock when enough is available. A refusal is
// (false, nil); only infrastructure problems surface as errors.
func (r *InventoryRepository) Reserve(ctx context.Context, productID string, qty int64) (bool, error) {
	if qty <= 0 {
		return false, nil
	}

	query := `UPDATE inventory SET stock = stock - $2 WHERE product_id = $1 AND stock >= $2`

	tag, err := r.pool.Exec(ctx, query, productID, qty)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

package order

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("order not found")
)

// Repository is the order store. Save is idempotent per order ID.
type Repository interface {
	Save(ctx context.Context, o *Order) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Save writes the order and its items in one transaction so a failure
// never leaves a partial order behind.
func (r *PGRepo) Save(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    INSERT INTO orders (id, name, email, address, total, created_at)
    VALUES ($1,$2,$3,$4,$5::numeric,$6)
    ON CONFLICT (id) DO NOTHING
  `, o.ID, o.Name, o.Email, o.Address, o.Total.String(), o.CreatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// already stored
		return tx.Commit(ctx)
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (order_id, product, unit_price, quantity)
      VALUES ($1,$2,$3::numeric,$4)
    `, o.ID, it.Product, it.UnitPrice.String(), it.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// MemoryRepo keeps orders in process memory.
type MemoryRepo struct {
	mu     sync.RWMutex
	orders map[string]Order
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{orders: make(map[string]Order)}
}

func (r *MemoryRepo) Save(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; ok {
		return nil
	}
	cp := *o
	cp.Items = append(cp.Items[:0:0], o.Items...)
	r.orders[o.ID] = cp
	return nil
}

func (r *MemoryRepo) Get(id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

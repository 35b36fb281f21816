package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// ItemRepository encapsulates item persistence. Every read and mutation is
// parameterized by an ItemScope; no unscoped query for items exists.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	ListByOwner(ctx context.Context, scope ItemScope, limit, offset int) ([]domain.Item, error)
	GetScoped(ctx context.Context, scope ItemScope) (*domain.Item, error)
	UpdateScoped(ctx context.Context, scope ItemScope, item *domain.Item) error
	DeleteScoped(ctx context.Context, scope ItemScope) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}

type itemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository returns a Postgres-backed implementation.
func NewItemRepository(pool *pgxpool.Pool) ItemRepository {
	return &itemRepository{pool: pool}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	const query = `
        INSERT INTO items (owner_id, name, model, serial)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		item.OwnerID,
		item.Name,
		item.Model,
		item.Serial,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *itemRepository) ListByOwner(ctx context.Context, scope ItemScope, limit, offset int) ([]domain.Item, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where, args := scope.Predicate(0)
	query := fmt.Sprintf(`
        SELECT id, owner_id, name, model, serial, created_at, updated_at
        FROM items WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *itemRepository) GetScoped(ctx context.Context, scope ItemScope) (*domain.Item, error) {
	where, args := scope.Predicate(0)
	query := fmt.Sprintf(`
        SELECT id, owner_id, name, model, serial, created_at, updated_at
        FROM items WHERE %s`, where)

	var item domain.Item
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&item.ID,
		&item.OwnerID,
		&item.Name,
		&item.Model,
		&item.Serial,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) UpdateScoped(ctx context.Context, scope ItemScope, item *domain.Item) error {
	where, scopeArgs := scope.Predicate(3)
	query := fmt.Sprintf(`
        UPDATE items SET name=$1, model=$2, serial=$3, updated_at=NOW()
        WHERE %s`, where)

	args := append([]any{item.Name, item.Model, item.Serial}, scopeArgs...)
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *itemRepository) DeleteScoped(ctx context.Context, scope ItemScope) error {
	where, args := scope.Predicate(0)
	query := fmt.Sprintf(`DELETE FROM items WHERE %s`, where)

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *itemRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM items WHERE owner_id=$1`, ownerID)
	return err
}

func scanItems(rows pgx.Rows) ([]domain.Item, error) {
	var result []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID,
			&item.OwnerID,
			&item.Name,
			&item.Model,
			&item.Serial,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

package catalog

import (
	"context"

	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/db"
)

type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, quantity, price_cents, creator_id, created_at
		FROM products
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Quantity,
			&p.PriceCents,
			&p.CreatorID,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (s *PostgresStore) Create(ctx context.Context, p Product) (*Product, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, quantity, price_cents, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`,
		p.Name,
		p.Description,
		p.Quantity,
		p.PriceCents,
		p.CreatorID,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ Store = (*PostgresStore)(nil)

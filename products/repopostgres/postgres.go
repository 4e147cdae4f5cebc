package productrepopostgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-storefront-api/internal/dbx"
	"github.com/jrsteele09/go-storefront-api/products"
)

var _ products.ProductRepo = (*PostgresProductRepo)(nil)

const productColumns = `id, name, description, price, created_by, updated_by, created_at, updated_at`

type PostgresProductRepo struct {
	db dbx.DBTX
}

func NewPostgresProductRepo(db dbx.DBTX) *PostgresProductRepo {
	return &PostgresProductRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresProductRepo) Create(ctx context.Context, p *products.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query :=
		`INSERT INTO products (` + productColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.CreatedBy, p.UpdatedBy, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresProductRepo) List(ctx context.Context) ([]*products.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := make([]*products.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresProductRepo) GetByID(ctx context.Context, id string) (*products.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, products.InvalidIDErr
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanOne(row)
}

// Update sets only the supplied columns in a single statement
func (r *PostgresProductRepo) Update(ctx context.Context, id string, update products.ProductUpdate, updatedAt time.Time) (*products.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, products.InvalidIDErr
	}

	query :=
		`UPDATE products
		 SET name = COALESCE($2, name),
		     description = COALESCE($3, description),
		     price = COALESCE($4, price),
		     updated_by = COALESCE($5, updated_by),
		     updated_at = $6
		 WHERE id = $1
		 RETURNING ` + productColumns

	row := r.db.QueryRowContext(ctx, query,
		id, update.Name, update.Description, update.Price, update.UpdatedBy, updatedAt)
	return scanOne(row)
}

func (r *PostgresProductRepo) Delete(ctx context.Context, id string) (*products.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, products.InvalidIDErr
	}
	row := r.db.QueryRowContext(ctx, `DELETE FROM products WHERE id = $1 RETURNING `+productColumns, id)
	return scanOne(row)
}

func scanOne(row rowScanner) (*products.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, products.ProductNotFoundErr
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func scanProduct(row rowScanner) (*products.Product, error) {
	var p products.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price,
		&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

package products

import (
	"context"
	"errors"
	"time"
)

var (
	ProductNotFoundErr = errors.New("product not found")
	InvalidIDErr       = errors.New("invalid product id")
)

// ProductRepo persists products. Update and Delete return the resulting or removed record.
type ProductRepo interface {
	Create(ctx context.Context, product *Product) error
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, id string, update ProductUpdate, updatedAt time.Time) (*Product, error)
	Delete(ctx context.Context, id string) (*Product, error)
}

package fakeproductrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-storefront-api/products"
)

var _ products.ProductRepo = (*FakeProductRepo)(nil)

type FakeProductRepo struct {
	products map[string]products.Product
	lock     sync.RWMutex
}

func NewFakeProductRepo() *FakeProductRepo {
	return &FakeProductRepo{
		products: make(map[string]products.Product),
	}
}

func (pr *FakeProductRepo) Create(_ context.Context, p *products.Product) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	pr.products[p.ID] = *p
	return nil
}

// List returns products oldest first
func (pr *FakeProductRepo) List(_ context.Context) ([]*products.Product, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	list := make([]*products.Product, 0, len(pr.products))
	for _, p := range pr.products {
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (pr *FakeProductRepo) GetByID(_ context.Context, id string) (*products.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, products.InvalidIDErr
	}

	pr.lock.RLock()
	defer pr.lock.RUnlock()

	p, ok := pr.products[id]
	if !ok {
		return nil, products.ProductNotFoundErr
	}
	return &p, nil
}

func (pr *FakeProductRepo) Update(_ context.Context, id string, update products.ProductUpdate, updatedAt time.Time) (*products.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, products.InvalidIDErr
	}

	pr.lock.Lock()
	defer pr.lock.Unlock()

	p, ok := pr.products[id]
	if !ok {
		return nil, products.ProductNotFoundErr
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.UpdatedBy != nil {
		p.UpdatedBy = *update.UpdatedBy
	}
	p.UpdatedAt = updatedAt
	pr.products[id] = p
	return &p, nil
}

func (pr *FakeProductRepo) Delete(_ context.Context, id string) (*products.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, products.InvalidIDErr
	}

	pr.lock.Lock()
	defer pr.lock.Unlock()

	p, ok := pr.products[id]
	if !ok {
		return nil, products.ProductNotFoundErr
	}
	delete(pr.products, id)
	return &p, nil
}

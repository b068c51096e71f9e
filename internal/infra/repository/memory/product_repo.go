package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository"
)

type ProductRepo struct {
	mu       sync.RWMutex
	products map[uint64]*model.Product
	nextID   uint64
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{products: make(map[uint64]*model.Product)}
}

func (r *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	product.ProductID = r.nextID
	r.products[product.ProductID] = product.Clone()
	return nil
}

func (r *ProductRepo) GetProductByID(ctx context.Context, productID uint64) (*model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[productID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product.Clone(), nil
}

func (r *ProductRepo) ExistsProduct(ctx context.Context, productID uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.products[productID]
	return ok, nil
}

func (r *ProductRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ProductID < products[j].ProductID })
	return products, nil
}

func (r *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.products[product.ProductID]
	if !ok {
		return repository.ErrProductNotFound
	}
	updated := current.Clone()
	updated.Name = product.Name
	updated.Price = product.Price
	r.products[product.ProductID] = updated
	return nil
}

func (r *ProductRepo) DeleteProduct(ctx context.Context, productID uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[productID]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, productID)
	return nil
}

var _ repository.IProductRepository = (*ProductRepo)(nil)

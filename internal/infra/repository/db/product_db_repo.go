package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository"
	"gorm.io/gorm"
)

type ProductDBRepo struct {
	db *DbDao
}

func NewProductDBRepo(db *DbDao) *ProductDBRepo {
	return &ProductDBRepo{db: db}
}

func (s *ProductDBRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

// 錯誤:
//   - repository.ErrProductNotFound: 商品不存在
//   - err: 其他錯誤
func (s *ProductDBRepo) GetProductByID(ctx context.Context, productID uint64) (*model.Product, error) {
	var productFromDB model.Product
	err := s.db.WithContext(ctx).First(&productFromDB, "product_id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}
		return nil, err
	}
	return &productFromDB, nil
}

func (s *ProductDBRepo) ExistsProduct(ctx context.Context, productID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Product{}).Where("product_id = ?", productID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *ProductDBRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Order("product_id").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Update - 更新商品名稱與價格
func (s *ProductDBRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	result := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ?", product.ProductID).
		Updates(map[string]interface{}{
			"name":  product.Name,
			"price": product.Price,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}
	return nil
}

// Delete - 硬刪除商品
// 已成立訂單的明細保有商品快照，不受影響
func (s *ProductDBRepo) DeleteProduct(ctx context.Context, productID uint64) error {
	result := s.db.WithContext(ctx).Delete(&model.Product{}, "product_id = ?", productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}
	return nil
}

var _ repository.IProductRepository = (*ProductDBRepo)(nil)

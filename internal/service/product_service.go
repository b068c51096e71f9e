package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
	"github.com/RoyceAzure/lab/ordercenter/internal/dto"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository"
	"github.com/RoyceAzure/lab/ordercenter/internal/pkg/apperr"
)

const productResource = "product"

type IProductService interface {
	GetAllProducts(ctx context.Context) ([]dto.ProductDTO, error)
	// GetProductByID
	// 錯誤:
	//   - apperr.NotFoundCode 404: 商品不存在
	//   - apperr.InternalErrorCode 500: 資料庫操作錯誤
	GetProductByID(ctx context.Context, productID uint64) (*dto.ProductDTO, error)
	// CreateProduct
	// 錯誤:
	//   - apperr.InvalidArgumentCode 400: 名稱空白或價格不為正數
	//   - apperr.InternalErrorCode 500: 資料庫操作錯誤
	CreateProduct(ctx context.Context, arg dto.ProductParam) (*dto.ProductDTO, error)
	// UpdateProduct 取代名稱與價格，已成立訂單的明細不受影響
	// 錯誤:
	//   - apperr.InvalidArgumentCode 400
	//   - apperr.NotFoundCode 404
	//   - apperr.InternalErrorCode 500
	UpdateProduct(ctx context.Context, productID uint64, arg dto.ProductParam) (*dto.ProductDTO, error)
	// DeleteProduct
	// 錯誤:
	//   - apperr.NotFoundCode 404
	//   - apperr.InternalErrorCode 500
	DeleteProduct(ctx context.Context, productID uint64) error
}

type ProductService struct {
	productRepo repository.IProductRepository
	validator   *Validator
}

func NewProductService(productRepo repository.IProductRepository, validator *Validator) *ProductService {
	if productRepo == nil {
		panic("product service missing required dependency product repository")
	}
	if validator == nil {
		validator = NewValidator()
	}
	return &ProductService{productRepo: productRepo, validator: validator}
}

func (s *ProductService) GetAllProducts(ctx context.Context) ([]dto.ProductDTO, error) {
	products, err := s.productRepo.GetAllProducts(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "get products failed", err)
	}
	return dto.ConvertProductsToDTO(products), nil
}

func (s *ProductService) GetProductByID(ctx context.Context, productID uint64) (*dto.ProductDTO, error) {
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, translateProductErr(err, productID, "get product failed")
	}
	res := dto.ConvertProductToDTO(product)
	return &res, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, arg dto.ProductParam) (*dto.ProductDTO, error) {
	if err := s.validator.Struct(arg); err != nil {
		return nil, err
	}

	product := &model.Product{Name: arg.Name, Price: arg.Price}
	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "create product failed", err)
	}
	res := dto.ConvertProductToDTO(product)
	return &res, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, productID uint64, arg dto.ProductParam) (*dto.ProductDTO, error) {
	if err := s.validator.Struct(arg); err != nil {
		return nil, err
	}

	product := &model.Product{ProductID: productID, Name: arg.Name, Price: arg.Price}
	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, translateProductErr(err, productID, "update product failed")
	}
	res := dto.ConvertProductToDTO(product)
	return &res, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID uint64) error {
	exists, err := s.productRepo.ExistsProduct(ctx, productID)
	if err != nil {
		return apperr.Wrap(apperr.InternalErrorCode, "check product failed", err)
	}
	if !exists {
		return apperr.NotFound(productResource, productID)
	}

	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		return translateProductErr(err, productID, "delete product failed")
	}
	return nil
}

func translateProductErr(err error, productID uint64, msg string) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return apperr.NotFound(productResource, productID)
	}
	return apperr.Wrap(apperr.InternalErrorCode, msg, err)
}

var _ IProductService = (*ProductService)(nil)

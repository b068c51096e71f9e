package dto

import (
	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
	"github.com/shopspring/decimal"
)

// ProductParam 新增與更新商品共用
type ProductParam struct {
	Name  string          `json:"name" validate:"notblank,max=100"`
	Price decimal.Decimal `json:"price" validate:"price"`
}

type ProductDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Price Money  `json:"price"`
}

func ConvertProductToDTO(product *model.Product) ProductDTO {
	return ProductDTO{
		ID:    product.ProductID,
		Name:  product.Name,
		Price: NewMoney(product.Price),
	}
}

func ConvertProductsToDTO(products []model.Product) []ProductDTO {
	res := make([]ProductDTO, 0, len(products))
	for i := range products {
		res = append(res, ConvertProductToDTO(&products[i]))
	}
	return res
}

package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/ordercenter/internal/dto"
	"github.com/RoyceAzure/lab/ordercenter/internal/pkg/api"
	"github.com/RoyceAzure/lab/ordercenter/internal/service"
)

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) GetAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetAllProducts(r.Context())
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "product")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}

	product, err := h.productService.GetProductByID(r.Context(), id)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductParam
	if err := decodeJSON(r, &req); err != nil {
		api.ErrorJSON(w, err)
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), req)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "product")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}

	var req dto.ProductParam
	if err := decodeJSON(r, &req); err != nil {
		api.ErrorJSON(w, err)
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), id, req)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "product")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
		api.ErrorJSON(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

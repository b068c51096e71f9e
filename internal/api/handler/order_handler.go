package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/ordercenter/internal/dto"
	"github.com/RoyceAzure/lab/ordercenter/internal/pkg/api"
	"github.com/RoyceAzure/lab/ordercenter/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/ordercenter/internal/service"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{orderService: orderService}
}

// GET /api/orders
func (h *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetAllOrders(r.Context())
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, http.StatusOK, orders)
}

// GET /api/orders/{id}
func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "order")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}

	order, err := h.orderService.GetOrderByID(r.Context(), id)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, http.StatusOK, order)
}

// GET /api/orders/byDateRange?startDate=&endDate=
func (h *OrderHandler) GetOrdersByDateRange(w http.ResponseWriter, r *http.Request) {
	var violations []apperr.Violation
	start, v := queryDateTime(r, "startDate")
	if v != nil {
		violations = append(violations, *v)
	}
	end, v := queryDateTime(r, "endDate")
	if v != nil {
		violations = append(violations, *v)
	}
	if len(violations) > 0 {
		api.ErrorJSON(w, apperr.Invalid(violations...))
		return
	}

	orders, err := h.orderService.GetOrdersByDateRange(r.Context(), start, end)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, http.StatusOK, orders)
}

// POST /api/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceOrderParam
	if err := decodeJSON(r, &req); err != nil {
		api.ErrorJSON(w, err)
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), req)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, http.StatusCreated, order)
}

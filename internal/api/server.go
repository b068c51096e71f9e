package api

import "github.com/RoyceAzure/lab/ordercenter/internal/api/handler"

type Server struct {
	OrderHandler   *handler.OrderHandler
	ProductHandler *handler.ProductHandler
}

func NewServer(orderHandler *handler.OrderHandler, productHandler *handler.ProductHandler) *Server {
	return &Server{
		OrderHandler:   orderHandler,
		ProductHandler: productHandler,
	}
}

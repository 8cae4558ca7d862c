package api

import "github.com/RoyceAzure/lab/shopcenter/internal/api/handler"

type Server struct {
	AuthHandler     *handler.AuthHandler
	CategoryHandler *handler.CategoryHandler
	ProductHandler  *handler.ProductHandler
	OrderHandler    *handler.OrderHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
}

func NewServer(
	authHandler *handler.AuthHandler,
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
) *Server {
	return &Server{
		AuthHandler:     authHandler,
		CategoryHandler: categoryHandler,
		ProductHandler:  productHandler,
		OrderHandler:    orderHandler,
		CartHandler:     cartHandler,
		CheckoutHandler: checkoutHandler,
	}
}

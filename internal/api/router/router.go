package router

import (
	"fmt"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api"
	m "github.com/RoyceAzure/lab/shopcenter/internal/api/middleware"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, tokenMaker token.Maker, userService service.IUserService, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))

	adminOnly := m.AdminMiddleware(userService)

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		//Auth相關路由
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", server.AuthHandler.Register)
			r.Post("/login", server.AuthHandler.Login)
			r.Post("/forgot-password", server.AuthHandler.ForgotPassword)
			r.With(m.AuthMiddleware).Put("/profile", server.AuthHandler.UpdateProfile)
			r.With(m.AuthMiddleware).Get("/me", server.AuthHandler.Me)
			r.With(m.AuthMiddleware).Get("/user-auth", server.AuthHandler.UserAuthProbe)
			r.With(adminOnly).Get("/admin-auth", server.AuthHandler.AdminAuthProbe)
			r.With(m.AuthMiddleware).Get("/orders", server.OrderHandler.GetBuyerOrders)
			r.With(adminOnly).Get("/all-orders", server.OrderHandler.GetAllOrders)
			r.With(adminOnly).Put("/order-status/{orderId}", server.OrderHandler.UpdateOrderStatus)
		})

		//分類相關路由
		r.Route("/category", func(r chi.Router) {
			r.With(adminOnly).Post("/create-category", server.CategoryHandler.CreateCategory)
			r.With(adminOnly).Put("/update-category/{id}", server.CategoryHandler.UpdateCategory)
			r.With(adminOnly).Delete("/delete-category/{id}", server.CategoryHandler.DeleteCategory)
			r.Get("/get-category", server.CategoryHandler.GetAllCategories)
			r.Get("/single-category/{slug}", server.CategoryHandler.GetCategoryBySlug)
		})

		//商品相關路由
		r.Route("/product", func(r chi.Router) {
			r.With(adminOnly).Post("/create-product", server.ProductHandler.CreateProduct)
			r.With(adminOnly).Put("/update-product/{id}", server.ProductHandler.UpdateProduct)
			r.With(adminOnly).Delete("/delete-product/{id}", server.ProductHandler.DeleteProduct)
			r.Get("/get-product", server.ProductHandler.GetProducts)
			r.Get("/get-product/{slug}", server.ProductHandler.GetProductBySlug)
			r.Get("/product-photo/{pid}", server.ProductHandler.GetProductPhoto)
			r.Post("/product-filters", server.ProductHandler.FilterProducts)
			r.Get("/product-count", server.ProductHandler.CountProducts)
			r.Get("/product-list/{page}", server.ProductHandler.GetProductsPaginated)
			r.Get("/search/{keyword}", server.ProductHandler.SearchProducts)
			r.Get("/related-product/{pid}/{cid}", server.ProductHandler.GetRelatedProducts)
			r.Get("/product-category/{slug}", server.ProductHandler.GetProductsByCategorySlug)

			//結帳
			r.Get("/braintree/token", server.CheckoutHandler.ClientToken)
			r.With(m.AuthMiddleware).Post("/braintree/payment", server.CheckoutHandler.Payment)
		})

		//購物車相關路由
		r.Route("/cart", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Get("/", server.CartHandler.GetCart)
			r.Put("/", server.CartHandler.UpdateCart)
			r.Delete("/", server.CartHandler.ClearCart)
		})
	})

	// 在設置完所有路由後打印路由樹
	fmt.Println(chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		fmt.Printf("%s %s\n", method, route)
		return nil
	}))
	return r
}

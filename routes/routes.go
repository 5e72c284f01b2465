// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront/controllers"
	"storefront/middleware"
)

// Controllers groups the handlers the router needs. User is optional.
type Controllers struct {
	User    *controllers.UserController
	Product *controllers.ProductController
	Cart    *controllers.CartController
	Order   *controllers.OrderController
	Review  *controllers.ReviewController
}

// NewRouter builds a router with the shared middleware and every route.
func NewRouter(c Controllers, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.CorrelationID)
	router.Use(middleware.Recover(logger))
	router.Use(middleware.RequestLogger(logger))
	RegisterRoutes(router, c)
	return router
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Public routes
	if c.User != nil {
		router.HandleFunc("/register", c.User.Register).Methods("POST")
		router.HandleFunc("/login", c.User.Login).Methods("POST")
	}

	// Product routes
	router.HandleFunc("/products", c.Product.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", c.Product.GetProductByID).Methods("GET")
	router.HandleFunc("/products/{id}/reviews", c.Review.GetProductReviews).Methods("GET")
	router.HandleFunc("/products/{id}/reviews/stats", c.Review.GetReviewStats).Methods("GET")

	// Protected routes
	if c.User != nil {
		router.Handle("/profile", protected(c.User.GetProfile)).Methods("GET")
	}

	// Admin routes
	if c.Product.Creator != nil {
		router.Handle("/admin/products", admin(c.Product.CreateProduct)).Methods("POST")
	}

	// Cart routes
	router.Handle("/cart", protected(c.Cart.GetCart)).Methods("GET")
	router.Handle("/cart", protected(c.Cart.ClearCart)).Methods("DELETE")
	router.Handle("/cart/items", protected(c.Cart.AddToCart)).Methods("POST")
	router.Handle("/cart/items/{product_id}", protected(c.Cart.UpdateQuantity)).Methods("PUT")
	router.Handle("/cart/items/{product_id}", protected(c.Cart.RemoveFromCart)).Methods("DELETE")

	// Checkout and order routes
	router.Handle("/checkout/quote", protected(c.Order.Quote)).Methods("GET")
	router.Handle("/checkout", protected(c.Order.CreateOrder)).Methods("POST")
	router.Handle("/orders", protected(c.Order.GetOrders)).Methods("GET")

	// Review routes
	router.Handle("/reviews", protected(c.Review.CreateReview)).Methods("POST")
}

func protected(h http.HandlerFunc) http.Handler {
	return middleware.AuthMiddleware(h)
}

func admin(h http.HandlerFunc) http.Handler {
	return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
}

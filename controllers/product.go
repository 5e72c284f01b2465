package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront/models"
)

// ProductCreator adds catalog entries
type ProductCreator interface {
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
}

// ProductController handles product-related requests
type ProductController struct {
	Catalog ProductSource
	Creator ProductCreator
	Logger  *zap.Logger
}

// NewProductController creates a new ProductController. creator may be nil
// when the catalog is read-only.
func NewProductController(catalog ProductSource, creator ProductCreator, logger *zap.Logger) *ProductController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductController{Catalog: catalog, Creator: creator, Logger: logger}
}

// GetProducts retrieves all products
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := pc.Catalog.ListProducts(r.Context())
	if err != nil {
		pc.Logger.Error("error fetching products", zap.Error(err))
		writeError(w, r, http.StatusBadGateway, "Error fetching products")
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, err := pc.Catalog.GetProduct(r.Context(), id)
	if err != nil {
		pc.Logger.Info("product lookup failed", zap.String("product_id", id), zap.Error(err))
		writeError(w, r, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid input")
		return
	}

	created, err := pc.Creator.CreateProduct(r.Context(), product)
	if err != nil {
		pc.Logger.Warn("error creating product", zap.Error(err))
		writeError(w, r, http.StatusBadRequest, "Error creating product")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

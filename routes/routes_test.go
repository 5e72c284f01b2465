package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/checkout"
	"storefront/controllers"
	"storefront/models"
	"storefront/reviews"
	"storefront/utils"
)

type fakeCatalog struct {
	products map[string]models.Product
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id string) (models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return models.Product{}, errors.New("not found")
	}
	return p, nil
}

type fakeOrders struct {
	mu     sync.Mutex
	placed []models.OrderRecord
	fail   bool
}

func (f *fakeOrders) CreateOrder(ctx context.Context, order models.Order) (models.OrderRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return models.OrderRecord{}, errors.New("order service down")
	}
	rec := models.OrderRecord{
		OrderID:       "o-1",
		ProductID:     order.ProductID,
		CustomerID:    order.CustomerID,
		Quantity:      order.Quantity,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: models.InitialPaymentStatus(order.PaymentMethod),
	}
	f.placed = append(f.placed, rec)
	return rec, nil
}

func (f *fakeOrders) CustomerOrders(ctx context.Context, customerID string) ([]models.OrderRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.OrderRecord
	for _, r := range f.placed {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeReviews struct {
	list []models.Review
}

func (f *fakeReviews) ProductReviews(ctx context.Context, productID string) ([]models.Review, error) {
	return f.list, nil
}

func (f *fakeReviews) CreateReview(ctx context.Context, r models.NewReview) (models.Review, error) {
	created := models.Review{ReviewID: "r-new", ProductID: r.ProductID, CustomerID: r.CustomerID, Rating: r.Rating, Comment: r.Comment, CreatedAt: time.Now()}
	f.list = append(f.list, created)
	return created, nil
}

type testServer struct {
	handler http.Handler
	orders  *fakeOrders
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	utils.JwtKey = []byte("test-secret")
	token, err := utils.GenerateJWT(models.User{ID: "c-42", Email: "student@example.ac.za", Role: "user"})
	require.NoError(t, err)

	logger := zap.NewNop()
	catalog := &fakeCatalog{products: map[string]models.Product{
		"hoodie": {ID: "hoodie", Name: "Hoodie", Price: decimal.NewFromInt(100)},
		"cap":    {ID: "cap", Name: "Cap", Price: decimal.NewFromInt(50)},
	}}
	orders := &fakeOrders{}
	revs := &fakeReviews{list: []models.Review{
		{ReviewID: "r1", ProductID: "hoodie", Rating: 5, Comment: "warm"},
		{ReviewID: "r2", ProductID: "hoodie", Rating: 4, Comment: "nice"},
	}}

	sessions := controllers.NewSessions(orders, nil, logger)
	router := NewRouter(Controllers{
		Product: controllers.NewProductController(catalog, nil, logger),
		Cart:    controllers.NewCartController(sessions, catalog, logger),
		Order:   controllers.NewOrderController(sessions, orders, time.Second, logger),
		Review:  controllers.NewReviewController(reviews.NewService(revs, logger), logger),
	}, logger)

	return &testServer{handler: router, orders: orders, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+s.token)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func eftForm() checkout.Form {
	return checkout.Form{
		FirstName: "Thandi", LastName: "Mokoena", Email: "student@example.ac.za", Phone: "0211234567",
		Address: "1 Main Rd", City: "Cape Town", Province: "Western Cape", PostalCode: "7700",
		PaymentMethod: "EFT", BankName: "Capitec", AccountHolder: "T Mokoena", AccountNumber: "123456789",
	}
}

func TestHealthRoute(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Correlation-Id"))
}

func TestCartRequiresAuth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodPost, "/cart/items", map[string]any{"productID": "hoodie", "quantity": 2})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = s.do(t, http.MethodPost, "/cart/items", map[string]any{"productID": "cap"})
	require.Equal(t, http.StatusOK, rr.Code)

	// two distinct items are refused
	rr = s.do(t, http.MethodPost, "/checkout", eftForm())
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), checkout.ErrMsgSingleItem)
	assert.Empty(t, s.orders.placed)

	rr = s.do(t, http.MethodDelete, "/cart/items/cap", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, http.MethodPut, "/cart/items/hoodie", map[string]any{"quantity": 3})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/checkout/quote", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var quote struct {
		Subtotal   decimal.Decimal `json:"subtotal"`
		GrandTotal decimal.Decimal `json:"grandTotal"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &quote))
	assert.True(t, decimal.NewFromInt(300).Equal(quote.Subtotal))
	assert.True(t, decimal.NewFromInt(395).Equal(quote.GrandTotal))

	rr = s.do(t, http.MethodPost, "/checkout", eftForm())
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var res checkout.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, checkout.MsgEFTConfirmed, res.Message)
	assert.Equal(t, 3, res.Order.Quantity)
	assert.True(t, decimal.NewFromInt(300).Equal(res.Order.Total))
	assert.NotContains(t, rr.Body.String(), "123456789")

	rr = s.do(t, http.MethodGet, "/cart", nil)
	var view struct {
		Items     []models.LineItem `json:"items"`
		ItemCount int               `json:"itemCount"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Empty(t, view.Items)

	rr = s.do(t, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"orderID":"o-1"`)

	// shopping again opens a new checkout
	rr = s.do(t, http.MethodPost, "/cart/items", map[string]any{"productID": "cap"})
	require.Equal(t, http.StatusOK, rr.Code)
	form := eftForm()
	form.PaymentMethod = "Cash"
	rr = s.do(t, http.MethodPost, "/checkout", form)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "PENDING_PICKUP")
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	s := newTestServer(t)
	s.orders.fail = true

	rr := s.do(t, http.MethodPost, "/cart/items", map[string]any{"productID": "hoodie"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodPost, "/checkout", eftForm())
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), checkout.ErrMsgOrderFailed)

	rr = s.do(t, http.MethodGet, "/cart", nil)
	assert.Contains(t, rr.Body.String(), `"productID":"hoodie"`)
}

func TestCheckoutInvalidForm(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/cart/items", map[string]any{"productID": "hoodie"})

	form := eftForm()
	form.PaymentMethod = "crypto"
	rr := s.do(t, http.MethodPost, "/checkout", form)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAddUnknownProduct(t *testing.T) {
	s := newTestServer(t)
	rr := s.do(t, http.MethodPost, "/cart/items", map[string]any{"productID": "mug"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestReviewRoutes(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/products/hoodie/reviews/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var stats models.ReviewStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalReviews)
	assert.Equal(t, 4.5, stats.AverageRating)
	assert.Equal(t, 1, stats.RatingDistribution[4])

	rr = s.do(t, http.MethodGet, "/products/hoodie/reviews?rating=5", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []models.Review
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "r1", list[0].ReviewID)

	rr = s.do(t, http.MethodPost, "/reviews", map[string]any{"productID": "hoodie", "rating": 3, "comment": "ok"})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = s.do(t, http.MethodPost, "/reviews", map[string]any{"productID": "hoodie", "rating": 3, "comment": "  "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodGet, "/products/hoodie/reviews?rating=x", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProductRoutes(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/products/hoodie", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `"name":"Hoodie"`))

	rr = s.do(t, http.MethodGet, "/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(t, http.MethodPost, "/admin/products", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

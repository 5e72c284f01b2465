package clients

import (
	"context"
	"net/http"
	"net/url"

	"storefront/models"
)

type ProductClient struct{ c *Client }

func NewProductClient(c *Client) *ProductClient { return &ProductClient{c: c} }

func (pc *ProductClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	var list []models.Product
	if err := pc.c.doJSON(ctx, http.MethodGet, "/products/all", nil, &list); err != nil {
		return nil, err
	}
	for _, p := range list {
		if p.ID == "" {
			return nil, malformed(pc.c.Name, "product %q has no productID", p.Name)
		}
	}
	return list, nil
}

func (pc *ProductClient) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	if err := pc.c.doJSON(ctx, http.MethodGet, "/products/read/"+url.PathEscape(id), nil, &p); err != nil {
		return models.Product{}, err
	}
	if p.ID != id {
		return models.Product{}, malformed(pc.c.Name, "asked for product %q, got %q", id, p.ID)
	}
	return p, nil
}

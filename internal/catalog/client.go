package catalog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/legacyframe/storefront/pkg/rest"
)

const productsPath = "/api/catalog/productos"

// Client is the remote surface of the productos service.
type Client interface {
	ListProducts(ctx context.Context) ([]RemoteProduct, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) error
	UpdateProduct(ctx context.Context, id int64, req CreateProductRequest) error
	DeleteProduct(ctx context.Context, id int64) error
}

type restClient struct {
	rest *rest.Client
}

// NewClient wraps a REST client rooted at the productos service.
func NewClient(rc *rest.Client) Client {
	return &restClient{rest: rc}
}

func (c *restClient) ListProducts(ctx context.Context) ([]RemoteProduct, error) {
	var out []RemoteProduct
	if err := c.rest.Do(ctx, rest.Request{Method: http.MethodGet, Path: productsPath}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *restClient) CreateProduct(ctx context.Context, req CreateProductRequest) error {
	return c.rest.Do(ctx, rest.Request{Method: http.MethodPost, Path: productsPath, Body: req}, nil)
}

func (c *restClient) UpdateProduct(ctx context.Context, id int64, req CreateProductRequest) error {
	return c.rest.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("%s/%d", productsPath, id),
		Body:   req,
	}, nil)
}

func (c *restClient) DeleteProduct(ctx context.Context, id int64) error {
	return c.rest.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("%s/%d", productsPath, id),
	}, nil)
}

package orders

import (
	"context"
	"net/http"
	"net/url"

	"github.com/legacyframe/storefront/pkg/rest"
)

const (
	ordersPath   = "/api/orders"
	myOrdersPath = "/api/orders/my-orders"
)

// OrderDetail is one purchased line as the orders service expects it.
type OrderDetail struct {
	ProductoID     int64   `json:"productoId"`
	NombreProducto string  `json:"nombreProducto"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precioUnitario"`
}

// SubmitOrderRequest is the payload for a new order; the service derives the
// total from the items itself.
type SubmitOrderRequest struct {
	Items []OrderDetail `json:"items"`
}

// RemoteOrderDetail is a line inside a fetched order.
type RemoteOrderDetail struct {
	NombreProducto string  `json:"nombreProducto"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precioUnitario"`
}

// RemoteOrder is an order row as the orders service returns it.
type RemoteOrder struct {
	ID            int64               `json:"id"`
	Total         float64             `json:"total"`
	Estado        string              `json:"estado"`
	FechaCreacion *string             `json:"fechaCreacion"`
	Detalles      []RemoteOrderDetail `json:"detalles"`
}

// Client talks to the orders service. Both operations key on the buyer email.
type Client interface {
	Submit(ctx context.Context, email string, req SubmitOrderRequest) error
	ListByEmail(ctx context.Context, email string) ([]RemoteOrder, error)
}

type restClient struct {
	rest *rest.Client
}

// NewClient wraps the outbound REST client for the orders service.
func NewClient(rc *rest.Client) Client {
	return &restClient{rest: rc}
}

func (c *restClient) Submit(ctx context.Context, email string, req SubmitOrderRequest) error {
	return c.rest.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   ordersPath,
		Query:  url.Values{"email": []string{email}},
		Body:   req,
	}, nil)
}

func (c *restClient) ListByEmail(ctx context.Context, email string) ([]RemoteOrder, error) {
	var out []RemoteOrder
	err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   myOrdersPath,
		Query:  url.Values{"email": []string{email}},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

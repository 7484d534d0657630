package rates

import (
	"context"
	"net/http"

	"github.com/legacyframe/storefront/pkg/rest"
)

// indicatorsResponse is the shape served by the mindicador.cl API; only the
// dollar indicator is consumed.
type indicatorsResponse struct {
	Dolar struct {
		Valor float64 `json:"valor"`
	} `json:"dolar"`
}

// Client fetches the current USD/CLP indicator.
type Client interface {
	DollarValue(ctx context.Context) (float64, error)
}

type restClient struct {
	rest *rest.Client
}

// NewClient wraps the outbound REST client for the indicators API.
func NewClient(rc *rest.Client) Client {
	return &restClient{rest: rc}
}

func (c *restClient) DollarValue(ctx context.Context) (float64, error) {
	var out indicatorsResponse
	err := c.rest.Do(ctx, rest.Request{
		Method:          http.MethodGet,
		Path:            "/api",
		Unauthenticated: true,
	}, &out)
	if err != nil {
		return 0, err
	}
	return out.Dolar.Valor, nil
}

package contact

import (
	"context"
	"net/http"

	"github.com/legacyframe/storefront/pkg/rest"
)

const contactPath = "/api/contactos"

// SendMessageRequest is the payload for a support message.
type SendMessageRequest struct {
	Nombre  string `json:"nombre"`
	Email   string `json:"email"`
	Mensaje string `json:"mensaje"`
}

// Client talks to the contact service.
type Client interface {
	Send(ctx context.Context, req SendMessageRequest) error
}

type restClient struct {
	rest *rest.Client
}

// NewClient wraps the outbound REST client for the contact service.
func NewClient(rc *rest.Client) Client {
	return &restClient{rest: rc}
}

func (c *restClient) Send(ctx context.Context, req SendMessageRequest) error {
	return c.rest.Do(ctx, rest.Request{
		Method:          http.MethodPost,
		Path:            contactPath,
		Body:            req,
		Unauthenticated: true,
	}, nil)
}

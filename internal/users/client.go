package users

import (
	"context"
	"net/http"
	"net/url"

	"github.com/legacyframe/storefront/pkg/rest"
)

const (
	loginPath         = "/auth/login"
	registerPath      = "/auth/register"
	profilePath       = "/auth/perfil"
	updateProfilePath = "/auth/profile"
)

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the session token issued on login.
type TokenResponse struct {
	Token string `json:"token"`
}

// RegisterRequest is the signup payload. Rut and Dv carry the Chilean
// national id and its check digit.
type RegisterRequest struct {
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido,omitempty"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Rut             string `json:"rut"`
	Dv              string `json:"dv"`
	Telefono        string `json:"telefono"`
}

// ProfileResponse is the stored profile for one account.
type ProfileResponse struct {
	Nombre    string  `json:"nombre"`
	Apellido  *string `json:"apellido"`
	Email     string  `json:"email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

// UpdateProfileRequest carries the editable profile fields; the password pair
// is optional and only sent when the user wants to change it.
type UpdateProfileRequest struct {
	Nombre          string  `json:"nombre"`
	Apellido        string  `json:"apellido"`
	Telefono        string  `json:"telefono"`
	Direccion       string  `json:"direccion"`
	Password        *string `json:"password,omitempty"`
	ConfirmPassword *string `json:"confirmPassword,omitempty"`
}

// Client talks to the auth service.
type Client interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Register(ctx context.Context, req RegisterRequest) error
	Profile(ctx context.Context, email string) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error
}

type restClient struct {
	rest *rest.Client
}

// NewClient wraps the outbound REST client for the auth service.
func NewClient(rc *rest.Client) Client {
	return &restClient{rest: rc}
}

func (c *restClient) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var out TokenResponse
	err := c.rest.Do(ctx, rest.Request{
		Method:          http.MethodPost,
		Path:            loginPath,
		Body:            req,
		Unauthenticated: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *restClient) Register(ctx context.Context, req RegisterRequest) error {
	return c.rest.Do(ctx, rest.Request{
		Method:          http.MethodPost,
		Path:            registerPath,
		Body:            req,
		Unauthenticated: true,
	}, nil)
}

func (c *restClient) Profile(ctx context.Context, email string) (*ProfileResponse, error) {
	var out ProfileResponse
	err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   profilePath,
		Query:  url.Values{"email": []string{email}},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *restClient) UpdateProfile(ctx context.Context, req UpdateProfileRequest) error {
	return c.rest.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   updateProfilePath,
		Body:   req,
	}, nil)
}

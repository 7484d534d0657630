package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/legacyframe/storefront/internal/prefs"
	pkgerrors "github.com/legacyframe/storefront/pkg/errors"
	"github.com/legacyframe/storefront/pkg/logger"
)

// Service is the account surface backed by the auth service. Login persists
// the session to the preference store; Logout clears it (the cart stays).
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, req RegisterRequest) error
	Profile(ctx context.Context) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error
	Logout(ctx context.Context) error
}

type service struct {
	client Client
	prefs  *prefs.Store
	logg   *logger.Logger
}

// NewService builds the account service.
func NewService(client Client, store *prefs.Store, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("auth client required")
	}
	if store == nil {
		return nil, fmt.Errorf("preference store required")
	}
	return &service{client: client, prefs: store, logg: logg}, nil
}

// Login exchanges credentials for a token and persists token, email and the
// logged-in flag. The token write is last so watchers observe a session whose
// email is already in place.
func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	resp, err := s.client.Login(ctx, LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	if err := s.prefs.Set(ctx, prefs.KeyUserEmail, email); err != nil {
		return "", err
	}
	if err := s.prefs.SetBool(ctx, prefs.KeyLoggedIn, true); err != nil {
		return "", err
	}
	if err := s.prefs.Set(ctx, prefs.KeyAuthToken, resp.Token); err != nil {
		return "", err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithUserEmail(ctx, email), "session opened")
	}
	return resp.Token, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) error {
	if req.Password != req.ConfirmPassword {
		return pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}
	return s.client.Register(ctx, req)
}

// Profile fetches the stored profile for the signed-in email.
func (s *service) Profile(ctx context.Context) (*ProfileResponse, error) {
	email, err := s.prefs.Get(ctx, prefs.KeyUserEmail)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active session")
	}
	return s.client.Profile(ctx, email)
}

// UpdateProfile forwards the edit. The password pair is optional; when
// present both halves must match.
func (s *service) UpdateProfile(ctx context.Context, req UpdateProfileRequest) error {
	if req.Password != nil {
		if req.ConfirmPassword == nil || *req.Password != *req.ConfirmPassword {
			return pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
		}
	}
	return s.client.UpdateProfile(ctx, req)
}

// Logout drops the stored session. The cart is intentionally left as-is so a
// returning user finds their picks again.
func (s *service) Logout(ctx context.Context) error {
	return s.prefs.ClearSession(ctx)
}

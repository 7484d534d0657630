package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/legacyframe/storefront/pkg/creds"
	pkgerrors "github.com/legacyframe/storefront/pkg/errors"
)

func TestDoAttachesBearerFromCell(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	cell := creds.NewCell()
	cell.Set("tok-123")
	client, err := NewClient(srv.URL, time.Second, cell, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	var out map[string]bool
	if err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, &out); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestDoSkipsBearerForUnauthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cell := creds.NewCell()
	cell.Set("tok-123")
	client, _ := NewClient(srv.URL, time.Second, cell, nil)

	if err := client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/auth/login", Unauthenticated: true}, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("login must not carry a bearer header, got %q", gotAuth)
	}
}

func TestDoMapsStatusAndParsesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"credenciales inválidas"}`))
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, time.Second, creds.NewCell(), nil)
	err := client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/auth/login"}, nil)

	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %s", typed.Code())
	}
	if typed.Message() != "credenciales inválidas" {
		t.Fatalf("expected remote message to surface, got %q", typed.Message())
	}
}

func TestDoMapsTransportFailureToDependency(t *testing.T) {
	client, _ := NewClient("http://127.0.0.1:1", time.Second, creds.NewCell(), nil)
	err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, nil)

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected DEPENDENCY_ERROR, got %v", err)
	}
}

func TestDoEncodesQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, time.Second, creds.NewCell(), nil)
	q := url.Values{}
	q.Set("email", "user@example.com")
	var out []any
	if err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/orders/my-orders", Query: q}, &out); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotQuery != "email=user%40example.com" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}

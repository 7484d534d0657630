package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/legacyframe/storefront/pkg/creds"
	"github.com/legacyframe/storefront/pkg/rest"
)

func TestNewClientComposesIntoService(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`[{"id":1,"nombre":"Marco roble","precio":12500,"stock":4}]`))
	}))
	defer srv.Close()

	rc, err := rest.NewClient(srv.URL, time.Second, creds.NewCell(), nil)
	if err != nil {
		t.Fatalf("rest.NewClient: %v", err)
	}

	svc, err := NewService(NewClient(rc), "http://assets.local:8083", nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if err := svc.RefreshProducts(context.Background()); err != nil {
		t.Fatalf("RefreshProducts: %v", err)
	}
	if gotMethod != http.MethodGet || gotPath != "/api/catalog/productos" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	products := svc.Products()
	if len(products) != 1 || products[0].Name != "Marco roble" {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestClientProductPathsCarryID(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	rc, err := rest.NewClient(srv.URL, time.Second, creds.NewCell(), nil)
	if err != nil {
		t.Fatalf("rest.NewClient: %v", err)
	}
	client := NewClient(rc)

	ctx := context.Background()
	if err := client.UpdateProduct(ctx, 7, CreateProductRequest{Nombre: "Marco"}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if err := client.DeleteProduct(ctx, 7); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	want := []string{"PUT /api/catalog/productos/7", "DELETE /api/catalog/productos/7"}
	for i, w := range want {
		if paths[i] != w {
			t.Fatalf("expected %q, got %q", w, paths[i])
		}
	}
}

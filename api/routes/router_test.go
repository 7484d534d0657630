package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/legacyframe/storefront/internal/cart"
	"github.com/legacyframe/storefront/internal/catalog"
	"github.com/legacyframe/storefront/internal/contact"
	"github.com/legacyframe/storefront/internal/orders"
	"github.com/legacyframe/storefront/internal/prefs"
	"github.com/legacyframe/storefront/internal/session"
	"github.com/legacyframe/storefront/internal/users"
	"github.com/legacyframe/storefront/pkg/config"
	"github.com/legacyframe/storefront/pkg/creds"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeCatalog struct{}

func (fakeCatalog) Products() []catalog.Product {
	return []catalog.Product{{ID: 1, Name: "Moldura clásica", Price: 12000}}
}
func (fakeCatalog) Cuadros() []catalog.Cuadro                                  { return nil }
func (fakeCatalog) RefreshProducts(context.Context) error                      { return nil }
func (fakeCatalog) RefreshCuadros(context.Context) error                       { return nil }
func (fakeCatalog) Refresh(context.Context)                                    {}
func (fakeCatalog) CreateProduct(context.Context, catalog.ProductInput) error  { return nil }
func (fakeCatalog) CreateCuadro(context.Context, catalog.CuadroInput) error    { return nil }
func (fakeCatalog) UpdateProduct(context.Context, int64, catalog.ProductInput) error {
	return nil
}
func (fakeCatalog) DeleteProduct(context.Context, int64) error { return nil }

type fakeOrders struct{}

func (fakeOrders) History() []orders.OrderRecord                { return nil }
func (fakeOrders) Refresh(context.Context)                      {}
func (fakeOrders) Record(context.Context, []cart.Line, int) bool { return true }

type fakeRates struct{}

func (fakeRates) Dollar() *float64        { return nil }
func (fakeRates) Refresh(context.Context) {}

type fakeUsers struct{}

func (fakeUsers) Login(context.Context, string, string) (string, error) { return "tok", nil }
func (fakeUsers) Register(context.Context, users.RegisterRequest) error { return nil }
func (fakeUsers) Profile(context.Context) (*users.ProfileResponse, error) {
	return &users.ProfileResponse{Nombre: "Ana"}, nil
}
func (fakeUsers) UpdateProfile(context.Context, users.UpdateProfileRequest) error { return nil }
func (fakeUsers) Logout(context.Context) error                                    { return nil }

type fakeContact struct{}

var _ contact.Service = fakeContact{}

func (fakeContact) Send(context.Context, string, string, string) error { return nil }

func newTestRouter(t *testing.T, adminSession bool) http.Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&prefs.Preference{}, &cart.Line{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store, err := prefs.NewStore(db)
	if err != nil {
		t.Fatalf("prefs store: %v", err)
	}
	cartService, err := cart.NewService(cart.NewRepository(db), nil)
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}

	ctx := context.Background()
	if adminSession {
		if err := store.Set(ctx, prefs.KeyUserEmail, "admin@legacyframe.cl"); err != nil {
			t.Fatal(err)
		}
		if err := store.SetBool(ctx, prefs.KeyLoggedIn, true); err != nil {
			t.Fatal(err)
		}
	}

	sync, err := session.NewSynchronizer(store, creds.NewCell(), fakeCatalog{}, fakeOrders{}, fakeRates{}, nil)
	if err != nil {
		t.Fatalf("synchronizer: %v", err)
	}
	runCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	sync.Run(runCtx)

	cfg := &config.Config{}
	cfg.App.Env = "test"

	return NewRouter(
		cfg, nil, nil,
		nil, nil,
		store, sync,
		fakeUsers{}, fakeCatalog{}, cartService,
		fakeOrders{}, fakeContact{}, fakeRates{},
	)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-LegacyFrame-Env") != "test" {
		t.Fatal("env header missing")
	}
}

func TestCartAddAndFetch(t *testing.T) {
	router := newTestRouter(t, false)

	body := bytes.NewBufferString(`{"kind":"product","ref_id":1,"name":"Moldura clásica","price":12000}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch: expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data cart.Snapshot `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Count != 1 || envelope.Data.Total != 12000 {
		t.Fatalf("unexpected snapshot: %+v", envelope.Data)
	}
}

func TestCartAddRejectsUnknownKind(t *testing.T) {
	router := newTestRouter(t, false)

	body := bytes.NewBufferString(`{"kind":"mueble","ref_id":1,"name":"x","price":10}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/", body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminRoutesRequireAdminSession(t *testing.T) {
	router := newTestRouter(t, false)

	body := bytes.NewBufferString(`{"nombre":"Marco","precio":"1000"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/products/", body))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", rec.Code)
	}
}

func TestAdminRoutesAllowAdminSession(t *testing.T) {
	router := newTestRouter(t, true)

	body := bytes.NewBufferString(`{"nombre":"Marco","precio":"1000"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/products/", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSessionViewEndpoint(t *testing.T) {
	router := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/session", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data session.View `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !envelope.Data.IsAdmin || !envelope.Data.LoggedIn {
		t.Fatalf("seeded admin session not reflected: %+v", envelope.Data)
	}
}

package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	pkgerrors "github.com/legacyframe/storefront/pkg/errors"
	"github.com/legacyframe/storefront/pkg/logger"
	"github.com/legacyframe/storefront/pkg/metrics"
	"go.uber.org/multierr"
)

// Service keeps the in-memory product and cuadro lists mirrored from the
// productos service and exposes the admin CRUD operations.
type Service interface {
	Products() []Product
	Cuadros() []Cuadro
	RefreshProducts(ctx context.Context) error
	RefreshCuadros(ctx context.Context) error
	Refresh(ctx context.Context)
	CreateProduct(ctx context.Context, input ProductInput) error
	CreateCuadro(ctx context.Context, input CuadroInput) error
	UpdateProduct(ctx context.Context, id int64, input ProductInput) error
	DeleteProduct(ctx context.Context, id int64) error
}

// ProductInput is the admin payload for a catalog product. RawPrice carries
// the user-typed price; only its digits are significant.
type ProductInput struct {
	Name        string
	Description string
	RawPrice    string
	CategoryID  int64
	ImageRef    string
}

// CuadroInput is the admin payload for a framed piece.
type CuadroInput struct {
	Title       string
	Description string
	RawPrice    string
	Size        string
	Material    string
	ImageRef    string
}

type service struct {
	client    Client
	assetBase string
	logg      *logger.Logger
	metrics   *metrics.SyncMetrics

	mu       sync.RWMutex
	products []Product
	cuadros  []Cuadro
}

// NewService builds the catalog mirror.
func NewService(client Client, assetBase string, logg *logger.Logger, m *metrics.SyncMetrics) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("catalog client required")
	}
	return &service{
		client:    client,
		assetBase: strings.TrimRight(assetBase, "/"),
		logg:      logg,
		metrics:   m,
	}, nil
}

func (s *service) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *service) Cuadros() []Cuadro {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Cuadro, len(s.cuadros))
	copy(out, s.cuadros)
	return out
}

// RefreshProducts replaces the whole product list on success and leaves the
// previous list untouched on failure.
func (s *service) RefreshProducts(ctx context.Context) error {
	started := time.Now()
	remotes, err := s.client.ListProducts(ctx)
	s.metrics.ObserveDuration("products", time.Since(started))
	if err != nil {
		s.metrics.IncFailure("products")
		return err
	}
	s.metrics.IncSuccess("products")

	mapped := make([]Product, 0, len(remotes))
	for _, remote := range remotes {
		mapped = append(mapped, Product{
			ID:          remote.ID,
			Name:        remote.Nombre,
			Description: deref(remote.Descripcion),
			Price:       int(remote.Precio),
			ImageURL:    s.normalizeImageRef(deref(remote.ImagenURL)),
			Category:    categoryName(remote.Categoria),
			Stock:       remote.Stock,
		})
	}

	s.mu.Lock()
	s.products = mapped
	s.mu.Unlock()
	return nil
}

// RefreshCuadros replaces the cuadro list from the rows whose category is
// "cuadros". Same replace-or-keep contract as the product list.
func (s *service) RefreshCuadros(ctx context.Context) error {
	started := time.Now()
	remotes, err := s.client.ListProducts(ctx)
	s.metrics.ObserveDuration("cuadros", time.Since(started))
	if err != nil {
		s.metrics.IncFailure("cuadros")
		return err
	}
	s.metrics.IncSuccess("cuadros")

	mapped := make([]Cuadro, 0)
	for _, remote := range remotes {
		if remote.Categoria == nil || !strings.EqualFold(remote.Categoria.Nombre, cuadrosCategoryName) {
			continue
		}
		mapped = append(mapped, Cuadro{
			ID:          remote.ID,
			Title:       remote.Nombre,
			Description: deref(remote.Descripcion),
			Price:       int(remote.Precio),
			ImageURL:    s.normalizeImageRef(deref(remote.ImagenURL)),
			Category:    remote.Categoria.Nombre,
		})
	}

	s.mu.Lock()
	s.cuadros = mapped
	s.mu.Unlock()
	return nil
}

// Refresh runs both list fetches. Each one fails independently; failures are
// logged and swallowed so stale-but-valid data stays served.
func (s *service) Refresh(ctx context.Context) {
	var combined error
	if err := s.RefreshProducts(ctx); err != nil {
		combined = multierr.Append(combined, fmt.Errorf("products: %w", err))
	}
	if err := s.RefreshCuadros(ctx); err != nil {
		combined = multierr.Append(combined, fmt.Errorf("cuadros: %w", err))
	}
	if combined != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", combined.Error()), "catalog refresh kept previous lists")
	}
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) error {
	price, err := ParsePriceDigits(input.RawPrice)
	if err != nil {
		return err
	}
	categoryID := input.CategoryID
	if categoryID == 0 {
		categoryID = CategoryIDMolduras
	}
	req := CreateProductRequest{
		Nombre:      input.Name,
		Descripcion: input.Description,
		Precio:      float64(price),
		Stock:       10,
		ImagenURL:   input.ImageRef,
		Categoria:   CategoryIDRequest{ID: categoryID},
	}
	if err := s.client.CreateProduct(ctx, req); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

// CreateCuadro stores a framed piece as a product in the cuadros category;
// size and material travel inside the description.
func (s *service) CreateCuadro(ctx context.Context, input CuadroInput) error {
	price, err := ParsePriceDigits(input.RawPrice)
	if err != nil {
		return err
	}
	req := CreateProductRequest{
		Nombre:      input.Title,
		Descripcion: fmt.Sprintf("%s | %s | %s", input.Description, input.Size, input.Material),
		Precio:      float64(price),
		Stock:       5,
		ImagenURL:   input.ImageRef,
		Categoria:   CategoryIDRequest{ID: CategoryIDCuadros},
	}
	if err := s.client.CreateProduct(ctx, req); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, input ProductInput) error {
	price, err := ParsePriceDigits(input.RawPrice)
	if err != nil {
		return err
	}
	categoryID := input.CategoryID
	if categoryID == 0 {
		categoryID = CategoryIDMolduras
	}
	req := CreateProductRequest{
		Nombre:      input.Name,
		Descripcion: input.Description,
		Precio:      float64(price),
		Stock:       10,
		ImagenURL:   input.ImageRef,
		Categoria:   CategoryIDRequest{ID: categoryID},
	}
	if err := s.client.UpdateProduct(ctx, id, req); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.client.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

// ParsePriceDigits extracts the digits of a user-typed price and requires the
// result to be a positive amount.
func ParsePriceDigits(raw string) (int, error) {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "price is required")
	}
	value := 0
	for _, r := range digits.String() {
		value = value*10 + int(r-'0')
	}
	if value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	return value, nil
}

// normalizeImageRef keeps device-local and absolute refs as-is and prefixes
// server asset paths with the configured asset base.
func (s *service) normalizeImageRef(ref string) string {
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "content://"),
		strings.HasPrefix(ref, "file://"),
		strings.HasPrefix(ref, "http"):
		return ref
	}
	if s.assetBase == "" {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return s.assetBase + ref
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func categoryName(c *RemoteCategory) string {
	if c == nil || c.Nombre == "" {
		return "Sin categoría"
	}
	return c.Nombre
}

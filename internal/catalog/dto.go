package catalog

// Category ids assigned by the productos service.
const (
	CategoryIDCuadros  int64 = 1
	CategoryIDMolduras int64 = 2

	cuadrosCategoryName = "cuadros"
)

// RemoteProduct mirrors the productos service response shape.
type RemoteProduct struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion"`
	Precio      float64         `json:"precio"`
	Stock       int             `json:"stock"`
	ImagenURL   *string         `json:"imagenUrl"`
	Categoria   *RemoteCategory `json:"categoria"`
}

// RemoteCategory is the nested category payload.
type RemoteCategory struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

// CreateProductRequest is the admin create/update payload accepted by the
// productos service.
type CreateProductRequest struct {
	Nombre      string            `json:"nombre"`
	Descripcion string            `json:"descripcion"`
	Precio      float64           `json:"precio"`
	Stock       int               `json:"stock"`
	ImagenURL   string            `json:"imagenUrl"`
	Categoria   CategoryIDRequest `json:"categoria"`
}

// CategoryIDRequest references a category by id.
type CategoryIDRequest struct {
	ID int64 `json:"id"`
}

// Product is the storefront catalog projection.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
}

// Cuadro is a decorative framed piece; the productos service models it as a
// product in the "cuadros" category.
type Cuadro struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}

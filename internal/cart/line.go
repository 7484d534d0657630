package cart

import "time"

// Line kinds. A cart may mix framed pieces (cuadros) and catalog products;
// the same reference id can appear once under each kind.
const (
	KindProduct = "product"
	KindCuadro  = "cuadro"
)

// Line is one row of the local cart mirror. Identity is (Kind, RefID); the
// table holds at most one line per identity.
type Line struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind      string `gorm:"column:kind;uniqueIndex:idx_cart_lines_kind_ref" json:"kind"`
	RefID     int64  `gorm:"column:ref_id;uniqueIndex:idx_cart_lines_kind_ref" json:"ref_id"`
	Name      string `gorm:"column:name" json:"name"`
	UnitPrice int    `gorm:"column:unit_price" json:"unit_price"`
	ImageRef  string `gorm:"column:image_ref" json:"image_ref"`
	Quantity  int    `gorm:"column:quantity" json:"quantity"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Line) TableName() string { return "cart_lines" }

// Subtotal returns the line's contribution to the cart total.
func (l Line) Subtotal() int {
	return l.UnitPrice * l.Quantity
}

// Snapshot is the derived cart view pushed to watchers after every mutation.
type Snapshot struct {
	Lines []Line `json:"lines"`
	Count int    `json:"count"`
	Total int    `json:"total"`
}

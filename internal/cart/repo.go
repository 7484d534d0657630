package cart

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// LineRepository defines the persistence surface required by the aggregator.
type LineRepository interface {
	FindByKey(ctx context.Context, kind string, refID int64) (*Line, error)
	FindByID(ctx context.Context, id int64) (*Line, error)
	List(ctx context.Context) ([]Line, error)
	Insert(ctx context.Context, line *Line) error
	Update(ctx context.Context, line *Line) error
	Delete(ctx context.Context, line *Line) error
	DeleteAll(ctx context.Context) error
	SumQuantity(ctx context.Context) (int, error)
	SumTotal(ctx context.Context) (int, error)
}

// Repository exposes persistence operations for cart lines.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByKey loads the line for a (kind, refId) identity, or nil when absent.
func (r *Repository) FindByKey(ctx context.Context, kind string, refID int64) (*Line, error) {
	var line Line
	err := r.db.WithContext(ctx).
		Where("kind = ? AND ref_id = ?", kind, refID).
		First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// FindByID loads a line by its row id, or nil when absent.
func (r *Repository) FindByID(ctx context.Context, id int64) (*Line, error) {
	var line Line
	err := r.db.WithContext(ctx).First(&line, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// List returns all cart lines in insertion order.
func (r *Repository) List(ctx context.Context) ([]Line, error) {
	var rows []Line
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert persists a new line.
func (r *Repository) Insert(ctx context.Context, line *Line) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// Update saves the provided line.
func (r *Repository) Update(ctx context.Context, line *Line) error {
	return r.db.WithContext(ctx).Save(line).Error
}

// Delete removes a line by identity.
func (r *Repository) Delete(ctx context.Context, line *Line) error {
	return r.db.WithContext(ctx).Delete(&Line{}, line.ID).Error
}

// DeleteAll clears the cart table.
func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&Line{}).Error
}

// SumQuantity returns the total item count. COALESCE keeps the empty-table
// aggregate at zero instead of NULL.
func (r *Repository) SumQuantity(ctx context.Context) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&Line{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

// SumTotal returns the cart total as SUM(unit_price * quantity), zero when
// the table is empty.
func (r *Repository) SumTotal(ctx context.Context) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&Line{}).
		Select("COALESCE(SUM(unit_price * quantity), 0)").
		Scan(&total).Error
	return total, err
}

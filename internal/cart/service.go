package cart

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/legacyframe/storefront/pkg/errors"
	"github.com/legacyframe/storefront/pkg/logger"
)

// Service is the cart aggregator: it owns the at-most-one-line-per-identity
// invariant and the derived count/total projections.
type Service interface {
	AddOrIncrement(ctx context.Context, kind string, refID int64, name string, price int, imageRef string) error
	UpdateQuantity(ctx context.Context, lineID int64, quantity int) error
	Remove(ctx context.Context, lineID int64) error
	Clear(ctx context.Context) error
	Lines(ctx context.Context) ([]Line, error)
	Count(ctx context.Context) (int, error)
	Total(ctx context.Context) (int, error)
	Snapshot(ctx context.Context) (*Snapshot, error)
	Watch() (<-chan Snapshot, func())
}

type service struct {
	repo LineRepository
	logg *logger.Logger

	mu     sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
}

// NewService builds the aggregator on top of a line repository.
func NewService(repo LineRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &service{
		repo: repo,
		logg: logg,
		subs: make(map[int]chan Snapshot),
	}, nil
}

// AddOrIncrement merges an add-to-cart request into the table. An existing
// identity only gains quantity; its stored name/price/image are kept even if
// the caller passes different values. A new identity is inserted with the
// supplied attributes and quantity 1.
func (s *service) AddOrIncrement(ctx context.Context, kind string, refID int64, name string, price int, imageRef string) error {
	if kind != KindProduct && kind != KindCuadro {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown cart line kind %q", kind))
	}

	existing, err := s.repo.FindByKey(ctx, kind, refID)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.Quantity++
		if err := s.repo.Update(ctx, existing); err != nil {
			return err
		}
		return s.notify(ctx)
	}

	line := &Line{
		Kind:      kind,
		RefID:     refID,
		Name:      name,
		UnitPrice: price,
		ImageRef:  imageRef,
		Quantity:  1,
	}
	if err := s.repo.Insert(ctx, line); err != nil {
		return err
	}
	return s.notify(ctx)
}

// UpdateQuantity sets the quantity of a line. Zero or negative quantities are
// a no-op; removal is an explicit separate operation.
func (s *service) UpdateQuantity(ctx context.Context, lineID int64, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	line, err := s.repo.FindByID(ctx, lineID)
	if err != nil {
		return err
	}
	if line == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	line.Quantity = quantity
	if err := s.repo.Update(ctx, line); err != nil {
		return err
	}
	return s.notify(ctx)
}

// Remove deletes a line unconditionally.
func (s *service) Remove(ctx context.Context, lineID int64) error {
	line, err := s.repo.FindByID(ctx, lineID)
	if err != nil {
		return err
	}
	if line == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	if err := s.repo.Delete(ctx, line); err != nil {
		return err
	}
	return s.notify(ctx)
}

// Clear empties the whole cart.
func (s *service) Clear(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return err
	}
	return s.notify(ctx)
}

func (s *service) Lines(ctx context.Context) ([]Line, error) {
	return s.repo.List(ctx)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.SumQuantity(ctx)
}

func (s *service) Total(ctx context.Context) (int, error) {
	return s.repo.SumTotal(ctx)
}

// Snapshot materializes the current derived view.
func (s *service) Snapshot(ctx context.Context) (*Snapshot, error) {
	lines, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.SumQuantity(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.SumTotal(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Lines: lines, Count: count, Total: total}, nil
}

// Watch subscribes to cart snapshots. A snapshot is pushed after every
// mutation; slow consumers drop intermediate snapshots.
func (s *service) Watch() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *service) notify(ctx context.Context) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "cart snapshot failed after mutation", err)
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- *snap:
		default:
		}
	}
	return nil
}

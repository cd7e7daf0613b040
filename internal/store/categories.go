package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/dkolesn/swapmart/internal/model"
)

// CategoriesAPI is the slice's view of the remote category surface.
type CategoriesAPI interface {
	Categories(ctx context.Context) ([]model.Category, error)
	CategoryByID(ctx context.Context, id int64) (*model.Category, error)
}

// Categories caches the immutable reference collection and the last single
// category fetched.
type Categories struct {
	api CategoriesAPI

	all     resource[[]model.Category]
	current resource[*model.Category]

	log *zap.Logger
}

func NewCategories(api CategoriesAPI, log *zap.Logger) *Categories {
	if log == nil {
		log = zap.NewNop()
	}
	return &Categories{api: api, log: log}
}

// FetchAll replaces the cached collection wholesale.
func (s *Categories) FetchAll(ctx context.Context) error {
	s.all.begin()
	cats, err := s.api.Categories(ctx)
	if err != nil {
		s.all.fail(err)
		return err
	}
	s.all.resolve(cats)
	s.log.Debug("categories fetched", zap.Int("count", len(cats)))
	return nil
}

// FetchByID populates the single-category slot.
func (s *Categories) FetchByID(ctx context.Context, id int64) error {
	s.current.begin()
	cat, err := s.api.CategoryByID(ctx, id)
	if err != nil {
		s.current.fail(err)
		return err
	}
	s.current.resolve(cat)
	return nil
}

// All returns the cached collection.
func (s *Categories) All() Snapshot[[]model.Category] { return s.all.snapshot() }

// Current returns the single-category slot.
func (s *Categories) Current() Snapshot[*model.Category] { return s.current.snapshot() }

// ClearCurrent empties the single-category slot.
func (s *Categories) ClearCurrent() { s.current.reset() }

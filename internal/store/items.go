package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/dkolesn/swapmart/internal/model"
	"github.com/dkolesn/swapmart/internal/query"
)

// ItemsAPI is the slice's view of the remote listing surface.
type ItemsAPI interface {
	Items(ctx context.Context) ([]model.Item, error)
	ItemByID(ctx context.Context, id int64) (*model.Item, error)
}

// Items caches the listing collection, the session user's own subset, and the
// last single item fetched. Each bucket runs its own lifecycle, so a failed
// detail fetch never clobbers the browse view.
type Items struct {
	api    ItemsAPI
	userID func() int64

	all     resource[[]model.Item]
	mine    resource[[]model.Item]
	current resource[*model.Item]

	log *zap.Logger
}

// NewItems constructs the slice. userID supplies the current session user for
// the ownership filter; it is read at fetch time, not captured.
func NewItems(api ItemsAPI, userID func() int64, log *zap.Logger) *Items {
	if log == nil {
		log = zap.NewNop()
	}
	return &Items{api: api, userID: userID, log: log}
}

// FetchAll replaces the cached collection with the server's full listing.
// On failure prior data stays readable.
func (s *Items) FetchAll(ctx context.Context) error {
	s.all.begin()
	items, err := s.api.Items(ctx)
	if err != nil {
		s.all.fail(err)
		return err
	}
	s.all.resolve(items)
	s.log.Debug("items fetched", zap.Int("count", len(items)))
	return nil
}

// FetchMine refetches the listing and keeps the subset owned by the current
// session user. The remote surface has no owner filter, so the subset is
// computed client-side, consistently with Others.
func (s *Items) FetchMine(ctx context.Context) error {
	s.mine.begin()
	items, err := s.api.Items(ctx)
	if err != nil {
		s.mine.fail(err)
		return err
	}
	mine, _ := query.Partition(items, s.userID())
	s.mine.resolve(mine)
	return nil
}

// FetchByID populates the single-item slot.
func (s *Items) FetchByID(ctx context.Context, id int64) error {
	s.current.begin()
	item, err := s.api.ItemByID(ctx, id)
	if err != nil {
		s.current.fail(err)
		return err
	}
	s.current.resolve(item)
	return nil
}

// All returns the raw cached collection.
func (s *Items) All() Snapshot[[]model.Item] { return s.all.snapshot() }

// Mine returns the cached owned subset.
func (s *Items) Mine() Snapshot[[]model.Item] { return s.mine.snapshot() }

// Current returns the single-item slot.
func (s *Items) Current() Snapshot[*model.Item] { return s.current.snapshot() }

// Others derives the browse view from the cached collection: approved items
// belonging to other users. The partition is a view, never stored.
func (s *Items) Others() []model.Item {
	_, others := query.Partition(s.all.snapshot().Data, s.userID())
	return others
}

// ClearCurrent empties the single-item slot, e.g. when leaving a detail view.
func (s *Items) ClearCurrent() { s.current.reset() }

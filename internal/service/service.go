package service

import (
	"context"
	"strconv"

	"github.com/morikuni/failure"
	"github.com/rs/zerolog"

	"annals/internal/domain"
	"annals/internal/repository"
)

// Observer receives the outcome of every store operation
type Observer interface {
	ObserveStoreOp(op string, err error)
}

// EntryService provides business logic for historical entries
type EntryService struct {
	repo     repository.EntryRepository
	eventBus *EventBus
	observer Observer
}

// NewEntryService creates a new entry service
func NewEntryService(repo repository.EntryRepository, eventBus *EventBus) *EntryService {
	return &EntryService{
		repo:     repo,
		eventBus: eventBus,
	}
}

// SetObserver sets the store operation observer (metrics)
func (s *EntryService) SetObserver(o Observer) {
	s.observer = o
}

func (s *EntryService) observe(ctx context.Context, op string, err error) {
	if s.observer != nil {
		s.observer.ObserveStoreOp(op, err)
	}
	if err != nil && !domain.IsNotFound(err) && !domain.IsValidation(err) {
		zerolog.Ctx(ctx).Error().Stack().Err(err).Str("op", op).Msg("store operation failed")
	}
}

// List returns every entry in ascending id order
func (s *EntryService) List(ctx context.Context) ([]domain.Entry, error) {
	entries, err := s.repo.List(ctx)
	s.observe(ctx, "list", err)
	return entries, err
}

// Get retrieves a single entry by id
func (s *EntryService) Get(ctx context.Context, id int64) (*domain.Entry, error) {
	entry, err := s.repo.Get(ctx, id)
	s.observe(ctx, "get", err)
	return entry, err
}

// Create validates and stores a new entry
func (s *EntryService) Create(ctx context.Context, in domain.EntryInput) (*domain.Entry, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		s.observe(ctx, "create", err)
		return nil, err
	}

	entry, err := s.repo.Create(ctx, in)
	s.observe(ctx, "create", err)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Int64("entry_id", entry.ID).Msg("entry created")
	s.eventBus.Publish(Event{Type: EventEntryCreated, EntryID: entry.ID})
	return entry, nil
}

// Update replaces the name and details of an existing entry
func (s *EntryService) Update(ctx context.Context, id int64, in domain.EntryInput) (*domain.Entry, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		s.observe(ctx, "update", err)
		return nil, err
	}

	entry, err := s.repo.Update(ctx, id, in)
	s.observe(ctx, "update", err)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Int64("entry_id", id).Msg("entry updated")
	s.eventBus.Publish(Event{Type: EventEntryUpdated, EntryID: id})
	return entry, nil
}

// Delete removes an entry
func (s *EntryService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	s.observe(ctx, "delete", err)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Int64("entry_id", id).Msg("entry deleted")
	s.eventBus.Publish(Event{Type: EventEntryDeleted, EntryID: id})
	return nil
}

// Count returns the number of stored entries
func (s *EntryService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	s.observe(ctx, "count", err)
	return n, err
}

// Ping checks that the store is reachable
func (s *EntryService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// Import validates every input and then stores them all.
// Nothing is written when any input is invalid. Stores implementing
// repository.BulkCreator write atomically; others are written one by one.
func (s *EntryService) Import(ctx context.Context, ins []domain.EntryInput) ([]domain.Entry, error) {
	normalized := make([]domain.EntryInput, len(ins))
	for i, in := range ins {
		in = in.Normalize()
		if err := in.Validate(); err != nil {
			return nil, failure.Wrap(err, failure.Context{"index": strconv.Itoa(i)})
		}
		normalized[i] = in
	}

	var (
		created []domain.Entry
		err     error
	)
	if bulk, ok := s.repo.(repository.BulkCreator); ok {
		created, err = bulk.CreateMany(ctx, normalized)
	} else {
		created, err = s.createEach(ctx, normalized)
	}
	s.observe(ctx, "import", err)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int("count", len(created)).Msg("entries imported")
	s.eventBus.Publish(Event{Type: EventEntryImported, Count: len(created)})
	return created, nil
}

func (s *EntryService) createEach(ctx context.Context, ins []domain.EntryInput) ([]domain.Entry, error) {
	created := make([]domain.Entry, 0, len(ins))
	for _, in := range ins {
		entry, err := s.repo.Create(ctx, in)
		if err != nil {
			return created, err
		}
		created = append(created, *entry)
	}
	return created, nil
}

// Export returns every entry for serialization by a codec
func (s *EntryService) Export(ctx context.Context) ([]domain.Entry, error) {
	return s.List(ctx)
}

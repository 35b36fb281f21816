package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// ItemService performs owner-scoped inventory operations. The owner id
// always comes from the verified principal, never from the payload.
type ItemService struct {
	items      repository.ItemRepository
	dispatcher events.Dispatcher
}

// NewItemService builds the service.
func NewItemService(items repository.ItemRepository, dispatcher events.Dispatcher) *ItemService {
	return &ItemService{items: items, dispatcher: dispatcher}
}

// ItemCreateInput carries fields for a new item.
type ItemCreateInput struct {
	Name   string
	Model  *string
	Serial *string
}

// ItemUpdateInput carries optional updates for an existing item.
type ItemUpdateInput struct {
	Name   *string
	Model  *string
	Serial *string
}

// CreateItem stores a new item stamped with the authenticated owner.
func (s *ItemService) CreateItem(ctx context.Context, ownerID string, input ItemCreateInput) (*domain.Item, error) {
	item := &domain.Item{
		OwnerID: ownerID,
		Name:    input.Name,
		Model:   input.Model,
		Serial:  input.Serial,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventItemCreated, ownerID, item)
	return item, nil
}

// ListItems returns the owner's items.
func (s *ItemService) ListItems(ctx context.Context, ownerID string, limit, offset int) ([]domain.Item, error) {
	return s.items.ListByOwner(ctx, repository.OwnerScope(ownerID), limit, offset)
}

// GetItem fetches a single item within the owner's scope. A malformed id,
// a missing record and a record owned by someone else are all not-found.
func (s *ItemService) GetItem(ctx context.Context, ownerID, itemID string) (*domain.Item, error) {
	if !repository.ValidRecordID(itemID) {
		return nil, apperrors.NewNotFound("item", nil)
	}

	item, err := s.items.GetScoped(ctx, repository.RecordScope(ownerID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("item", nil)
		}
		return nil, err
	}
	return item, nil
}

// UpdateItem applies field updates within the owner's scope.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID string, input ItemUpdateInput) (*domain.Item, error) {
	item, err := s.GetItem(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Model != nil {
		item.Model = input.Model
	}
	if input.Serial != nil {
		item.Serial = input.Serial
	}

	if err := s.items.UpdateScoped(ctx, repository.RecordScope(ownerID, itemID), item); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("item", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventItemUpdated, ownerID, item)
	return item, nil
}

// DeleteItem removes an item within the owner's scope.
func (s *ItemService) DeleteItem(ctx context.Context, ownerID, itemID string) error {
	if !repository.ValidRecordID(itemID) {
		return apperrors.NewNotFound("item", nil)
	}

	if err := s.items.DeleteScoped(ctx, repository.RecordScope(ownerID, itemID)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("item", nil)
		}
		return err
	}

	s.publish(ctx, events.EventItemDeleted, ownerID, &domain.Item{ID: itemID, OwnerID: ownerID})
	return nil
}

func (s *ItemService) publish(ctx context.Context, eventType events.EventType, ownerID string, item *domain.Item) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		OwnerID:   ownerID,
		Timestamp: time.Now(),
		Payload:   events.ItemPayload{ItemID: item.ID, Name: item.Name},
	})
}

package service

import (
	"context"
	"fmt"

	"github.com/pvhoang/eventdesk/internal/core/domain"
)

func (s *CatalogService) AddInventoryItem(ctx context.Context, name string, total int, description string) (*domain.InventoryItem, error) {
	if total < 0 {
		return nil, domain.ErrNegativeQuantity
	}
	item := domain.InventoryItem{
		ID:          s.takeItemID(),
		Name:        name,
		Total:       total,
		Description: description,
	}
	s.inventory = append(s.inventory, item)
	if err := s.store.SaveInventory(ctx, s.inventory); err != nil {
		return nil, fmt.Errorf("save inventory: %w", err)
	}
	return &s.inventory[len(s.inventory)-1], nil
}

// ItemUpdate carries the fields to change; nil means leave as is.
type ItemUpdate struct {
	Name        *string
	Total       *int
	Description *string
}

func (s *CatalogService) UpdateInventoryItem(ctx context.Context, id int, upd ItemUpdate) error {
	item := s.ItemByID(id)
	if item == nil {
		return ErrItemNotFound
	}
	if upd.Total != nil {
		if err := item.SetTotal(*upd.Total); err != nil {
			return err
		}
	}
	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if err := s.store.SaveInventory(ctx, s.inventory); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	return nil
}

// AllocateToEvent reserves qty units of an item for an event. The item
// is checked and debited first; the event's ledger entry is recorded
// only after that succeeds, so a rejected allocation never shows up in
// the ledger.
func (s *CatalogService) AllocateToEvent(ctx context.Context, eventID, itemID, qty int) error {
	event := s.EventByID(eventID)
	if event == nil {
		return ErrEventNotFound
	}
	item := s.ItemByID(itemID)
	if item == nil {
		return ErrItemNotFound
	}
	if err := item.Allocate(qty); err != nil {
		return err
	}
	event.AllocateItem(itemID, qty)

	if err := s.store.SaveInventory(ctx, s.inventory); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	if err := s.store.SaveEvents(ctx, s.events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}

// DeallocateFromEvent releases up to qty units of an item from an
// event's ledger and returns how much was actually released. The item is
// credited with the ledger's answer, not the requested amount, so asking
// for more than is allocated just drains the entry.
func (s *CatalogService) DeallocateFromEvent(ctx context.Context, eventID, itemID, qty int) (int, error) {
	event := s.EventByID(eventID)
	if event == nil {
		return 0, ErrEventNotFound
	}
	item := s.ItemByID(itemID)
	if item == nil {
		return 0, ErrItemNotFound
	}
	actual := event.DeallocateItem(itemID, qty)
	if actual == 0 {
		return 0, nil
	}
	releaseToItem(item, actual)

	if err := s.store.SaveInventory(ctx, s.inventory); err != nil {
		return actual, fmt.Errorf("save inventory: %w", err)
	}
	if err := s.store.SaveEvents(ctx, s.events); err != nil {
		return actual, fmt.Errorf("save events: %w", err)
	}
	return actual, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pvhoang/eventdesk/internal/core/domain"
)

// CreateEvent validates the schedule fields and adds a new upcoming
// event.
func (s *CatalogService) CreateEvent(ctx context.Context, name, date, time, location, description, category string) (*domain.Event, error) {
	if !domain.ValidDate(date) {
		return nil, domain.ErrInvalidDate
	}
	if !domain.ValidTime(time) {
		return nil, domain.ErrInvalidTime
	}
	event := domain.NewEvent(s.takeEventID(), name, date, time, location, description, category)
	s.events = append(s.events, event)
	if err := s.store.SaveEvents(ctx, s.events); err != nil {
		return nil, fmt.Errorf("save events: %w", err)
	}
	return &s.events[len(s.events)-1], nil
}

// EventUpdate carries the fields to change; nil means leave as is.
type EventUpdate struct {
	Name        *string
	Date        *string
	Time        *string
	Location    *string
	Description *string
	Category    *string
}

func (s *CatalogService) UpdateEvent(ctx context.Context, id int, upd EventUpdate) error {
	event := s.EventByID(id)
	if event == nil {
		return ErrEventNotFound
	}
	if upd.Date != nil && !domain.ValidDate(*upd.Date) {
		return domain.ErrInvalidDate
	}
	if upd.Time != nil && !domain.ValidTime(*upd.Time) {
		return domain.ErrInvalidTime
	}
	if upd.Name != nil {
		event.Name = *upd.Name
	}
	if upd.Date != nil {
		event.Date = *upd.Date
	}
	if upd.Time != nil {
		event.Time = *upd.Time
	}
	if upd.Location != nil {
		event.Location = *upd.Location
	}
	if upd.Description != nil {
		event.Description = *upd.Description
	}
	if upd.Category != nil {
		event.Category = *upd.Category
	}
	if err := s.store.SaveEvents(ctx, s.events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}

func (s *CatalogService) SetEventStatus(ctx context.Context, id int, status domain.EventStatus) error {
	event := s.EventByID(id)
	if event == nil {
		return ErrEventNotFound
	}
	event.Status = status
	if err := s.store.SaveEvents(ctx, s.events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}

// SearchEvents matches the term against event names (case-insensitive)
// and dates.
func (s *CatalogService) SearchEvents(term string) []domain.Event {
	term = strings.ToLower(term)
	var matches []domain.Event
	for _, event := range s.events {
		if strings.Contains(strings.ToLower(event.Name), term) || strings.Contains(event.Date, term) {
			matches = append(matches, event)
		}
	}
	return matches
}

// DeleteEvent removes an event and everything hanging off it: the
// inventory its ledger reserved goes back to the items' available pool,
// and every attendee registered for it is dropped. The cascade is best
// effort; an unresolvable item id skips that entry and the rest still
// runs.
func (s *CatalogService) DeleteEvent(ctx context.Context, id int) error {
	idx := -1
	for i := range s.events {
		if s.events[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrEventNotFound
	}

	for itemID, qty := range s.events[idx].AllocatedInventory {
		item := s.ItemByID(itemID)
		if item == nil {
			continue
		}
		releaseToItem(item, qty)
	}

	kept := s.attendees[:0]
	for _, attendee := range s.attendees {
		if attendee.EventID != id {
			kept = append(kept, attendee)
		}
	}
	s.attendees = kept

	s.events = append(s.events[:idx], s.events[idx+1:]...)

	// Persist all three affected collections even if one save fails.
	var firstErr error
	if err := s.store.SaveEvents(ctx, s.events); err != nil {
		firstErr = fmt.Errorf("save events: %w", err)
	}
	if err := s.store.SaveInventory(ctx, s.inventory); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("save inventory: %w", err)
	}
	if err := s.store.SaveAttendees(ctx, s.attendees); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("save attendees: %w", err)
	}
	return firstErr
}

// releaseToItem returns qty units to the item's available pool, clamped
// so the item never goes below zero allocated even when the ledger and
// the item have drifted apart.
func releaseToItem(item *domain.InventoryItem, qty int) {
	if qty > item.Allocated {
		qty = item.Allocated
	}
	if qty > 0 {
		item.Deallocate(qty)
	}
}

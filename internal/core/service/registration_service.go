package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pvhoang/eventdesk/internal/core/domain"
)

// RegisterAttendee registers a person (by name) for an event. An
// existing registration for the same event is confirmed rather than
// duplicated, and a generic profile (event id 0) under the same name is
// promoted to the event instead of spawning a second record, keeping one
// attendee tied to at most one event.
func (s *CatalogService) RegisterAttendee(ctx context.Context, eventID int, name, contact string) (*domain.Attendee, error) {
	event := s.EventByID(eventID)
	if event == nil {
		return nil, ErrEventNotFound
	}
	if event.Status == domain.StatusCanceled || event.Status == domain.StatusCompleted {
		return nil, ErrRegistrationClosed
	}

	attendee := s.attendeeByName(name, eventID)
	if attendee == nil {
		if attendee = s.attendeeByName(name, 0); attendee != nil {
			attendee.EventID = eventID
			attendee.Contact = contact
		}
	}
	if attendee == nil {
		s.attendees = append(s.attendees, domain.Attendee{
			ID:      s.takeAttendeeID(),
			Name:    name,
			Contact: contact,
			EventID: eventID,
		})
		attendee = &s.attendees[len(s.attendees)-1]
	}
	event.AddAttendee(attendee.ID)

	if err := s.store.SaveEvents(ctx, s.events); err != nil {
		return nil, fmt.Errorf("save events: %w", err)
	}
	if err := s.store.SaveAttendees(ctx, s.attendees); err != nil {
		return nil, fmt.Errorf("save attendees: %w", err)
	}
	return attendee, nil
}

// CancelRegistration removes the named person's registration for an
// event: the attendee record is deleted and the event's reference to it
// dropped.
func (s *CatalogService) CancelRegistration(ctx context.Context, eventID int, name string) error {
	event := s.EventByID(eventID)
	if event == nil {
		return ErrEventNotFound
	}
	attendee := s.attendeeByName(name, eventID)
	if attendee == nil {
		return ErrNotRegistered
	}

	event.RemoveAttendee(attendee.ID)
	for i := range s.attendees {
		if s.attendees[i].ID == attendee.ID {
			s.attendees = append(s.attendees[:i], s.attendees[i+1:]...)
			break
		}
	}

	if err := s.store.SaveEvents(ctx, s.events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	if err := s.store.SaveAttendees(ctx, s.attendees); err != nil {
		return fmt.Errorf("save attendees: %w", err)
	}
	return nil
}

// CheckInAttendee marks an attendee present at the event they are
// registered for. Returns false when they had already checked in;
// checking in is one way.
func (s *CatalogService) CheckInAttendee(ctx context.Context, eventID, attendeeID int) (bool, error) {
	if s.EventByID(eventID) == nil {
		return false, ErrEventNotFound
	}
	attendee := s.AttendeeByID(attendeeID)
	if attendee == nil {
		return false, ErrAttendeeNotFound
	}
	if attendee.EventID != eventID {
		return false, ErrNotRegistered
	}
	if !attendee.CheckIn() {
		return false, nil
	}
	if err := s.store.SaveAttendees(ctx, s.attendees); err != nil {
		return true, fmt.Errorf("save attendees: %w", err)
	}
	return true, nil
}

// UpdateContactInfo updates the named person's generic profile and only
// that profile, creating it when absent. Event-specific registrations
// keep the contact info they were made with.
func (s *CatalogService) UpdateContactInfo(ctx context.Context, name, contact string) (*domain.Attendee, error) {
	profile := s.attendeeByName(name, 0)
	if profile == nil {
		s.attendees = append(s.attendees, domain.Attendee{
			ID:      s.takeAttendeeID(),
			Name:    name,
			Contact: contact,
		})
		profile = &s.attendees[len(s.attendees)-1]
	} else {
		profile.Contact = contact
	}
	if err := s.store.SaveAttendees(ctx, s.attendees); err != nil {
		return nil, fmt.Errorf("save attendees: %w", err)
	}
	return profile, nil
}

func (s *CatalogService) attendeeByName(name string, eventID int) *domain.Attendee {
	for i := range s.attendees {
		if s.attendees[i].EventID == eventID && strings.EqualFold(s.attendees[i].Name, name) {
			return &s.attendees[i]
		}
	}
	return nil
}

// Package service holds the catalog: the single owner of the user,
// event, attendee and inventory collections, and the only place
// cross-entity consistency is enforced. It is built for exactly one
// interactive operator; nothing here is safe for concurrent use.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/pvhoang/eventdesk/internal/core/domain"
	"github.com/pvhoang/eventdesk/internal/port"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrAttendeeNotFound   = errors.New("attendee not found")
	ErrItemNotFound       = errors.New("inventory item not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRegistrationClosed = errors.New("event is not open for registration")
	ErrNotRegistered      = errors.New("not registered for this event")
)

type CatalogService struct {
	store port.StateStore

	users     []domain.User
	events    []domain.Event
	attendees []domain.Attendee
	inventory []domain.InventoryItem

	nextUserID     int
	nextEventID    int
	nextAttendeeID int
	nextItemID     int
}

func NewCatalogService(store port.StateStore) *CatalogService {
	return &CatalogService{
		store:          store,
		nextUserID:     1,
		nextEventID:    1,
		nextAttendeeID: 1,
		nextItemID:     1,
	}
}

// Load replaces the in-memory collections with the persisted state,
// advances every id counter past the highest loaded id, and recomputes
// item allocations from the events' ledgers. The persisted allocated
// quantity of an item is never trusted: the collections are saved
// independently, so after an interrupted save only the ledgers are
// authoritative.
func (s *CatalogService) Load(ctx context.Context) error {
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	events, err := s.store.LoadEvents(ctx)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	attendees, err := s.store.LoadAttendees(ctx)
	if err != nil {
		return fmt.Errorf("load attendees: %w", err)
	}
	inventory, err := s.store.LoadInventory(ctx)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}

	s.users = users
	s.events = events
	s.attendees = attendees
	s.inventory = inventory

	for _, u := range s.users {
		s.bumpUserID(u.ID)
	}
	for _, e := range s.events {
		s.bumpEventID(e.ID)
	}
	for _, a := range s.attendees {
		s.bumpAttendeeID(a.ID)
	}
	for _, i := range s.inventory {
		s.bumpItemID(i.ID)
	}

	s.recomputeAllocations()
	return nil
}

// recomputeAllocations rebuilds every item's allocated quantity from the
// events' ledgers. Ledger entries pointing at unknown items contribute
// nothing.
func (s *CatalogService) recomputeAllocations() {
	for i := range s.inventory {
		s.inventory[i].Allocated = 0
	}
	for _, event := range s.events {
		for itemID, qty := range event.AllocatedInventory {
			if item := s.ItemByID(itemID); item != nil {
				item.Allocated += qty
			}
		}
	}
}

// SaveAll persists every collection.
func (s *CatalogService) SaveAll(ctx context.Context) error {
	if err := s.store.SaveUsers(ctx, s.users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	if err := s.store.SaveEvents(ctx, s.events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	if err := s.store.SaveAttendees(ctx, s.attendees); err != nil {
		return fmt.Errorf("save attendees: %w", err)
	}
	if err := s.store.SaveInventory(ctx, s.inventory); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	return nil
}

// Seed fills empty collections with starter data so a first run has an
// admin account and something to look at.
func (s *CatalogService) Seed(ctx context.Context) error {
	seeded := false
	if len(s.users) == 0 {
		log.Println("no users found, seeding initial accounts")
		s.users = append(s.users,
			domain.User{ID: s.takeUserID(), Username: "admin", Password: "adminpass", Role: domain.RoleAdmin},
			domain.User{ID: s.takeUserID(), Username: "user1", Password: "user1pass", Role: domain.RoleRegular},
			domain.User{ID: s.takeUserID(), Username: "user2", Password: "user2pass", Role: domain.RoleRegular},
		)
		seeded = true
	}
	if len(s.events) == 0 {
		log.Println("no events found, seeding initial events")
		s.events = append(s.events,
			domain.NewEvent(s.takeEventID(), "Tech Conference 2025", "2025-10-20", "09:00", "Grand Hall", "Annual tech conference", "Conference"),
			domain.NewEvent(s.takeEventID(), "Summer Music Festival", "2025-07-15", "14:00", "City Park", "Outdoor music event", "Social"),
		)
		seeded = true
	}
	if len(s.inventory) == 0 {
		log.Println("no inventory found, seeding initial items")
		s.inventory = append(s.inventory,
			domain.InventoryItem{ID: s.takeItemID(), Name: "Projector", Total: 5, Description: "HD Projector"},
			domain.InventoryItem{ID: s.takeItemID(), Name: "Chairs", Total: 100, Description: "Standard chairs"},
		)
		seeded = true
	}
	if !seeded {
		return nil
	}
	return s.SaveAll(ctx)
}

// Accessors. The returned slices are the catalog's own; callers must
// treat them as read-only.

func (s *CatalogService) Users() []domain.User              { return s.users }
func (s *CatalogService) Events() []domain.Event            { return s.events }
func (s *CatalogService) Attendees() []domain.Attendee      { return s.attendees }
func (s *CatalogService) Inventory() []domain.InventoryItem { return s.inventory }

func (s *CatalogService) EventByID(id int) *domain.Event {
	for i := range s.events {
		if s.events[i].ID == id {
			return &s.events[i]
		}
	}
	return nil
}

func (s *CatalogService) AttendeeByID(id int) *domain.Attendee {
	for i := range s.attendees {
		if s.attendees[i].ID == id {
			return &s.attendees[i]
		}
	}
	return nil
}

func (s *CatalogService) ItemByID(id int) *domain.InventoryItem {
	for i := range s.inventory {
		if s.inventory[i].ID == id {
			return &s.inventory[i]
		}
	}
	return nil
}

func (s *CatalogService) ItemByName(name string) *domain.InventoryItem {
	for i := range s.inventory {
		if strings.EqualFold(s.inventory[i].Name, name) {
			return &s.inventory[i]
		}
	}
	return nil
}

func (s *CatalogService) UserByUsername(username string) *domain.User {
	for i := range s.users {
		if s.users[i].Username == username {
			return &s.users[i]
		}
	}
	return nil
}

// Id counters are monotonic within a process: they only ever move
// forward, and loading advances them past every persisted id.

func (s *CatalogService) takeUserID() int {
	id := s.nextUserID
	s.nextUserID++
	return id
}

func (s *CatalogService) takeEventID() int {
	id := s.nextEventID
	s.nextEventID++
	return id
}

func (s *CatalogService) takeAttendeeID() int {
	id := s.nextAttendeeID
	s.nextAttendeeID++
	return id
}

func (s *CatalogService) takeItemID() int {
	id := s.nextItemID
	s.nextItemID++
	return id
}

func (s *CatalogService) bumpUserID(id int) {
	if id >= s.nextUserID {
		s.nextUserID = id + 1
	}
}

func (s *CatalogService) bumpEventID(id int) {
	if id >= s.nextEventID {
		s.nextEventID = id + 1
	}
}

func (s *CatalogService) bumpAttendeeID(id int) {
	if id >= s.nextAttendeeID {
		s.nextAttendeeID = id + 1
	}
}

func (s *CatalogService) bumpItemID(id int) {
	if id >= s.nextItemID {
		s.nextItemID = id + 1
	}
}

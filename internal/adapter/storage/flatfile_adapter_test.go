package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pvhoang/eventdesk/internal/core/domain"
)

func newTestStore(t *testing.T) *FlatFileStore {
	t.Helper()
	store, err := NewFlatFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store
}

func TestFlatFile_LoadMissingFiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	users, err := store.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected no users, got %d", len(users))
	}

	events, err := store.LoadEvents(ctx)
	if err != nil {
		t.Fatalf("load events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestFlatFile_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	event := domain.NewEvent(1, "Tech Conference 2025", "2025-10-20", "09:00", "Grand Hall", "Annual tech conference", "Conference")
	event.AddAttendee(3)
	event.AllocateItem(2, 5)

	if err := store.SaveEvents(ctx, []domain.Event{event}); err != nil {
		t.Fatalf("save events: %v", err)
	}
	if err := store.SaveAttendees(ctx, []domain.Attendee{
		{ID: 3, Name: "user1", Contact: "user1@mail.test", EventID: 1},
	}); err != nil {
		t.Fatalf("save attendees: %v", err)
	}
	if err := store.SaveInventory(ctx, []domain.InventoryItem{
		{ID: 2, Name: "Chairs", Total: 100, Allocated: 5, Description: "Standard chairs"},
	}); err != nil {
		t.Fatalf("save inventory: %v", err)
	}
	if err := store.SaveUsers(ctx, []domain.User{
		{ID: 1, Username: "admin", Password: "adminpass", Role: domain.RoleAdmin},
	}); err != nil {
		t.Fatalf("save users: %v", err)
	}

	events, err := store.LoadEvents(ctx)
	if err != nil {
		t.Fatalf("load events: %v", err)
	}
	if len(events) != 1 || events[0].AllocatedInventory[2] != 5 || len(events[0].AttendeeIDs) != 1 {
		t.Errorf("events round trip mismatch: %+v", events)
	}

	attendees, err := store.LoadAttendees(ctx)
	if err != nil {
		t.Fatalf("load attendees: %v", err)
	}
	if len(attendees) != 1 || attendees[0].Name != "user1" {
		t.Errorf("attendees round trip mismatch: %+v", attendees)
	}

	items, err := store.LoadInventory(ctx)
	if err != nil {
		t.Fatalf("load inventory: %v", err)
	}
	if len(items) != 1 || items[0].Allocated != 5 {
		t.Errorf("inventory round trip mismatch: %+v", items)
	}

	users, err := store.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	if len(users) != 1 || !users[0].IsAdmin() {
		t.Errorf("users round trip mismatch: %+v", users)
	}
}

func TestFlatFile_MalformedLineSkipped(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFlatFileStore(dir)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	content := "1,Projector,5,0,HD Projector\nnotanid,Chairs,100,0,Standard chairs\n"
	if err := os.WriteFile(filepath.Join(dir, inventoryFile), []byte(content), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	items, err := store.LoadInventory(context.Background())
	if err != nil {
		t.Fatalf("load inventory: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 decoded item, got %d", len(items))
	}
	if items[0].Name != "Projector" {
		t.Errorf("wrong record survived: %+v", items[0])
	}
}

func TestFlatFile_SaveReplacesPrevious(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := []domain.Attendee{{ID: 1, Name: "a", Contact: "c", EventID: 0}}
	second := []domain.Attendee{{ID: 2, Name: "b", Contact: "c", EventID: 0}}

	if err := store.SaveAttendees(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.SaveAttendees(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	attendees, err := store.LoadAttendees(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(attendees) != 1 || attendees[0].ID != 2 {
		t.Errorf("save did not replace snapshot: %+v", attendees)
	}
}

func TestFlatFile_SaveEmptyCollection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveEvents(ctx, []domain.Event{{ID: 1, Name: "x", Status: domain.StatusUpcoming}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveEvents(ctx, nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}

	events, err := store.LoadEvents(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected empty collection, got %+v", events)
	}
}

package storage

import (
	"errors"
	"testing"

	"github.com/pvhoang/eventdesk/internal/core/domain"
)

func TestEncodeDecodeEvent_RoundTrip(t *testing.T) {
	event := domain.NewEvent(4, "Tech Conference 2025", "2025-10-20", "09:00", "Grand Hall", "Annual tech conference", "Conference")
	event.Status = domain.StatusOngoing
	event.AddAttendee(3)
	event.AddAttendee(7)
	event.AddAttendee(12)
	event.AllocateItem(2, 5)
	event.AllocateItem(9, 1)

	decoded, err := DecodeEvent(EncodeEvent(event))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if decoded.ID != 4 || decoded.Name != "Tech Conference 2025" || decoded.Status != domain.StatusOngoing {
		t.Errorf("header fields lost: %+v", decoded)
	}
	if decoded.Date != "2025-10-20" || decoded.Time != "09:00" || decoded.Location != "Grand Hall" {
		t.Errorf("schedule fields lost: %+v", decoded)
	}

	wantIDs := map[int]bool{3: true, 7: true, 12: true}
	if len(decoded.AttendeeIDs) != len(wantIDs) {
		t.Fatalf("expected %d attendee ids, got %v", len(wantIDs), decoded.AttendeeIDs)
	}
	for _, id := range decoded.AttendeeIDs {
		if !wantIDs[id] {
			t.Errorf("unexpected attendee id %d", id)
		}
	}

	if decoded.AllocatedInventory[2] != 5 || decoded.AllocatedInventory[9] != 1 {
		t.Errorf("allocation ledger lost: %v", decoded.AllocatedInventory)
	}
	if len(decoded.AllocatedInventory) != 2 {
		t.Errorf("unexpected ledger entries: %v", decoded.AllocatedInventory)
	}
}

func TestDecodeEvent_EmptyCollections(t *testing.T) {
	event := domain.NewEvent(1, "Festival", "2025-07-15", "14:00", "City Park", "Outdoor music event", "Social")

	decoded, err := DecodeEvent(EncodeEvent(event))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(decoded.AttendeeIDs) != 0 {
		t.Errorf("expected no attendee ids, got %v", decoded.AttendeeIDs)
	}
	if len(decoded.AllocatedInventory) != 0 {
		t.Errorf("expected empty ledger, got %v", decoded.AllocatedInventory)
	}
}

func TestDecodeEvent_MissingTrailingFields(t *testing.T) {
	// Only 8 fields: no attendee list, no allocation ledger.
	decoded, err := DecodeEvent("2,Workshop,2025-03-01,10:00,Room B,Intro,Training,0")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(decoded.AttendeeIDs) != 0 || len(decoded.AllocatedInventory) != 0 {
		t.Errorf("missing trailing fields should decode as empty collections: %+v", decoded)
	}

	// 9 fields: attendee list present, ledger absent.
	decoded, err = DecodeEvent("2,Workshop,2025-03-01,10:00,Room B,Intro,Training,0,4;5")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(decoded.AttendeeIDs) != 2 {
		t.Errorf("expected 2 attendee ids, got %v", decoded.AttendeeIDs)
	}
}

func TestDecodeEvent_MalformedSubEntriesSkipped(t *testing.T) {
	decoded, err := DecodeEvent("2,Workshop,2025-03-01,10:00,Room B,Intro,Training,0,4;x;5,2:5;bad;9:;:1;7:2")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(decoded.AttendeeIDs) != 2 {
		t.Errorf("expected attendee ids {4,5}, got %v", decoded.AttendeeIDs)
	}
	if decoded.AllocatedInventory[2] != 5 || decoded.AllocatedInventory[7] != 2 {
		t.Errorf("good allocations lost: %v", decoded.AllocatedInventory)
	}
	if len(decoded.AllocatedInventory) != 2 {
		t.Errorf("malformed allocations not skipped: %v", decoded.AllocatedInventory)
	}
}

func TestDecodeEvent_Malformed(t *testing.T) {
	for _, line := range []string{
		"",
		"abc,Workshop,2025-03-01,10:00,Room B,Intro,Training,0",
		"2,Workshop,2025-03-01,10:00,Room B,Intro,Training,nine",
		"2,Workshop,2025-03-01,10:00,Room B,Intro,Training,8",
		"2,Workshop,2025-03-01",
	} {
		if _, err := DecodeEvent(line); !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("line %q: expected ErrMalformedRecord, got: %v", line, err)
		}
	}
}

func TestEncodeDecodeAttendee_RoundTrip(t *testing.T) {
	attendee := domain.Attendee{ID: 7, Name: "user1", Contact: "user1@mail.test", EventID: 4, CheckedIn: true}

	decoded, err := DecodeAttendee(EncodeAttendee(attendee))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != attendee {
		t.Errorf("round trip mismatch: %+v != %+v", decoded, attendee)
	}
}

func TestDecodeAttendee_GenericProfile(t *testing.T) {
	decoded, err := DecodeAttendee("3,user2,555-0101,0,0")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.EventID != 0 || decoded.CheckedIn {
		t.Errorf("expected unaffiliated unchecked attendee, got %+v", decoded)
	}
}

func TestDecodeAttendee_Malformed(t *testing.T) {
	for _, line := range []string{"", "x,user,contact,1,0", "3,user,contact,notanid,0", "3,user"} {
		if _, err := DecodeAttendee(line); !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("line %q: expected ErrMalformedRecord, got: %v", line, err)
		}
	}
}

func TestEncodeDecodeInventoryItem_RoundTrip(t *testing.T) {
	item := domain.InventoryItem{ID: 2, Name: "Chairs", Total: 100, Allocated: 30, Description: "Standard chairs"}

	decoded, err := DecodeInventoryItem(EncodeInventoryItem(item))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != item {
		t.Errorf("round trip mismatch: %+v != %+v", decoded, item)
	}
}

func TestDecodeInventoryItem_DescriptionKeepsCommas(t *testing.T) {
	decoded, err := DecodeInventoryItem("5,Projector,5,1,HD, ceiling mounted, with remote")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Description != "HD, ceiling mounted, with remote" {
		t.Errorf("description truncated: %q", decoded.Description)
	}
}

func TestDecodeInventoryItem_MissingDescription(t *testing.T) {
	decoded, err := DecodeInventoryItem("5,Projector,5,1")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Description != "" {
		t.Errorf("expected empty description, got %q", decoded.Description)
	}
}

func TestEncodeDecodeUser_RoundTrip(t *testing.T) {
	user := domain.User{ID: 1, Username: "admin", Password: "adminpass", Role: domain.RoleAdmin}

	decoded, err := DecodeUser(EncodeUser(user))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != user {
		t.Errorf("round trip mismatch: %+v != %+v", decoded, user)
	}
}

func TestDecodeUser_Malformed(t *testing.T) {
	for _, line := range []string{"", "1,admin,pass", "x,admin,pass,0", "1,admin,pass,9"} {
		if _, err := DecodeUser(line); !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("line %q: expected ErrMalformedRecord, got: %v", line, err)
		}
	}
}

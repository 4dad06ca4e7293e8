package domain

import "testing"

func TestAddAttendee_RejectsDuplicate(t *testing.T) {
	event := NewEvent(1, "Tech Conference", "2025-10-20", "09:00", "Grand Hall", "", "Conference")

	if !event.AddAttendee(7) {
		t.Fatal("first add should succeed")
	}
	if event.AddAttendee(7) {
		t.Error("duplicate add should report false")
	}
	if len(event.AttendeeIDs) != 1 {
		t.Errorf("expected 1 attendee id, got %d", len(event.AttendeeIDs))
	}
}

func TestRemoveAttendee_AbsentIsNoop(t *testing.T) {
	event := NewEvent(1, "Tech Conference", "2025-10-20", "09:00", "Grand Hall", "", "Conference")
	event.AddAttendee(3)

	if event.RemoveAttendee(99) {
		t.Error("removing absent id should report false")
	}
	if !event.RemoveAttendee(3) {
		t.Error("removing present id should report true")
	}
	if len(event.AttendeeIDs) != 0 {
		t.Errorf("expected empty attendee set, got %v", event.AttendeeIDs)
	}
}

func TestAllocateItem_Accumulates(t *testing.T) {
	event := NewEvent(1, "Festival", "2025-07-15", "14:00", "City Park", "", "Social")

	event.AllocateItem(2, 5)
	event.AllocateItem(2, 3)
	event.AllocateItem(9, 1)
	event.AllocateItem(9, 0)  // ignored
	event.AllocateItem(9, -4) // ignored

	if event.AllocatedInventory[2] != 8 {
		t.Errorf("expected item 2 qty 8, got %d", event.AllocatedInventory[2])
	}
	if event.AllocatedInventory[9] != 1 {
		t.Errorf("expected item 9 qty 1, got %d", event.AllocatedInventory[9])
	}
}

func TestDeallocateItem_CapsAtLedger(t *testing.T) {
	event := NewEvent(1, "Festival", "2025-07-15", "14:00", "City Park", "", "Social")
	event.AllocateItem(5, 4)

	actual := event.DeallocateItem(5, 10)
	if actual != 4 {
		t.Errorf("expected actual 4, got %d", actual)
	}
	if _, ok := event.AllocatedInventory[5]; ok {
		t.Error("ledger entry should be removed once drained")
	}
}

func TestDeallocateItem_Partial(t *testing.T) {
	event := NewEvent(1, "Festival", "2025-07-15", "14:00", "City Park", "", "Social")
	event.AllocateItem(5, 4)

	if actual := event.DeallocateItem(5, 3); actual != 3 {
		t.Errorf("expected actual 3, got %d", actual)
	}
	if event.AllocatedInventory[5] != 1 {
		t.Errorf("expected remaining 1, got %d", event.AllocatedInventory[5])
	}
}

func TestDeallocateItem_UnknownOrNonPositive(t *testing.T) {
	event := NewEvent(1, "Festival", "2025-07-15", "14:00", "City Park", "", "Social")
	event.AllocateItem(5, 4)

	if actual := event.DeallocateItem(99, 2); actual != 0 {
		t.Errorf("unknown item: expected 0, got %d", actual)
	}
	if actual := event.DeallocateItem(5, 0); actual != 0 {
		t.Errorf("zero qty: expected 0, got %d", actual)
	}
	if actual := event.DeallocateItem(5, -2); actual != 0 {
		t.Errorf("negative qty: expected 0, got %d", actual)
	}
	if event.AllocatedInventory[5] != 4 {
		t.Errorf("ledger changed by no-op deallocations: %d", event.AllocatedInventory[5])
	}
}

func TestStatusFromCode(t *testing.T) {
	if status, ok := StatusFromCode(3); !ok || status != StatusCanceled {
		t.Errorf("code 3: expected Canceled, got %v ok=%v", status, ok)
	}
	if _, ok := StatusFromCode(4); ok {
		t.Error("code 4 should be rejected")
	}
	if _, ok := StatusFromCode(-1); ok {
		t.Error("code -1 should be rejected")
	}
}

package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pvhoang/eventdesk/internal/adapter/storage"
	"github.com/pvhoang/eventdesk/internal/core/domain"
)

func (h *CLIHandler) attendeeListsPerEvent() {
	events := h.catalog.Events()
	if len(events) == 0 {
		h.printf("No events.\n")
		return
	}
	for _, e := range events {
		h.printf("\n--- Attendees for Event: %s (ID %d) ---\n", e.Name, e.ID)
		if len(e.AttendeeIDs) == 0 {
			h.printf("No attendees registered.\n")
			continue
		}
		for _, id := range e.AttendeeIDs {
			attendee := h.catalog.AttendeeByID(id)
			if attendee == nil {
				h.printf("  - Unknown attendee (ID %d)\n", id)
				continue
			}
			h.printf("  - ID: %d, Name: %s, Contact: %s, Checked-in: %s\n",
				attendee.ID, attendee.Name, attendee.Contact, yesNo(attendee.CheckedIn))
		}
	}
}

func (h *CLIHandler) attendanceReport() {
	eventID, ok := h.readInt("Event ID for attendance report: ")
	if !ok {
		return
	}
	event := h.catalog.EventByID(eventID)
	if event == nil {
		h.printf("Event with ID %d not found.\n", eventID)
		return
	}

	h.printf("\n--- Attendance Report for Event: %s (ID %d) ---\n", event.Name, event.ID)
	if len(event.AttendeeIDs) == 0 {
		h.printf("No attendees registered for this event.\n")
		return
	}

	checkedIn := 0
	for _, id := range event.AttendeeIDs {
		attendee := h.catalog.AttendeeByID(id)
		if attendee == nil {
			h.printf("  - Unknown attendee (ID %d)\n", id)
			continue
		}
		h.printf("  - Name: %s, Contact: %s, Checked-in: %s\n",
			attendee.Name, attendee.Contact, yesNo(attendee.CheckedIn))
		if attendee.CheckedIn {
			checkedIn++
		}
	}
	h.printf("Total Registered: %d\n", len(event.AttendeeIDs))
	h.printf("Total Checked-in: %d\n", checkedIn)
	h.printf("Attendance Percentage: %.1f%%\n", float64(checkedIn)/float64(len(event.AttendeeIDs))*100)
}

func (h *CLIHandler) inventoryReport() {
	items := h.catalog.Inventory()
	if len(items) == 0 {
		h.printf("No inventory items to report.\n")
		return
	}

	h.printf("\n--- Full Inventory Report ---\n")
	h.printf("%-8s %-20s %6s %10s %10s  %s\n", "ID", "Name", "Total", "Allocated", "Available", "Description")
	totalQty, totalAllocated := 0, 0
	for _, item := range items {
		h.printf("%-8d %-20s %6d %10d %10d  %s\n",
			item.ID, item.Name, item.Total, item.Allocated, item.Available(), item.Description)
		totalQty += item.Total
		totalAllocated += item.Allocated
	}
	h.printf("Overall: total %d, allocated %d, available %d\n", totalQty, totalAllocated, totalQty-totalAllocated)

	h.printf("\nAllocation per Event:\n")
	anyAllocated := false
	for _, event := range h.catalog.Events() {
		ids := sortedItemIDs(event.AllocatedInventory)
		if len(ids) == 0 {
			continue
		}
		anyAllocated = true
		h.printf("  Event: %s (ID %d)\n", event.Name, event.ID)
		for _, itemID := range ids {
			name := fmt.Sprintf("item %d", itemID)
			if item := h.catalog.ItemByID(itemID); item != nil {
				name = item.Name
			}
			h.printf("    - %s: %d units\n", name, event.AllocatedInventory[itemID])
		}
	}
	if !anyAllocated {
		h.printf("  No inventory currently allocated to any event.\n")
	}
}

func (h *CLIHandler) exportMenu() {
	for {
		h.printf("\n--- Data Export ---\n")
		h.printf("1. Export All Events\n")
		h.printf("2. Export All Attendees\n")
		h.printf("3. Export All Inventory\n")
		h.printf("4. Export All Users\n")
		h.printf("0. Back\n")
		choice, ok := h.readInt("Enter your choice: ")
		if !ok {
			return
		}
		switch choice {
		case 1:
			h.exportRecords("events_export.txt", encodeEvents(h.catalog.Events()))
		case 2:
			h.exportRecords("attendees_export.txt", encodeAttendees(h.catalog.Attendees()))
		case 3:
			h.exportRecords("inventory_export.txt", encodeInventory(h.catalog.Inventory()))
		case 4:
			h.exportRecords("users_export.txt", encodeUsers(h.catalog.Users()))
		case 0:
			return
		default:
			h.printf("Invalid choice. Please try again.\n")
		}
	}
}

func (h *CLIHandler) exportRecords(filename string, records []string) {
	path := filepath.Join(h.exportDir, filename)
	data := ""
	if len(records) > 0 {
		data = strings.Join(records, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		h.printf("Could not write %s: %v\n", path, err)
		return
	}
	h.printf("Exported %d records to %s.\n", len(records), path)
}

// exportAttendeeList writes a human-readable attendee list for one event,
// unlike the collection exports which emit raw records.
func (h *CLIHandler) exportAttendeeList() {
	eventID, ok := h.readInt("Event ID to export attendee list for: ")
	if !ok {
		return
	}
	event := h.catalog.EventByID(eventID)
	if event == nil {
		h.printf("Event with ID %d not found.\n", eventID)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Attendee List for Event: %s (ID %d)\n", event.Name, event.ID)
	fmt.Fprintf(&b, "Date: %s Time: %s\n", event.Date, event.Time)
	if len(event.AttendeeIDs) == 0 {
		b.WriteString("No attendees registered for this event.\n")
	} else {
		b.WriteString("ID,Name,ContactInfo,CheckedInStatus\n")
		for _, id := range event.AttendeeIDs {
			attendee := h.catalog.AttendeeByID(id)
			if attendee == nil {
				fmt.Fprintf(&b, "%d,Unknown,,\n", id)
				continue
			}
			fmt.Fprintf(&b, "%d,%s,%s,%s\n", attendee.ID, attendee.Name, attendee.Contact, yesNo(attendee.CheckedIn))
		}
	}

	path := filepath.Join(h.exportDir, fmt.Sprintf("attendees_event_%d.txt", eventID))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		h.printf("Could not write %s: %v\n", path, err)
		return
	}
	h.printf("Attendee list exported to %s.\n", path)
}

func encodeEvents(events []domain.Event) []string {
	records := make([]string, 0, len(events))
	for _, e := range events {
		records = append(records, storage.EncodeEvent(e))
	}
	return records
}

func encodeAttendees(attendees []domain.Attendee) []string {
	records := make([]string, 0, len(attendees))
	for _, a := range attendees {
		records = append(records, storage.EncodeAttendee(a))
	}
	return records
}

func encodeInventory(items []domain.InventoryItem) []string {
	records := make([]string, 0, len(items))
	for _, i := range items {
		records = append(records, storage.EncodeInventoryItem(i))
	}
	return records
}

func encodeUsers(users []domain.User) []string {
	records := make([]string, 0, len(users))
	for _, u := range users {
		records = append(records, storage.EncodeUser(u))
	}
	return records
}

func sortedItemIDs(allocations map[int]int) []int {
	ids := make([]int, 0, len(allocations))
	for id := range allocations {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

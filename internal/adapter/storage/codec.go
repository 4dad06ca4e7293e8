package storage

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/pvhoang/eventdesk/internal/core/domain"
)

// ErrMalformedRecord marks a line that cannot be decoded at all. Callers
// skip the record and keep loading; a single bad line never fails a load.
var ErrMalformedRecord = errors.New("malformed record")

// Each entity serializes to one comma-separated line. Two event fields
// nest a second delimiter level: attendee ids join with ';' and the
// allocation ledger joins 'itemId:qty' pairs with ';'. Text fields must
// not contain commas, except the inventory description which is the last
// field and consumes the remainder of the line.

func EncodeUser(u domain.User) string {
	return fmt.Sprintf("%d,%s,%s,%d", u.ID, u.Username, u.Password, int(u.Role))
}

func DecodeUser(line string) (domain.User, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return domain.User{}, fmt.Errorf("%w: user needs 4 fields, got %d", ErrMalformedRecord, len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: non-numeric user id %q", ErrMalformedRecord, fields[0])
	}
	roleCode, err := strconv.Atoi(fields[3])
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: non-numeric role code %q", ErrMalformedRecord, fields[3])
	}
	role, ok := domain.RoleFromCode(roleCode)
	if !ok {
		return domain.User{}, fmt.Errorf("%w: unknown role code %d", ErrMalformedRecord, roleCode)
	}
	return domain.User{ID: id, Username: fields[1], Password: fields[2], Role: role}, nil
}

func EncodeAttendee(a domain.Attendee) string {
	checked := "0"
	if a.CheckedIn {
		checked = "1"
	}
	return fmt.Sprintf("%d,%s,%s,%d,%s", a.ID, a.Name, a.Contact, a.EventID, checked)
}

func DecodeAttendee(line string) (domain.Attendee, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 5 {
		return domain.Attendee{}, fmt.Errorf("%w: attendee needs 5 fields, got %d", ErrMalformedRecord, len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.Attendee{}, fmt.Errorf("%w: non-numeric attendee id %q", ErrMalformedRecord, fields[0])
	}
	eventID, err := strconv.Atoi(fields[3])
	if err != nil {
		return domain.Attendee{}, fmt.Errorf("%w: non-numeric event id %q", ErrMalformedRecord, fields[3])
	}
	return domain.Attendee{
		ID:        id,
		Name:      fields[1],
		Contact:   fields[2],
		EventID:   eventID,
		CheckedIn: fields[4] == "1",
	}, nil
}

func EncodeInventoryItem(i domain.InventoryItem) string {
	return fmt.Sprintf("%d,%s,%d,%d,%s", i.ID, i.Name, i.Total, i.Allocated, i.Description)
}

func DecodeInventoryItem(line string) (domain.InventoryItem, error) {
	// The description is the final field and may be empty or missing;
	// SplitN keeps any further commas inside it.
	fields := strings.SplitN(line, ",", 5)
	if len(fields) < 4 {
		return domain.InventoryItem{}, fmt.Errorf("%w: inventory needs at least 4 fields, got %d", ErrMalformedRecord, len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("%w: non-numeric item id %q", ErrMalformedRecord, fields[0])
	}
	total, err := strconv.Atoi(fields[2])
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("%w: non-numeric total %q", ErrMalformedRecord, fields[2])
	}
	allocated, err := strconv.Atoi(fields[3])
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("%w: non-numeric allocated %q", ErrMalformedRecord, fields[3])
	}
	description := ""
	if len(fields) == 5 {
		description = fields[4]
	}
	return domain.InventoryItem{
		ID:          id,
		Name:        fields[1],
		Total:       total,
		Allocated:   allocated,
		Description: description,
	}, nil
}

func EncodeEvent(e domain.Event) string {
	ids := make([]string, len(e.AttendeeIDs))
	for idx, id := range e.AttendeeIDs {
		ids[idx] = strconv.Itoa(id)
	}

	itemIDs := make([]int, 0, len(e.AllocatedInventory))
	for itemID := range e.AllocatedInventory {
		itemIDs = append(itemIDs, itemID)
	}
	sort.Ints(itemIDs)
	pairs := make([]string, len(itemIDs))
	for idx, itemID := range itemIDs {
		pairs[idx] = fmt.Sprintf("%d:%d", itemID, e.AllocatedInventory[itemID])
	}

	return fmt.Sprintf("%d,%s,%s,%s,%s,%s,%s,%d,%s,%s",
		e.ID, e.Name, e.Date, e.Time, e.Location, e.Description, e.Category,
		int(e.Status), strings.Join(ids, ";"), strings.Join(pairs, ";"))
}

func DecodeEvent(line string) (domain.Event, error) {
	// The last two fields may be present-but-empty or missing entirely;
	// both read as empty collections.
	fields := strings.SplitN(line, ",", 10)
	if len(fields) < 8 {
		return domain.Event{}, fmt.Errorf("%w: event needs at least 8 fields, got %d", ErrMalformedRecord, len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.Event{}, fmt.Errorf("%w: non-numeric event id %q", ErrMalformedRecord, fields[0])
	}
	statusCode, err := strconv.Atoi(fields[7])
	if err != nil {
		return domain.Event{}, fmt.Errorf("%w: non-numeric status code %q", ErrMalformedRecord, fields[7])
	}
	status, ok := domain.StatusFromCode(statusCode)
	if !ok {
		return domain.Event{}, fmt.Errorf("%w: unknown status code %d", ErrMalformedRecord, statusCode)
	}

	event := domain.Event{
		ID:                 id,
		Name:               fields[1],
		Date:               fields[2],
		Time:               fields[3],
		Location:           fields[4],
		Description:        fields[5],
		Category:           fields[6],
		Status:             status,
		AllocatedInventory: make(map[int]int),
	}

	if len(fields) > 8 {
		for _, raw := range strings.Split(fields[8], ";") {
			if raw == "" {
				continue
			}
			attendeeID, err := strconv.Atoi(raw)
			if err != nil {
				log.Printf("event %d: skipping malformed attendee id %q", id, raw)
				continue
			}
			event.AddAttendee(attendeeID)
		}
	}
	if len(fields) > 9 {
		for _, raw := range strings.Split(fields[9], ";") {
			if raw == "" {
				continue
			}
			itemID, qty, err := parseAllocation(raw)
			if err != nil {
				log.Printf("event %d: skipping malformed allocation %q", id, raw)
				continue
			}
			if qty > 0 {
				event.AllocatedInventory[itemID] = qty
			}
		}
	}
	return event, nil
}

func parseAllocation(raw string) (itemID, qty int, err error) {
	colon := strings.IndexByte(raw, ':')
	if colon < 0 {
		return 0, 0, fmt.Errorf("missing colon in %q", raw)
	}
	itemID, err = strconv.Atoi(raw[:colon])
	if err != nil {
		return 0, 0, err
	}
	qty, err = strconv.Atoi(raw[colon+1:])
	if err != nil {
		return 0, 0, err
	}
	return itemID, qty, nil
}

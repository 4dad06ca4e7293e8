package domain

type EventStatus int

const (
	StatusUpcoming EventStatus = iota
	StatusOngoing
	StatusCompleted
	StatusCanceled
)

func (s EventStatus) String() string {
	switch s {
	case StatusUpcoming:
		return "Upcoming"
	case StatusOngoing:
		return "Ongoing"
	case StatusCompleted:
		return "Completed"
	case StatusCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// StatusFromCode maps a persisted status code back to an EventStatus.
func StatusFromCode(code int) (EventStatus, bool) {
	if code < int(StatusUpcoming) || code > int(StatusCanceled) {
		return StatusUpcoming, false
	}
	return EventStatus(code), true
}

// Event aggregates attendee-id references and a ledger of inventory
// reserved for it. AttendeeIDs is a set kept in insertion order;
// AllocatedInventory maps item id to reserved quantity and never holds
// entries with quantity <= 0.
type Event struct {
	ID                 int
	Name               string
	Date               string
	Time               string
	Location           string
	Description        string
	Category           string
	Status             EventStatus
	AttendeeIDs        []int
	AllocatedInventory map[int]int
}

// NewEvent returns an event with empty collections and Upcoming status.
func NewEvent(id int, name, date, time, location, description, category string) Event {
	return Event{
		ID:                 id,
		Name:               name,
		Date:               date,
		Time:               time,
		Location:           location,
		Description:        description,
		Category:           category,
		Status:             StatusUpcoming,
		AllocatedInventory: make(map[int]int),
	}
}

// AddAttendee records an attendee reference. Returns false without
// modifying the set when the id is already present.
func (e *Event) AddAttendee(id int) bool {
	for _, existing := range e.AttendeeIDs {
		if existing == id {
			return false
		}
	}
	e.AttendeeIDs = append(e.AttendeeIDs, id)
	return true
}

// RemoveAttendee drops an attendee reference. Absent ids are a no-op.
func (e *Event) RemoveAttendee(id int) bool {
	for idx, existing := range e.AttendeeIDs {
		if existing == id {
			e.AttendeeIDs = append(e.AttendeeIDs[:idx], e.AttendeeIDs[idx+1:]...)
			return true
		}
	}
	return false
}

// AllocateItem records qty more units of itemID in the ledger. Repeated
// calls accumulate. The caller must have already reserved the same
// quantity on the InventoryItem itself; recording happens only after the
// item-level check succeeded, so a failed allocation never reaches the
// ledger.
func (e *Event) AllocateItem(itemID, qty int) {
	if qty <= 0 {
		return
	}
	if e.AllocatedInventory == nil {
		e.AllocatedInventory = make(map[int]int)
	}
	e.AllocatedInventory[itemID] += qty
}

// DeallocateItem reduces the ledger entry for itemID by at most qty and
// returns the amount actually removed. The entry is deleted when it
// reaches zero. Callers must apply the returned amount, not the requested
// one, to the InventoryItem so the ledger and the item stay in step.
func (e *Event) DeallocateItem(itemID, qty int) int {
	if qty <= 0 {
		return 0
	}
	current, ok := e.AllocatedInventory[itemID]
	if !ok {
		return 0
	}
	actual := qty
	if current < qty {
		actual = current
	}
	remaining := current - actual
	if remaining <= 0 {
		delete(e.AllocatedInventory, itemID)
	} else {
		e.AllocatedInventory[itemID] = remaining
	}
	return actual
}

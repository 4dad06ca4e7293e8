package domain

// Attendee links a person to at most one event. EventID 0 marks a generic
// profile not tied to any event.
type Attendee struct {
	ID        int
	Name      string
	Contact   string
	EventID   int
	CheckedIn bool
}

// CheckIn marks the attendee present. Returns false when they were
// already checked in; there is no way back to not-checked-in.
func (a *Attendee) CheckIn() bool {
	if a.CheckedIn {
		return false
	}
	a.CheckedIn = true
	return true
}

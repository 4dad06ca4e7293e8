package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pvhoang/eventdesk/internal/core/domain"
	"github.com/pvhoang/eventdesk/internal/core/service"
)

// CLIHandler is the interactive menu shell. It owns no state beyond the
// logged-in user; every operation goes through the catalog service and
// every prompt reads one line from its input stream, so the shell can be
// driven by a terminal or by a scripted reader in tests.
type CLIHandler struct {
	catalog   *service.CatalogService
	in        *bufio.Scanner
	out       io.Writer
	exportDir string
	current   *domain.User
}

func NewCLIHandler(catalog *service.CatalogService, in io.Reader, out io.Writer, exportDir string) *CLIHandler {
	return &CLIHandler{
		catalog:   catalog,
		in:        bufio.NewScanner(in),
		out:       out,
		exportDir: exportDir,
	}
}

// Run drives the main menu until the operator exits or input ends.
func (h *CLIHandler) Run(ctx context.Context) {
	h.printf("Welcome to the Event Management System!\n")
	for {
		h.printf("\n--- Main Menu ---\n")
		h.printf("1. Login\n")
		h.printf("2. Register New User\n")
		h.printf("0. Exit\n")
		choice, ok := h.readInt("Enter your choice: ")
		if !ok {
			return
		}
		switch choice {
		case 1:
			if h.login() {
				if h.current.IsAdmin() {
					h.adminMenu(ctx)
				} else {
					h.userMenu(ctx)
				}
			}
		case 2:
			h.registerNewUser(ctx)
		case 0:
			h.printf("Goodbye!\n")
			return
		default:
			h.printf("Invalid choice. Please try again.\n")
		}
	}
}

func (h *CLIHandler) login() bool {
	username, ok := h.readLine("Username: ")
	if !ok {
		return false
	}
	password, ok := h.readLine("Password: ")
	if !ok {
		return false
	}
	user, err := h.catalog.Authenticate(username, password)
	if err != nil {
		h.printf("Login failed: %s\n", friendlyError(err))
		return false
	}
	h.current = user
	h.printf("Login successful. Welcome, %s!\n", user.Username)
	return true
}

func (h *CLIHandler) registerNewUser(ctx context.Context) {
	username, ok := h.readLine("Choose a username: ")
	if !ok {
		return
	}
	password, ok := h.readLine("Choose a password (min 6 characters): ")
	if !ok {
		return
	}
	if _, err := h.catalog.CreateUser(ctx, username, password, domain.RoleRegular); err != nil {
		h.printf("Could not register: %s\n", friendlyError(err))
		return
	}
	h.printf("User '%s' registered. You can now log in.\n", username)
}

func (h *CLIHandler) adminMenu(ctx context.Context) {
	for {
		h.printf("\n--- Admin Menu ---\n")
		h.printf("1. User Management\n")
		h.printf("2. Event Management\n")
		h.printf("3. Attendee Management\n")
		h.printf("4. Inventory Management\n")
		h.printf("5. Data Export\n")
		h.printf("6. View My Profile\n")
		h.printf("0. Logout\n")
		choice, ok := h.readInt("Enter your choice: ")
		if !ok {
			h.current = nil
			return
		}
		switch choice {
		case 1:
			h.userManagementMenu(ctx)
		case 2:
			h.eventManagementMenu(ctx)
		case 3:
			h.attendeeManagementMenu(ctx)
		case 4:
			h.inventoryManagementMenu(ctx)
		case 5:
			h.exportMenu()
		case 6:
			h.showProfile()
		case 0:
			h.current = nil
			return
		default:
			h.printf("Invalid choice. Please try again.\n")
		}
	}
}

func (h *CLIHandler) userMenu(ctx context.Context) {
	for {
		h.printf("\n--- User Menu ---\n")
		h.printf("1. View All Events\n")
		h.printf("2. Search Events\n")
		h.printf("3. Register for Event\n")
		h.printf("4. Cancel My Registration\n")
		h.printf("5. Update My Contact Info\n")
		h.printf("6. View My Profile\n")
		h.printf("0. Logout\n")
		choice, ok := h.readInt("Enter your choice: ")
		if !ok {
			h.current = nil
			return
		}
		switch choice {
		case 1:
			h.listEvents(false)
		case 2:
			h.searchEvents()
		case 3:
			h.registerForEvent(ctx)
		case 4:
			h.cancelRegistration(ctx)
		case 5:
			h.updateContactInfo(ctx)
		case 6:
			h.showProfile()
		case 0:
			h.current = nil
			return
		default:
			h.printf("Invalid choice. Please try again.\n")
		}
	}
}

func (h *CLIHandler) userManagementMenu(ctx context.Context) {
	for {
		h.printf("\n--- User Management ---\n")
		h.printf("1. Create New User Account\n")
		h.printf("2. Delete User Account\n")
		h.printf("3. List All Users\n")
		h.printf("0. Back\n")
		choice, ok := h.readInt("Enter your choice: ")
		if !ok {
			return
		}
		switch choice {
		case 1:
			h.createUserAccount(ctx)
		case 2:
			h.deleteUserAccount(ctx)
		case 3:
			h.listUsers()
		case 0:
			return
		default:
			h.printf("Invalid choice. Please try again.\n")
		}
	}
}

func (h *CLIHandler) eventManagementMenu(ctx context.Context) {
	for {
		h.printf("\n--- Event Management ---\n")
		h.printf("1. Create New Event\n")
		h.printf("2. View All Events\n")
		h.printf("3. Edit Event Details\n")
		h.printf("4. Update Event Status\n")
		h.printf("5. Delete Event\n")
		h.printf("6. Manage Event Inventory\n")
		h.printf("0. Back\n")
		choice, ok := h.readInt("Enter your choice: ")
		if !ok {
			return
		}
		switch choice {
		case 1:
			h.createEvent(ctx)
		case 2:
			h.listEvents(true)
		case 3:
			h.editEvent(ctx)
		case 4:
			h.updateEventStatus(ctx)
		case 5:
			h.deleteEvent(ctx)
		case 6:
			h.manageEventInventory(ctx)
		case 0:
			return
		default:
			h.printf("Invalid choice. Please try again.\n")
		}
	}
}

func (h *CLIHandler) attendeeManagementMenu(ctx context.Context) {
	for {
		h.printf("\n--- Attendee Management ---\n")
		h.printf("1. View Attendee Lists per Event\n")
		h.printf("2. Check-in Attendee for Event\n")
		h.printf("3. Attendance Report for Event\n")
		h.printf("4. Export Attendee List for Event\n")
		h.printf("0. Back\n")
		choice, ok := h.readInt("Enter your choice: ")
		if !ok {
			return
		}
		switch choice {
		case 1:
			h.attendeeListsPerEvent()
		case 2:
			h.checkInAttendee(ctx)
		case 3:
			h.attendanceReport()
		case 4:
			h.exportAttendeeList()
		case 0:
			return
		default:
			h.printf("Invalid choice. Please try again.\n")
		}
	}
}

func (h *CLIHandler) inventoryManagementMenu(ctx context.Context) {
	for {
		h.printf("\n--- Inventory Management ---\n")
		h.printf("1. Add New Inventory Item\n")
		h.printf("2. Update Inventory Item Details\n")
		h.printf("3. View All Inventory Items\n")
		h.printf("4. Full Inventory Report\n")
		h.printf("0. Back\n")
		choice, ok := h.readInt("Enter your choice: ")
		if !ok {
			return
		}
		switch choice {
		case 1:
			h.addInventoryItem(ctx)
		case 2:
			h.updateInventoryItem(ctx)
		case 3:
			h.listInventory()
		case 4:
			h.inventoryReport()
		case 0:
			return
		default:
			h.printf("Invalid choice. Please try again.\n")
		}
	}
}

func (h *CLIHandler) createUserAccount(ctx context.Context) {
	username, ok := h.readLine("Username: ")
	if !ok {
		return
	}
	password, ok := h.readLine("Password (min 6 characters): ")
	if !ok {
		return
	}
	roleCode, ok := h.readInt("Role (0 = admin, 1 = regular): ")
	if !ok {
		return
	}
	role, valid := domain.RoleFromCode(roleCode)
	if !valid {
		h.printf("Unknown role code %d.\n", roleCode)
		return
	}
	if _, err := h.catalog.CreateUser(ctx, username, password, role); err != nil {
		h.printf("Could not create user: %s\n", friendlyError(err))
		return
	}
	h.printf("User '%s' created.\n", username)
}

func (h *CLIHandler) deleteUserAccount(ctx context.Context) {
	username, ok := h.readLine("Username to delete: ")
	if !ok {
		return
	}
	if h.current != nil && strings.EqualFold(username, h.current.Username) {
		h.printf("You cannot delete the account you are logged in with.\n")
		return
	}
	if err := h.catalog.DeleteUser(ctx, username); err != nil {
		h.printf("Could not delete user: %s\n", friendlyError(err))
		return
	}
	h.printf("User '%s' deleted.\n", username)
}

func (h *CLIHandler) listUsers() {
	users := h.catalog.Users()
	if len(users) == 0 {
		h.printf("No users.\n")
		return
	}
	h.printf("\n--- Users ---\n")
	for _, u := range users {
		h.printf("ID: %d, Username: %s, Role: %s\n", u.ID, u.Username, u.Role)
	}
}

func (h *CLIHandler) createEvent(ctx context.Context) {
	name, ok := h.readLine("Event name: ")
	if !ok {
		return
	}
	date, ok := h.readLine("Date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	timeOfDay, ok := h.readLine("Time (HH:MM): ")
	if !ok {
		return
	}
	location, ok := h.readLine("Location: ")
	if !ok {
		return
	}
	description, ok := h.readLine("Description: ")
	if !ok {
		return
	}
	category, ok := h.readLine("Category: ")
	if !ok {
		return
	}
	event, err := h.catalog.CreateEvent(ctx, name, date, timeOfDay, location, description, category)
	if err != nil {
		h.printf("Could not create event: %s\n", friendlyError(err))
		return
	}
	h.printf("Event '%s' created with ID %d.\n", event.Name, event.ID)
}

func (h *CLIHandler) listEvents(adminView bool) {
	events := h.catalog.Events()
	if len(events) == 0 {
		h.printf("No events.\n")
		return
	}
	h.printf("\n--- Events ---\n")
	for _, e := range events {
		h.printEvent(e, adminView)
	}
}

func (h *CLIHandler) printEvent(e domain.Event, adminView bool) {
	h.printf("ID: %d, Name: %s, Date: %s %s, Location: %s, Category: %s, Status: %s\n",
		e.ID, e.Name, e.Date, e.Time, e.Location, e.Category, e.Status)
	if e.Description != "" {
		h.printf("    %s\n", e.Description)
	}
	if adminView {
		h.printf("    Registered attendees: %d\n", len(e.AttendeeIDs))
		for _, itemID := range sortedItemIDs(e.AllocatedInventory) {
			name := fmt.Sprintf("item %d", itemID)
			if item := h.catalog.ItemByID(itemID); item != nil {
				name = item.Name
			}
			h.printf("    Allocated: %s x%d\n", name, e.AllocatedInventory[itemID])
		}
	}
}

func (h *CLIHandler) editEvent(ctx context.Context) {
	id, ok := h.readInt("Event ID to edit: ")
	if !ok {
		return
	}
	if h.catalog.EventByID(id) == nil {
		h.printf("Event with ID %d not found.\n", id)
		return
	}

	var upd service.EventUpdate
	prompts := []struct {
		label string
		field **string
	}{
		{"New name", &upd.Name},
		{"New date (YYYY-MM-DD)", &upd.Date},
		{"New time (HH:MM)", &upd.Time},
		{"New location", &upd.Location},
		{"New description", &upd.Description},
		{"New category", &upd.Category},
	}
	for _, p := range prompts {
		value, ok := h.readLineAllowEmpty(p.label + " (blank to keep): ")
		if !ok {
			return
		}
		if value != "" {
			v := value
			*p.field = &v
		}
	}

	if err := h.catalog.UpdateEvent(ctx, id, upd); err != nil {
		h.printf("Could not update event: %s\n", friendlyError(err))
		return
	}
	h.printf("Event %d updated.\n", id)
}

func (h *CLIHandler) updateEventStatus(ctx context.Context) {
	id, ok := h.readInt("Event ID: ")
	if !ok {
		return
	}
	code, ok := h.readInt("Status (0 = upcoming, 1 = ongoing, 2 = completed, 3 = canceled): ")
	if !ok {
		return
	}
	status, valid := domain.StatusFromCode(code)
	if !valid {
		h.printf("Unknown status code %d.\n", code)
		return
	}
	if err := h.catalog.SetEventStatus(ctx, id, status); err != nil {
		h.printf("Could not update status: %s\n", friendlyError(err))
		return
	}
	h.printf("Event %d is now %s.\n", id, status)
}

func (h *CLIHandler) deleteEvent(ctx context.Context) {
	id, ok := h.readInt("Event ID to delete: ")
	if !ok {
		return
	}
	if err := h.catalog.DeleteEvent(ctx, id); err != nil {
		h.printf("Could not delete event: %s\n", friendlyError(err))
		return
	}
	h.printf("Event %d deleted. Its inventory was released and its registrations removed.\n", id)
}

func (h *CLIHandler) manageEventInventory(ctx context.Context) {
	eventID, ok := h.readInt("Event ID: ")
	if !ok {
		return
	}
	event := h.catalog.EventByID(eventID)
	if event == nil {
		h.printf("Event with ID %d not found.\n", eventID)
		return
	}
	h.printf("\n--- Inventory for Event: %s (ID %d) ---\n", event.Name, event.ID)
	h.printf("1. Allocate Item to Event\n")
	h.printf("2. Deallocate Item from Event\n")
	h.printf("0. Back\n")
	choice, ok := h.readInt("Enter your choice: ")
	if !ok {
		return
	}

	switch choice {
	case 1:
		itemID, ok := h.readInt("Inventory item ID: ")
		if !ok {
			return
		}
		item := h.catalog.ItemByID(itemID)
		if item == nil {
			h.printf("Inventory item with ID %d not found.\n", itemID)
			return
		}
		h.printf("Available quantity of '%s': %d\n", item.Name, item.Available())
		qty, ok := h.readPositiveInt("Quantity to allocate: ")
		if !ok {
			return
		}
		if err := h.catalog.AllocateToEvent(ctx, eventID, itemID, qty); err != nil {
			h.printf("Could not allocate: %s\n", friendlyError(err))
			return
		}
		h.printf("%d of '%s' allocated to '%s'.\n", qty, item.Name, event.Name)
	case 2:
		itemID, ok := h.readInt("Inventory item ID: ")
		if !ok {
			return
		}
		allocated := event.AllocatedInventory[itemID]
		if allocated == 0 {
			h.printf("Item %d is not allocated to this event.\n", itemID)
			return
		}
		h.printf("Currently allocated to this event: %d\n", allocated)
		qty, ok := h.readPositiveInt("Quantity to deallocate: ")
		if !ok {
			return
		}
		actual, err := h.catalog.DeallocateFromEvent(ctx, eventID, itemID, qty)
		if err != nil {
			h.printf("Could not deallocate: %s\n", friendlyError(err))
			return
		}
		h.printf("%d units returned to inventory.\n", actual)
	}
}

func (h *CLIHandler) searchEvents() {
	term, ok := h.readLine("Search by name or date: ")
	if !ok {
		return
	}
	matches := h.catalog.SearchEvents(term)
	if len(matches) == 0 {
		h.printf("No events matched '%s'.\n", term)
		return
	}
	h.printf("\n--- Matching Events ---\n")
	for _, e := range matches {
		h.printEvent(e, false)
	}
}

func (h *CLIHandler) registerForEvent(ctx context.Context) {
	eventID, ok := h.readInt("Event ID to register for: ")
	if !ok {
		return
	}
	contact, ok := h.readLine("Contact info (email/phone): ")
	if !ok {
		return
	}
	attendee, err := h.catalog.RegisterAttendee(ctx, eventID, h.current.Username, contact)
	if err != nil {
		h.printf("Could not register: %s\n", friendlyError(err))
		return
	}
	h.printf("Registered for event %d as attendee %d.\n", eventID, attendee.ID)
}

func (h *CLIHandler) cancelRegistration(ctx context.Context) {
	eventID, ok := h.readInt("Event ID to cancel registration for: ")
	if !ok {
		return
	}
	if err := h.catalog.CancelRegistration(ctx, eventID, h.current.Username); err != nil {
		h.printf("Could not cancel: %s\n", friendlyError(err))
		return
	}
	h.printf("Registration for event %d canceled.\n", eventID)
}

func (h *CLIHandler) checkInAttendee(ctx context.Context) {
	eventID, ok := h.readInt("Event ID: ")
	if !ok {
		return
	}
	attendeeID, ok := h.readInt("Attendee ID: ")
	if !ok {
		return
	}
	first, err := h.catalog.CheckInAttendee(ctx, eventID, attendeeID)
	if err != nil {
		h.printf("Could not check in: %s\n", friendlyError(err))
		return
	}
	if first {
		h.printf("Attendee %d checked in for event %d.\n", attendeeID, eventID)
	} else {
		h.printf("Attendee %d is already checked in for event %d.\n", attendeeID, eventID)
	}
}

func (h *CLIHandler) updateContactInfo(ctx context.Context) {
	contact, ok := h.readLine("New contact information (email/phone): ")
	if !ok {
		return
	}
	if _, err := h.catalog.UpdateContactInfo(ctx, h.current.Username, contact); err != nil {
		h.printf("Could not update contact info: %s\n", friendlyError(err))
		return
	}
	h.printf("Contact info updated.\n")
}

func (h *CLIHandler) showProfile() {
	h.printf("User ID: %d, Username: %s, Role: %s\n", h.current.ID, h.current.Username, h.current.Role)
}

func (h *CLIHandler) listInventory() {
	items := h.catalog.Inventory()
	if len(items) == 0 {
		h.printf("No inventory items.\n")
		return
	}
	h.printf("\n--- Inventory ---\n")
	for _, item := range items {
		h.printf("ID: %d, Name: %s, Total: %d, Allocated: %d, Available: %d, Description: %s\n",
			item.ID, item.Name, item.Total, item.Allocated, item.Available(), item.Description)
	}
}

func (h *CLIHandler) addInventoryItem(ctx context.Context) {
	name, ok := h.readLine("Item name: ")
	if !ok {
		return
	}
	total, ok := h.readInt("Total quantity: ")
	if !ok {
		return
	}
	description, ok := h.readLineAllowEmpty("Description: ")
	if !ok {
		return
	}
	item, err := h.catalog.AddInventoryItem(ctx, name, total, description)
	if err != nil {
		h.printf("Could not add item: %s\n", friendlyError(err))
		return
	}
	h.printf("Inventory item '%s' added with ID %d.\n", item.Name, item.ID)
}

func (h *CLIHandler) updateInventoryItem(ctx context.Context) {
	id, ok := h.readInt("Item ID to update: ")
	if !ok {
		return
	}
	if h.catalog.ItemByID(id) == nil {
		h.printf("Inventory item with ID %d not found.\n", id)
		return
	}

	var upd service.ItemUpdate
	name, ok := h.readLineAllowEmpty("New name (blank to keep): ")
	if !ok {
		return
	}
	if name != "" {
		upd.Name = &name
	}
	totalRaw, ok := h.readLineAllowEmpty("New total quantity (blank to keep): ")
	if !ok {
		return
	}
	if totalRaw != "" {
		total, err := strconv.Atoi(totalRaw)
		if err != nil {
			h.printf("Invalid quantity '%s'.\n", totalRaw)
			return
		}
		upd.Total = &total
	}
	description, ok := h.readLineAllowEmpty("New description (blank to keep): ")
	if !ok {
		return
	}
	if description != "" {
		upd.Description = &description
	}

	if err := h.catalog.UpdateInventoryItem(ctx, id, upd); err != nil {
		h.printf("Could not update item: %s\n", friendlyError(err))
		return
	}
	h.printf("Inventory item %d updated.\n", id)
}

func (h *CLIHandler) printf(format string, args ...interface{}) {
	fmt.Fprintf(h.out, format, args...)
}

// readLine prompts until a non-empty line arrives. The second return is
// false when input is exhausted.
func (h *CLIHandler) readLine(prompt string) (string, bool) {
	for {
		line, ok := h.readLineAllowEmpty(prompt)
		if !ok {
			return "", false
		}
		if line != "" {
			return line, true
		}
		h.printf("Input cannot be empty. Please try again.\n")
	}
}

func (h *CLIHandler) readLineAllowEmpty(prompt string) (string, bool) {
	h.printf("%s", prompt)
	if !h.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(h.in.Text()), true
}

func (h *CLIHandler) readInt(prompt string) (int, bool) {
	for {
		line, ok := h.readLine(prompt)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			h.printf("Invalid input. Please enter an integer.\n")
			continue
		}
		return n, true
	}
}

func (h *CLIHandler) readPositiveInt(prompt string) (int, bool) {
	for {
		n, ok := h.readInt(prompt)
		if !ok {
			return 0, false
		}
		if n > 0 {
			return n, true
		}
		h.printf("Input must be a positive integer. Please try again.\n")
	}
}

// friendlyError maps the catalog's sentinel errors to operator-facing
// messages; anything unexpected surfaces verbatim.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return "event not found"
	case errors.Is(err, service.ErrAttendeeNotFound):
		return "attendee not found"
	case errors.Is(err, service.ErrItemNotFound):
		return "inventory item not found"
	case errors.Is(err, service.ErrUserNotFound):
		return "user not found"
	case errors.Is(err, service.ErrUsernameTaken):
		return "username is already taken"
	case errors.Is(err, service.ErrPasswordTooShort):
		return "password must be at least 6 characters"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, service.ErrRegistrationClosed):
		return "registration is closed for this event"
	case errors.Is(err, service.ErrNotRegistered):
		return "no registration found for this event"
	case errors.Is(err, domain.ErrInvalidDate):
		return "date must be YYYY-MM-DD"
	case errors.Is(err, domain.ErrInvalidTime):
		return "time must be HH:MM (24-hour)"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "quantity must be positive"
	case errors.Is(err, domain.ErrInsufficientAvailable):
		return "not enough available quantity"
	case errors.Is(err, domain.ErrNegativeQuantity):
		return "quantity cannot be negative"
	case errors.Is(err, domain.ErrBelowAllocated):
		return "total cannot drop below the allocated quantity"
	default:
		return err.Error()
	}
}

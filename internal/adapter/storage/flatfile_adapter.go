package storage

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pvhoang/eventdesk/internal/core/domain"
)

const (
	usersFile     = "users.txt"
	eventsFile    = "events.txt"
	inventoryFile = "inventory.txt"
	attendeesFile = "attendees.txt"
)

// FlatFileStore keeps one line-oriented text file per collection under a
// data directory. Writes go through a uniquely-named temp file and a
// rename, so an interrupted save leaves the previous snapshot on disk. A
// truncated or hand-edited line only costs that one record on the next
// load.
type FlatFileStore struct {
	dir string
}

func NewFlatFileStore(dir string) (*FlatFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FlatFileStore{dir: dir}, nil
}

func (s *FlatFileStore) LoadUsers(ctx context.Context) ([]domain.User, error) {
	lines, err := s.readLines(usersFile)
	if err != nil {
		return nil, err
	}
	var users []domain.User
	for _, line := range lines {
		user, err := DecodeUser(line)
		if err != nil {
			log.Printf("%s: skipping record %q: %v", usersFile, line, err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *FlatFileStore) SaveUsers(ctx context.Context, users []domain.User) error {
	lines := make([]string, len(users))
	for i, user := range users {
		lines[i] = EncodeUser(user)
	}
	return s.writeLines(usersFile, lines)
}

func (s *FlatFileStore) LoadEvents(ctx context.Context) ([]domain.Event, error) {
	lines, err := s.readLines(eventsFile)
	if err != nil {
		return nil, err
	}
	var events []domain.Event
	for _, line := range lines {
		event, err := DecodeEvent(line)
		if err != nil {
			log.Printf("%s: skipping record %q: %v", eventsFile, line, err)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (s *FlatFileStore) SaveEvents(ctx context.Context, events []domain.Event) error {
	lines := make([]string, len(events))
	for i, event := range events {
		lines[i] = EncodeEvent(event)
	}
	return s.writeLines(eventsFile, lines)
}

func (s *FlatFileStore) LoadAttendees(ctx context.Context) ([]domain.Attendee, error) {
	lines, err := s.readLines(attendeesFile)
	if err != nil {
		return nil, err
	}
	var attendees []domain.Attendee
	for _, line := range lines {
		attendee, err := DecodeAttendee(line)
		if err != nil {
			log.Printf("%s: skipping record %q: %v", attendeesFile, line, err)
			continue
		}
		attendees = append(attendees, attendee)
	}
	return attendees, nil
}

func (s *FlatFileStore) SaveAttendees(ctx context.Context, attendees []domain.Attendee) error {
	lines := make([]string, len(attendees))
	for i, attendee := range attendees {
		lines[i] = EncodeAttendee(attendee)
	}
	return s.writeLines(attendeesFile, lines)
}

func (s *FlatFileStore) LoadInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	lines, err := s.readLines(inventoryFile)
	if err != nil {
		return nil, err
	}
	var items []domain.InventoryItem
	for _, line := range lines {
		item, err := DecodeInventoryItem(line)
		if err != nil {
			log.Printf("%s: skipping record %q: %v", inventoryFile, line, err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *FlatFileStore) SaveInventory(ctx context.Context, items []domain.InventoryItem) error {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = EncodeInventoryItem(item)
	}
	return s.writeLines(inventoryFile, lines)
}

// readLines returns the non-empty lines of a collection file. A missing
// file is an empty collection, not an error.
func (s *FlatFileStore) readLines(name string) ([]string, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return lines, nil
}

func (s *FlatFileStore) writeLines(name string, lines []string) error {
	path := filepath.Join(s.dir, name)
	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())

	data := ""
	if len(lines) > 0 {
		data = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/pvhoang/eventdesk/internal/core/domain"
)

// MySQLStore is an alternate persistence backend: one table per
// collection, one row per entity, with the row payload being the same
// encoded line the flat files use. The codec stays the single contract;
// only the medium changes.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (id INT PRIMARY KEY, record TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS events (id INT PRIMARY KEY, record TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS attendees (id INT PRIMARY KEY, record TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS inventory (id INT PRIMARY KEY, record TEXT NOT NULL)`,
}

// EnsureSchema creates the collection tables when they do not exist yet.
func (m *MySQLStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (m *MySQLStore) LoadUsers(ctx context.Context) ([]domain.User, error) {
	lines, err := m.loadRecords(ctx, "users")
	if err != nil {
		return nil, err
	}
	var users []domain.User
	for _, line := range lines {
		user, err := DecodeUser(line)
		if err != nil {
			log.Printf("users table: skipping record %q: %v", line, err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func (m *MySQLStore) SaveUsers(ctx context.Context, users []domain.User) error {
	rows := make(map[int]string, len(users))
	for _, user := range users {
		rows[user.ID] = EncodeUser(user)
	}
	return m.saveRecords(ctx, "users", rows)
}

func (m *MySQLStore) LoadEvents(ctx context.Context) ([]domain.Event, error) {
	lines, err := m.loadRecords(ctx, "events")
	if err != nil {
		return nil, err
	}
	var events []domain.Event
	for _, line := range lines {
		event, err := DecodeEvent(line)
		if err != nil {
			log.Printf("events table: skipping record %q: %v", line, err)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (m *MySQLStore) SaveEvents(ctx context.Context, events []domain.Event) error {
	rows := make(map[int]string, len(events))
	for _, event := range events {
		rows[event.ID] = EncodeEvent(event)
	}
	return m.saveRecords(ctx, "events", rows)
}

func (m *MySQLStore) LoadAttendees(ctx context.Context) ([]domain.Attendee, error) {
	lines, err := m.loadRecords(ctx, "attendees")
	if err != nil {
		return nil, err
	}
	var attendees []domain.Attendee
	for _, line := range lines {
		attendee, err := DecodeAttendee(line)
		if err != nil {
			log.Printf("attendees table: skipping record %q: %v", line, err)
			continue
		}
		attendees = append(attendees, attendee)
	}
	return attendees, nil
}

func (m *MySQLStore) SaveAttendees(ctx context.Context, attendees []domain.Attendee) error {
	rows := make(map[int]string, len(attendees))
	for _, attendee := range attendees {
		rows[attendee.ID] = EncodeAttendee(attendee)
	}
	return m.saveRecords(ctx, "attendees", rows)
}

func (m *MySQLStore) LoadInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	lines, err := m.loadRecords(ctx, "inventory")
	if err != nil {
		return nil, err
	}
	var items []domain.InventoryItem
	for _, line := range lines {
		item, err := DecodeInventoryItem(line)
		if err != nil {
			log.Printf("inventory table: skipping record %q: %v", line, err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (m *MySQLStore) SaveInventory(ctx context.Context, items []domain.InventoryItem) error {
	rows := make(map[int]string, len(items))
	for _, item := range items {
		rows[item.ID] = EncodeInventoryItem(item)
	}
	return m.saveRecords(ctx, "inventory", rows)
}

func (m *MySQLStore) loadRecords(ctx context.Context, table string) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT record FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return lines, nil
}

// saveRecords replaces the table contents with the given snapshot.
func (m *MySQLStore) saveRecords(ctx context.Context, table string, records map[int]string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	for id, record := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO `+table+` (id, record) VALUES (?, ?)`, id, record); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, id, err)
		}
	}
	return tx.Commit()
}

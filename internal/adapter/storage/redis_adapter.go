package storage

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/pvhoang/eventdesk/internal/core/domain"
)

const (
	usersKey     = "eventdesk:users"
	eventsKey    = "eventdesk:events"
	attendeesKey = "eventdesk:attendees"
	inventoryKey = "eventdesk:inventory"
)

// RedisStore keeps each collection in a hash keyed by entity id, with
// the hash value being the encoded record line. Same codec contract as
// the flat files, different medium.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) LoadUsers(ctx context.Context) ([]domain.User, error) {
	lines, err := r.loadRecords(ctx, usersKey)
	if err != nil {
		return nil, err
	}
	var users []domain.User
	for _, line := range lines {
		user, err := DecodeUser(line)
		if err != nil {
			log.Printf("%s: skipping record %q: %v", usersKey, line, err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *RedisStore) SaveUsers(ctx context.Context, users []domain.User) error {
	records := make(map[int]string, len(users))
	for _, user := range users {
		records[user.ID] = EncodeUser(user)
	}
	return r.saveRecords(ctx, usersKey, records)
}

func (r *RedisStore) LoadEvents(ctx context.Context) ([]domain.Event, error) {
	lines, err := r.loadRecords(ctx, eventsKey)
	if err != nil {
		return nil, err
	}
	var events []domain.Event
	for _, line := range lines {
		event, err := DecodeEvent(line)
		if err != nil {
			log.Printf("%s: skipping record %q: %v", eventsKey, line, err)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (r *RedisStore) SaveEvents(ctx context.Context, events []domain.Event) error {
	records := make(map[int]string, len(events))
	for _, event := range events {
		records[event.ID] = EncodeEvent(event)
	}
	return r.saveRecords(ctx, eventsKey, records)
}

func (r *RedisStore) LoadAttendees(ctx context.Context) ([]domain.Attendee, error) {
	lines, err := r.loadRecords(ctx, attendeesKey)
	if err != nil {
		return nil, err
	}
	var attendees []domain.Attendee
	for _, line := range lines {
		attendee, err := DecodeAttendee(line)
		if err != nil {
			log.Printf("%s: skipping record %q: %v", attendeesKey, line, err)
			continue
		}
		attendees = append(attendees, attendee)
	}
	return attendees, nil
}

func (r *RedisStore) SaveAttendees(ctx context.Context, attendees []domain.Attendee) error {
	records := make(map[int]string, len(attendees))
	for _, attendee := range attendees {
		records[attendee.ID] = EncodeAttendee(attendee)
	}
	return r.saveRecords(ctx, attendeesKey, records)
}

func (r *RedisStore) LoadInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	lines, err := r.loadRecords(ctx, inventoryKey)
	if err != nil {
		return nil, err
	}
	var items []domain.InventoryItem
	for _, line := range lines {
		item, err := DecodeInventoryItem(line)
		if err != nil {
			log.Printf("%s: skipping record %q: %v", inventoryKey, line, err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *RedisStore) SaveInventory(ctx context.Context, items []domain.InventoryItem) error {
	records := make(map[int]string, len(items))
	for _, item := range items {
		records[item.ID] = EncodeInventoryItem(item)
	}
	return r.saveRecords(ctx, inventoryKey, records)
}

// loadRecords returns the hash values ordered by numeric field id so
// every backend presents collections in the same order.
func (r *RedisStore) loadRecords(ctx context.Context, key string) ([]string, error) {
	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", key, err)
	}
	ids := make([]int, 0, len(fields))
	for field := range fields {
		id, err := strconv.Atoi(field)
		if err != nil {
			log.Printf("%s: skipping field %q: %v", key, field, err)
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, fields[strconv.Itoa(id)])
	}
	return lines, nil
}

// saveRecords replaces the hash contents with the given snapshot in a
// single pipeline round trip.
func (r *RedisStore) saveRecords(ctx context.Context, key string, records map[int]string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(records) > 0 {
		fields := make(map[string]string, len(records))
		for id, record := range records {
			fields[strconv.Itoa(id)] = record
		}
		pipe.HSet(ctx, key, fields)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

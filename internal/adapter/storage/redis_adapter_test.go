package storage

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/pvhoang/eventdesk/internal/core/domain"
)

func getRedisStore(t *testing.T) (*RedisStore, *redis.Client) {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return NewRedisStore(client), client
}

func TestRedis_SaveLoadRoundTrip(t *testing.T) {
	store, client := getRedisStore(t)
	defer client.Close()

	ctx := context.Background()
	client.Del(ctx, attendeesKey)

	attendees := []domain.Attendee{
		{ID: 1, Name: "user1", Contact: "user1@mail.test", EventID: 4, CheckedIn: true},
		{ID: 2, Name: "user2", Contact: "555-0101", EventID: 0},
	}
	if err := store.SaveAttendees(ctx, attendees); err != nil {
		t.Fatalf("save attendees: %v", err)
	}

	loaded, err := store.LoadAttendees(ctx)
	if err != nil {
		t.Fatalf("load attendees: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 attendees, got %d", len(loaded))
	}

	byID := map[int]domain.Attendee{}
	for _, a := range loaded {
		byID[a.ID] = a
	}
	if !byID[1].CheckedIn || byID[2].EventID != 0 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}

	// Cleanup
	client.Del(ctx, attendeesKey)
}

func TestRedis_SaveReplacesSnapshot(t *testing.T) {
	store, client := getRedisStore(t)
	defer client.Close()

	ctx := context.Background()
	client.Del(ctx, usersKey)

	if err := store.SaveUsers(ctx, []domain.User{
		{ID: 1, Username: "admin", Password: "adminpass", Role: domain.RoleAdmin},
		{ID: 2, Username: "user1", Password: "user1pass", Role: domain.RoleRegular},
	}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.SaveUsers(ctx, []domain.User{
		{ID: 2, Username: "user1", Password: "user1pass", Role: domain.RoleRegular},
	}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	users, err := store.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(users) != 1 || users[0].Username != "user1" {
		t.Errorf("snapshot not replaced: %+v", users)
	}

	// Cleanup
	client.Del(ctx, usersKey)
}

// Command datagen fills a backend with generated catalog data so the
// shell and the storage adapters can be exercised against a realistically
// sized data set. It reuses the same environment variables as the cli
// command to pick the backend.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/pvhoang/eventdesk/internal/adapter/storage"
	"github.com/pvhoang/eventdesk/internal/core/service"
	"github.com/pvhoang/eventdesk/internal/port"
)

const (
	eventCount        = 25
	attendeesPerEvent = 40
	itemCount         = 10
)

type config struct {
	Backend   string `env:"EVENTDESK_BACKEND" envDefault:"file"`
	DataDir   string `env:"EVENTDESK_DATA_DIR" envDefault:"."`
	MySQLDSN  string `env:"EVENTDESK_MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/eventdesk?parseTime=true"`
	RedisAddr string `env:"EVENTDESK_REDIS_ADDR" envDefault:"localhost:6379"`
}

func main() {
	ctx := context.Background()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.Backend, err)
	}

	catalog := service.NewCatalogService(store)
	if err := catalog.Load(ctx); err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	start := time.Now()
	for e := 0; e < eventCount; e++ {
		date := fmt.Sprintf("2025-%02d-%02d", e%12+1, e%28+1)
		event, err := catalog.CreateEvent(ctx,
			fmt.Sprintf("Generated Event %d", e+1),
			date, "09:00",
			fmt.Sprintf("Hall %d", e%5+1),
			"generated by datagen",
			"Generated")
		if err != nil {
			log.Fatalf("failed to create event: %v", err)
		}
		for a := 0; a < attendeesPerEvent; a++ {
			name := fmt.Sprintf("attendee-%d-%d", event.ID, a+1)
			contact := fmt.Sprintf("%s@example.test", name)
			if _, err := catalog.RegisterAttendee(ctx, event.ID, name, contact); err != nil {
				log.Fatalf("failed to register attendee: %v", err)
			}
		}
	}
	for i := 0; i < itemCount; i++ {
		item, err := catalog.AddInventoryItem(ctx,
			fmt.Sprintf("Generated Item %d", i+1),
			(i+1)*50,
			"generated by datagen")
		if err != nil {
			log.Fatalf("failed to add item: %v", err)
		}
		// Spread each item over a few events to give the allocation
		// recomputation something to chew on.
		for _, event := range catalog.Events() {
			if event.ID%(i+2) != 0 {
				continue
			}
			if err := catalog.AllocateToEvent(ctx, event.ID, item.ID, i+1); err != nil {
				log.Fatalf("failed to allocate: %v", err)
			}
		}
	}
	elapsed := time.Since(start)

	log.Printf("generated %d events, %d attendees, %d items in %s",
		len(catalog.Events()), len(catalog.Attendees()), len(catalog.Inventory()), elapsed)

	// Reload to confirm the backend round-trips the generated snapshot.
	reloaded := service.NewCatalogService(store)
	if err := reloaded.Load(ctx); err != nil {
		log.Fatalf("failed to reload catalog: %v", err)
	}
	log.Printf("reload check: %d events, %d attendees, %d items",
		len(reloaded.Events()), len(reloaded.Attendees()), len(reloaded.Inventory()))
}

func openStore(ctx context.Context, cfg config) (port.StateStore, error) {
	switch cfg.Backend {
	case "file":
		return storage.NewFlatFileStore(cfg.DataDir)
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("ping mysql: %w", err)
		}
		store := storage.NewMySQLStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return storage.NewRedisStore(rdb), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want file, mysql or redis)", cfg.Backend)
	}
}

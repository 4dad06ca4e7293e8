package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/pvhoang/eventdesk/internal/adapter/handler"
	"github.com/pvhoang/eventdesk/internal/adapter/storage"
	"github.com/pvhoang/eventdesk/internal/core/service"
	"github.com/pvhoang/eventdesk/internal/port"
)

type config struct {
	Backend   string `env:"EVENTDESK_BACKEND" envDefault:"file"`
	DataDir   string `env:"EVENTDESK_DATA_DIR" envDefault:"."`
	ExportDir string `env:"EVENTDESK_EXPORT_DIR" envDefault:"."`
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
	if err := catalog.Seed(ctx); err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}

	handler.NewCLIHandler(catalog, os.Stdin, os.Stdout, cfg.ExportDir).Run(ctx)
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
		db.SetMaxOpenConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("ping mysql: %w", err)
		}
		store := storage.NewMySQLStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		log.Println("connected to mysql")
		return store, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Println("connected to redis")
		return storage.NewRedisStore(rdb), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want file, mysql or redis)", cfg.Backend)
	}
}

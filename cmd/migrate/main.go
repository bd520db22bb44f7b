package main

import (
	"log"

	"github.com/oggyb/smsdev/internal/config"
	"github.com/oggyb/smsdev/internal/db/gormdb"
	inboxRepo "github.com/oggyb/smsdev/internal/repository/gorm/inbox"
)

func main() {
	cfg := config.New()

	if cfg.Storage.Driver == config.StorageBolt {
		log.Printf("[Migrate] STORAGE_DRIVER=bolt creates its buckets on open; nothing to do.")
		return
	}

	db, err := gormdb.New(cfg.PostgresDSN(), true)
	if err != nil {
		log.Fatalf("[Migrate] Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Printf("[Migrate] Connected to database %q", cfg.DB.Name)

	if err := db.Migrate(&inboxRepo.ReceivedMessageModel{}); err != nil {
		log.Fatalf("[Migrate] %v", err)
	}

	log.Println("[Migrate] received_messages is up to date.")
}

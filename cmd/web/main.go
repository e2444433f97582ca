package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/config"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/db"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	database, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database.DB); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	router := newRouter(cfg, database, schedule.New())

	slog.Info("Server starting", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatal(err)
	}
}

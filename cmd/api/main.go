package main

import (
	"context"
	"flag"
	"os"
	"time"

	"cinevault/proj/internal/config"
	"cinevault/proj/internal/lib/logger"
	"cinevault/proj/internal/storage/postgres"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")

	flag.Parse()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	storage, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime, cfg.DB.QueryTimeout)
	if err != nil {
		panic(err)
	}
	defer storage.Conn.Close()
	log.Info("database connection established")
	app := NewApplication(cfg, log, storage)
	app.bgTasks.Run()
	if err := app.serve(); err != nil {
		log.Error("shutting down the server", "reason", err.Error())
		os.Exit(1)
	}
}

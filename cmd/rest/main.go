package main

import (
	"context"
	"log"

	"chatsync-be/internal/bootstrap"
	"chatsync-be/internal/config"
	"chatsync-be/internal/server"
	"chatsync-be/internal/tracer"
	"chatsync-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	ctx := context.Background()
	go container.Hub.Run()
	go func() {
		if err := container.Dispatcher.Run(ctx); err != nil {
			log.Printf("Background dispatcher error: %v", err)
		}
	}()
	go container.ReceiptService.Run(ctx, cfg.Chat.ReceiptFlushInterval)
	go container.MessageService.RunExpirySweeper(ctx, cfg.Chat.ExpirySweepInterval)

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}

package main

import (
	"context"
	"database/sql"
	"log"

	"jobboard-backend/internal/applications"
	"jobboard-backend/internal/jobs"
	"jobboard-backend/internal/relay"
	"jobboard-backend/internal/sessions"
	"jobboard-backend/internal/shared/config"
	"jobboard-backend/internal/shared/server"
	"jobboard-backend/internal/shared/storage/db"
	"jobboard-backend/internal/shared/storage/redisstore"
	"jobboard-backend/internal/tools"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()

	// The tool server rendezvous with the API process through Redis; with no
	// Redis the tools still answer, but updates never reach the browser.
	var jobsRepo jobs.Repo
	var sessionRepo sessions.Repo
	var updateRelay relay.Relay
	redisClient, err := redisstore.Open(cfg.RedisURL)
	if err != nil {
		log.Printf("failed to connect redis, falling back to in-process store: %v", err)
		jobsRepo = jobs.NewMemoryRepo()
		sessionRepo = sessions.NewMemoryRepo()
		updateRelay = relay.NewMemoryRelay()
	} else {
		jobsRepo = &jobs.RedisRepo{Client: redisClient}
		sessionRepo = sessions.NewRedisRepo(redisClient, cfg.SessionTTL)
		updateRelay = relay.NewRedisRelay(redisClient)
	}

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory archive: %v", err)
		} else {
			sqlDB = dbConn
		}
	}

	var archive applications.Repo
	if sqlDB != nil {
		archive = &applications.PGRepo{DB: sqlDB}
	} else {
		archive = applications.NewMemoryRepo()
	}

	svc := tools.NewService(jobsRepo, sessionRepo, updateRelay, applications.NewService(sessionRepo, archive))
	mcpServer := tools.NewMCPServer(svc, version)
	sseServer := tools.NewSSEServer(mcpServer, cfg.MCPServerURL)

	addr := server.Addr(cfg.ToolPort)
	log.Printf("Starting MCP tool server on %s (SSE endpoint at %s/sse)", addr, cfg.MCPServerURL)

	if err := sseServer.Start(addr); err != nil {
		log.Fatalf("tool server error: %v", err)
	}
}

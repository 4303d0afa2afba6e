package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/applications"
	"jobboard-backend/internal/chat"
	"jobboard-backend/internal/jobs"
	"jobboard-backend/internal/llm/anthropic"
	"jobboard-backend/internal/realtime"
	"jobboard-backend/internal/relay"
	"jobboard-backend/internal/sessions"
	"jobboard-backend/internal/shared/config"
	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/server/middleware"
	"jobboard-backend/internal/shared/server/respond"
	"jobboard-backend/internal/shared/storage/db"
	"jobboard-backend/internal/shared/storage/redisstore"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies. Redis is the shared store both server processes meet at;
	// without it the process still serves, but tool calls from the other
	// process cannot reach this one.
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

	if err := jobsRepo.Seed(context.Background(), jobs.SeedJobs()); err != nil {
		log.Printf("failed to seed job catalog: %v", err)
	}

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory archive: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory archive: %v", err)
				dbConn.Close()
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var archive applications.Repo
	if sqlDB != nil {
		archive = &applications.PGRepo{DB: sqlDB}
	} else {
		archive = applications.NewMemoryRepo()
	}

	appSvc := applications.NewService(sessionRepo, archive)

	var chatSvc *chat.Service
	if cfg.AnthropicAPIKey != "" {
		llmClient, err := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		if err != nil {
			log.Printf("chat assistant disabled: %v", err)
		} else {
			chatSvc = chat.NewService(llmClient, sessionRepo, updateRelay)
		}
	}

	jobsHandler := jobs.NewHandler(jobsRepo)
	sessionsHandler := sessions.NewHandler(sessionRepo, jobsRepo, cfg.MCPServerURL)
	appsHandler := applications.NewHandler(appSvc, archive)
	chatHandler := chat.NewHandler(chatSvc)
	realtimeHandler := realtime.NewHandler(updateRelay)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"status": "healthy", "service": "job-board-backend"})
	})
	api.GET("/metrics", metrics.Handler())
	jobsHandler.RegisterRoutes(api)
	sessionsHandler.RegisterRoutes(api)
	appsHandler.RegisterRoutes(api)
	chatHandler.RegisterRoutes(api)
	realtimeHandler.RegisterRoutes(r)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

package main // Entry point package

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arbelos/fieldbook/internal/config"
	"github.com/arbelos/fieldbook/internal/database"
	"github.com/arbelos/fieldbook/internal/handler"
	"github.com/arbelos/fieldbook/internal/middleware"
	"github.com/arbelos/fieldbook/internal/queue"
	"github.com/arbelos/fieldbook/internal/repository"
	"github.com/arbelos/fieldbook/internal/router"
	"github.com/arbelos/fieldbook/internal/session"
	"github.com/arbelos/fieldbook/internal/storage"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Session registry: Redis when reachable (sessions survive restarts and
	// are shared between replicas), otherwise the in-process map.
	ttl := time.Duration(cfg.SessionTTLMin) * time.Minute
	var sessions session.Store
	rdb := config.NewRedisClient()
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, ttl)
		log.Printf("sessions: redis store")
	} else {
		sessions = session.NewMemoryStore(ttl)
		log.Printf("sessions: in-memory store (tokens do not survive restart)")
	}

	users := repository.NewUserRepo(db)
	projects := repository.NewProjectRepo(db)
	files := repository.NewFileRepo(db)
	notes := repository.NewNoteRepo(db)
	signatures := repository.NewSignatureRepo(db)
	timesheets := repository.NewTimesheetRepo(db)
	blobs := storage.New(cfg.UploadRoot)

	authHandler := handler.NewAuthHandler(cfg, users, sessions)
	projectHandler := handler.NewProjectHandler(projects, files, notes, signatures, timesheets, blobs)
	bearer := middleware.BearerAuth(sessions, users)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, bearer)
	router.RegisterProjects(e, projectHandler, bearer)

	// Audit trail consumer; reconnects forever in the background.
	go queue.StartActivityConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

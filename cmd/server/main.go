package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/AnshRaj112/diary-backend/internal/cache"
	"github.com/AnshRaj112/diary-backend/internal/config"
	"github.com/AnshRaj112/diary-backend/internal/database"
	"github.com/AnshRaj112/diary-backend/internal/handlers"
	"github.com/AnshRaj112/diary-backend/internal/notify"
	"github.com/AnshRaj112/diary-backend/internal/routes"
	"github.com/AnshRaj112/diary-backend/internal/services"
	"github.com/AnshRaj112/diary-backend/internal/store"
	"github.com/AnshRaj112/diary-backend/pkg/logger"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	log := logger.Init(cfg.Environment, cfg.LogLevel)
	defer log.Sync()
	if envErr != nil {
		log.Info("no .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := database.ConnectPostgres(ctx, cfg.PostgresURI, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pg.Close()

	rdb, err := database.ConnectRedis(ctx, cfg.RedisURI, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer rdb.Close()

	opts := services.CoordinatorOptions{
		Cache:         cache.NewEntryCache(),
		Logger:        log.Named("entries"),
		RecentLimit:   cfg.RemoteRecentLimit,
		RemoteTimeout: cfg.RemoteTimeout,
	}

	switch cfg.LocalStore {
	case config.LocalStoreMemory:
		opts.Local = store.NewMemoryLocalStore()
		log.Warn("local entry store is in-memory; entries not yet in MongoDB are lost on restart")
	default:
		opts.Local = store.NewRedisLocalStore(rdb)
	}

	if cfg.MongoURI != "" {
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, log)
		if err != nil {
			log.Warn("MongoDB unavailable, running offline", zap.Error(err))
		} else {
			defer database.DisconnectMongo(client)
			if err := database.PingMongo(ctx, client); err != nil {
				log.Warn("MongoDB ping failed; remote reads and writes will fail until it is reachable", zap.Error(err))
			}
			remote := store.NewMongoEntryStore(db.Collection(store.EntriesCollection), log.Named("mongo"))
			idxCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := remote.EnsureIndexes(idxCtx); err != nil {
				log.Warn("failed to ensure MongoDB entry indexes", zap.Error(err))
			}
			cancel()
			opts.Remote = remote
			log.Info("MongoDB entry store ready", zap.String("database", db.Name()))
		}
	} else {
		log.Warn("MONGODB_URI not set, running offline")
	}

	if cfg.BackupEnabled {
		opts.Backup = store.NewPostgresBackupStore(pg)
		log.Info("PostgreSQL entry backup enabled")
	}

	hub := notify.NewHub()
	relay := notify.NewRedisRelay(hub, rdb, log.Named("relay"))
	opts.Hub = hub
	opts.Publisher = relay

	coordinator := services.NewEntryCoordinator(opts)
	relay.OnForeignEvent(func(ev notify.Event) { coordinator.DropCached(ev.OwnerID) })
	go relay.Run(ctx)
	sessions := services.NewSessionStore(rdb)

	deps := handlers.Deps{
		Entries:        coordinator,
		Users:          services.NewUserService(pg),
		Sessions:       sessions,
		Activity:       services.NewActivityRecorder(pg),
		Logger:         log.Named("http"),
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if cfg.StickerUploadsEnabled() {
		uploader, err := services.NewStickerUploader(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Warn("failed to initialize Cloudinary; sticker uploads disabled", zap.Error(err))
		} else {
			deps.Stickers = uploader
			log.Info("Cloudinary sticker uploads enabled")
		}
	} else {
		log.Info("Cloudinary credentials not found; sticker uploads disabled")
	}

	r := chi.NewRouter()
	routes.SetupRoutes(r, handlers.New(deps), routes.Options{
		Sessions:           sessions,
		WriteLimiter:       rdb,
		AllowedOrigins:     cfg.AllowedOrigins,
		AllowedHost:        cfg.AllowedHost,
		TrustProxy:         cfg.TrustProxy,
		ProductionSecurity: cfg.IsProduction(),
		Logger:             log.Named("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("diary backend listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown incomplete", zap.Error(err))
	}
	if err := coordinator.Close(shutdownCtx); err != nil {
		log.Warn("background entry writes still running at exit", zap.Error(err))
	}
}

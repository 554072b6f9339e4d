// @title                       Cholo Space Mission Control API
// @version                     1.0
// @description                 Mission logs, public feed, avatars and the admin broadcast channel.
// @host                        localhost:3000
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cholospace/mission-control/internal/api"
	"github.com/cholospace/mission-control/internal/core/domain"
	"github.com/cholospace/mission-control/internal/core/ports"
	"github.com/cholospace/mission-control/internal/core/service"
	mongostore "github.com/cholospace/mission-control/internal/infrastructure/db/mongo"
	redisstore "github.com/cholospace/mission-control/internal/infrastructure/db/redis"
	"github.com/cholospace/mission-control/internal/infrastructure/memory"
	"github.com/cholospace/mission-control/internal/infrastructure/queue"
	"github.com/cholospace/mission-control/internal/infrastructure/storage"
	"github.com/cholospace/mission-control/internal/pkg/config"
	"github.com/cholospace/mission-control/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "mission-control",
		Fields: map[string]string{
			"store":     cfg.StoreBackend,
			"broadcast": cfg.Broadcast.Backend,
			"avatars":   cfg.Avatar.Backend,
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

// stores groups the persistence ports chosen by STORE_BACKEND.
type stores struct {
	users       ports.UserRepository
	logs        ports.LogRepository
	revocations ports.RevocationList
	broadcast   ports.BroadcastStore
	checks      map[string]func(ctx context.Context) error
	close       func(ctx context.Context)
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		st.close(closeCtx)
	}()

	avatars, uploadDir, err := openAvatarStorage(ctx, cfg)
	if err != nil {
		return err
	}

	janitor := queue.NewDispatcher(cfg.Avatar.JanitorWorkers, avatars, logger.Component(log, "avatar-janitor"))
	janitor.Start(ctx)

	sessions := service.NewSessionIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, st.revocations)
	authService := service.NewAuthService(st.users, sessions, service.AuthOptions{
		TrustAnchor: cfg.Auth.AdminUsername,
		BcryptCost:  cfg.Auth.BcryptCost,
	}, log)

	e := api.NewRouter(api.Deps{
		Auth:              authService,
		Logs:              service.NewLogService(st.logs, st.users, log),
		Broadcast:         service.NewBroadcastService(st.broadcast, log),
		Avatars:           service.NewAvatarService(avatars, authService, janitor, cfg.Avatar.MaxBytes, log),
		Verifier:          sessions,
		Logger:            log,
		ReadinessChecks:   st.checks,
		UploadDir:         uploadDir,
		MetricsRegisterer: prometheus.DefaultRegisterer,
		BodyLimit:         cfg.Avatar.RequestBodyLimit(),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreBackend).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func initialBroadcast(cfg *config.Config) string {
	if cfg.Broadcast.Default != "" {
		return cfg.Broadcast.Default
	}
	return domain.DefaultBroadcast
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.StoreBackend == config.BackendMemory {
		log.Warn().Msg("using in-memory stores; data is lost on restart")
		return &stores{
			users:       memory.NewUserRepository(),
			logs:        memory.NewLogRepository(),
			revocations: memory.NewRevocationList(),
			broadcast:   memory.NewBroadcastStore(initialBroadcast(cfg)),
			checks:      map[string]func(context.Context) error{},
			close:       func(context.Context) {},
		}, nil
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	users := mongostore.NewUserRepository(db)
	logs := mongostore.NewLogRepository(db)
	if err := mongostore.EnsureIndexes(ctx, users, logs); err != nil {
		_ = client.Disconnect(ctx)
		_ = rdb.Close()
		return nil, err
	}

	var broadcast ports.BroadcastStore = memory.NewBroadcastStore(initialBroadcast(cfg))
	if cfg.Broadcast.Backend == config.BackendRedis {
		broadcast = redisstore.NewBroadcastStore(rdb, initialBroadcast(cfg))
	}

	log.Info().Str("mongo_db", cfg.Mongo.Database).Str("redis", cfg.Redis.Addr).Msg("stores connected")
	return &stores{
		users:       users,
		logs:        logs,
		revocations: redisstore.NewRevocationList(rdb),
		broadcast:   broadcast,
		checks: map[string]func(context.Context) error{
			"mongodb": mongostore.Pinger(db),
			"redis":   redisstore.Pinger(rdb),
		},
		close: func(ctx context.Context) {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close")
			}
			if err := client.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		},
	}, nil
}

// openAvatarStorage returns the configured blob store and, for local storage,
// the directory the router should serve under /uploads.
func openAvatarStorage(ctx context.Context, cfg *config.Config) (ports.AvatarStorage, string, error) {
	if cfg.Avatar.Backend == config.BackendS3 {
		s3, err := storage.NewS3Storage(ctx, storage.S3Config{
			Endpoint:      cfg.S3.Endpoint,
			Region:        cfg.S3.Region,
			Bucket:        cfg.S3.Bucket,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			Prefix:        cfg.S3.Prefix,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
		if err != nil {
			return nil, "", err
		}
		return s3, "", nil
	}

	local, err := storage.NewLocalStorage(cfg.Avatar.UploadDir, "/uploads")
	if err != nil {
		return nil, "", err
	}
	return local, local.Dir(), nil
}

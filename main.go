package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tamohar/foundationbackend/config"
	"github.com/tamohar/foundationbackend/database"
	"github.com/tamohar/foundationbackend/middleware"
	"github.com/tamohar/foundationbackend/routes"
	"github.com/tamohar/foundationbackend/services"
	"github.com/tamohar/foundationbackend/utils"
)

const serviceName = "foundation-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	stores, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	var denylist utils.Denylist
	if cfg.RedisURL != "" {
		client, err := utils.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		denylist = utils.NewRedisDenylist(client)
		slog.Info("token revocation enabled")
	}

	objects, err := openObjectStore(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.AdminPassword == "" {
		slog.Warn("ADMIN_PASSWORD not set, no admin account will be seeded")
	}
	seeder := services.NewSeeder(stores.Content, stores.Users, cfg.ContentKey, utils.AdminSeed{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Name:     cfg.AdminName,
	})
	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL(), denylist)

	var limiter *middleware.IPRateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := routes.BuildRouter(routes.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.AppVersion,
		AllowedOrigins: cfg.Origins(),
		TrustedProxies: cfg.Proxies(),
		Ping:           stores.Ping,
		Auth:           services.NewAuthService(stores.Users, tokens, seeder),
		Content:        services.NewContentService(stores.Content, seeder),
		Submissions:    services.NewSubmissionService(stores),
		Media:          services.NewMediaService(stores.Media, objects, utils.NewImageValidator(cfg.MaxUploadSizeMB)),
		Uploads:        memoryUploads(objects),
		FormLimiter:    limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr, "env", cfg.AppEnv, "version", cfg.AppVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config) (*database.Stores, func(), error) {
	if cfg.StoreDriver == "memory" {
		slog.Warn("using in-memory store, data is lost on restart")
		return database.NewMemoryStores(), func() {}, nil
	}

	m, err := database.Connect(ctx, cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.Close(closeCtx); err != nil {
			slog.Warn("mongo disconnect failed", "error", err)
		}
	}
	if err := database.EnsureIndexes(ctx, m); err != nil {
		closeFn()
		return nil, nil, err
	}
	return database.NewMongoStores(m), closeFn, nil
}

func openObjectStore(ctx context.Context, cfg *config.Config) (utils.ObjectStore, error) {
	switch cfg.StorageDriver {
	case "r2", "s3":
		return utils.NewR2Store(ctx, utils.R2Config{
			Bucket:          cfg.R2Bucket,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			Endpoint:        cfg.R2Endpoint,
			PublicDomain:    cfg.R2PublicDomain,
			Region:          cfg.R2Region,
		})
	case "gcs":
		return utils.NewGCSStore(ctx, cfg.GCSBucket, cfg.CredentialsFileLocation)
	default:
		return utils.NewMemoryStore(cfg.PublicBaseURL + "/uploads"), nil
	}
}

func memoryUploads(objects utils.ObjectStore) *utils.MemoryStore {
	if m, ok := objects.(*utils.MemoryStore); ok {
		return m
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/behavior-points/pkg/access"
	"github.com/chris/behavior-points/pkg/api"
	"github.com/chris/behavior-points/pkg/balance"
	"github.com/chris/behavior-points/pkg/config"
	"github.com/chris/behavior-points/pkg/handlers"
	"github.com/chris/behavior-points/pkg/jobs"
	"github.com/chris/behavior-points/pkg/middleware"
	"github.com/chris/behavior-points/pkg/models"
	"github.com/chris/behavior-points/pkg/notify"
	"github.com/chris/behavior-points/pkg/points"
	"github.com/chris/behavior-points/pkg/storage"
	dydbstore "github.com/chris/behavior-points/pkg/storage/dynamodb"
	"github.com/chris/behavior-points/pkg/storage/memory"
	"github.com/chris/behavior-points/pkg/storage/postgres"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config.SetupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeStore()

	publisher, err := newPublisher(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create notification publisher: %v", err)
	}

	service := points.NewService(store, publisher)
	handler := handlers.NewApiHandler(service)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(middleware.NewStructuredLogger(log.StandardLogger()))
	router.Use(chimw.Recoverer)
	router.Use(middleware.BearerToken)
	api.HandlerFromMux(handler, router)

	if cfg.ReconcileEnabled {
		scheduler := jobs.NewScheduler(balance.NewEngine(store, store), cfg.ReconcileSchedule)
		if err := scheduler.Start(ctx); err != nil {
			log.Fatalf("Failed to start reconciliation: %v", err)
		}
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{
			"port":   cfg.HTTPPort,
			"driver": cfg.StoreDriver,
			"env":    cfg.AppEnv,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Storage, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
			DSN:      cfg.DatabaseDSN(),
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
		})
		if err != nil {
			return nil, nil, err
		}
		if cfg.DBMigrate {
			if err := postgres.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		return postgres.New(pool), pool.Close, nil

	case config.DriverDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, err
		}
		return dydbstore.New(dynamodb.NewFromConfig(awsCfg), dynamoTables(cfg)), func() {}, nil

	default:
		store := memory.NewStore()
		if cfg.DevAdminToken != "" {
			if err := seedDevAdmin(store, cfg.DevAdminToken, cfg.SessionTTL); err != nil {
				return nil, nil, err
			}
		}
		return store, func() {}, nil
	}
}

func dynamoTables(cfg *config.Config) dydbstore.Tables {
	return dydbstore.Tables{
		Transactions:  cfg.TransactionsTable,
		Balances:      cfg.BalancesTable,
		Awards:        cfg.AwardsTable,
		Catalog:       cfg.CatalogTable,
		Sessions:      cfg.SessionsTable,
		Profiles:      cfg.ProfilesTable,
		Notifications: cfg.NotificationsTable,
	}
}

// seedDevAdmin registers an admin session for local runs against the memory store.
func seedDevAdmin(store *memory.Store, token string, ttl time.Duration) error {
	sessionID, secret, err := access.ParseToken(token)
	if err != nil {
		return err
	}
	hash, err := access.HashSecret(secret)
	if err != nil {
		return err
	}
	const userID = "dev-admin"
	store.SeedProfile(models.Profile{UserId: userID, Role: models.ADMIN})
	store.SeedSession(models.Session{
		Id:         sessionID,
		UserId:     userID,
		SecretHash: hash,
		ExpiresAt:  time.Now().Add(ttl),
	})
	log.WithField("session_id", sessionID).Warn("Seeded development admin session")
	return nil
}

func newPublisher(ctx context.Context, cfg *config.Config) (notify.Publisher, error) {
	if cfg.SQSQueueURL == "" {
		log.Info("SQS_QUEUE_URL not set, award notifications will only be logged")
		return &notify.LogPublisher{}, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return notify.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL), nil
}

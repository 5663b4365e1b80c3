package app

import (
	"context"
	"database/sql"
	"fmt"

	"karma-manager/internal/attendance"
	"karma-manager/internal/auth"
	"karma-manager/internal/config"
	"karma-manager/internal/directory"
	"karma-manager/internal/messaging/kafka"
	"karma-manager/internal/middleware"
	"karma-manager/internal/presence"
	"karma-manager/internal/rbac"
	"karma-manager/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) (func(), error) {
	logger := zap.L().Named("app")

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	// --- Ledger Core ---
	store, closeStore, err := newLedgerStore(ctx, cfg, gormDB, rdb)
	if err != nil {
		return nil, err
	}
	hub := attendance.NewHub()
	ledgers := attendance.NewRegistry[attendance.Member](store, hub, attendance.WithLocation(loc))

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		closeStore()
		return nil, err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		closeStore()
		return nil, err
	}
	guard := middleware.Guard{Secret: cfg.JWTSecret, Logger: zap.L(), RBAC: rbacService}

	// --- Services ---
	board := presence.NewBoard(rdb, loc, nil)
	directoryService := directory.NewService(directory.NewRepository(gormDB), rdb)
	tokens := auth.TokenConfig{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.JWTTTL,
		RefreshTTL: cfg.RefreshTTL,
	}
	authService := auth.NewService(auth.NewRepository(gormDB), tokens)

	var attendanceService attendance.Service
	if cfg.KafkaBroker != "" {
		// presence is fed by cmd/consumer from the relayed outbox
		attendanceService = attendance.NewServiceWithOutbox(ledgers, directoryService, kafka.NewOutboxRepository(db))
	} else {
		attendanceService = attendance.NewService(ledgers, directoryService)
		sub := hub.Subscribe(cfg.Ledger.SubscriberBuffer)
		go attendance.Pump(ctx, sub, presence.FeedFromLedger(board, logger))
		logger.Info("presence fed in-process, no kafka broker configured")
	}

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, tokens, cfg.IsProduction())
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rbacService, rdb)
	directoryHandler := directory.NewHandler(directoryService)
	presenceHandler := presence.NewHandler(board)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, guard)
		attendance.RegisterRoutes(api, attendanceHandler, guard, rdb)
		directory.RegisterRoutes(api, directoryHandler, guard)
		presence.RegisterRoutes(api, presenceHandler, guard)
		rbac.RegisterRoutes(api, rbacHandler, guard)
	}

	return closeStore, nil
}

func newLedgerStore(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, rdb *redis.Client) (attendance.Store, func(), error) {
	noop := func() {}
	switch cfg.Ledger.Store {
	case config.StoreMemory:
		return attendance.NewMemoryStore(), noop, nil
	case config.StoreRedis:
		return attendance.NewRedisStore(rdb), noop, nil
	case config.StoreSQLite:
		s, err := attendance.OpenSQLiteStore(cfg.Ledger.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.StorePostgres:
		s := attendance.NewGormStore(gormDB)
		if err := s.Migrate(ctx); err != nil {
			return nil, nil, fmt.Errorf("migrate ledger table: %w", err)
		}
		return s, noop, nil
	default:
		return nil, nil, fmt.Errorf("unsupported ledger store %q", cfg.Ledger.Store)
	}
}

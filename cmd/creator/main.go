// Package main runs the Vestige character creator. Players connect over
// Telnet, walk through the creation steps, and finished sheets are stored
// in PostgreSQL. In-progress drafts are kept in Redis when it is reachable.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/vestige/content"
	"github.com/cory-johannsen/vestige/internal/config"
	"github.com/cory-johannsen/vestige/internal/frontend/handlers"
	"github.com/cory-johannsen/vestige/internal/frontend/telnet"
	"github.com/cory-johannsen/vestige/internal/game/dice"
	"github.com/cory-johannsen/vestige/internal/game/ruleset"
	"github.com/cory-johannsen/vestige/internal/observability"
	"github.com/cory-johannsen/vestige/internal/server"
	"github.com/cory-johannsen/vestige/internal/storage/postgres"
	"github.com/cory-johannsen/vestige/internal/storage/redisstore"
	"github.com/cory-johannsen/vestige/internal/wizard"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty uses defaults and VESTIGE_* environment")
	envFile := flag.String("env", ".env", "dotenv file loaded into the environment before configuration")
	migrateOnStart := flag.Bool("migrate", true, "apply database migrations before serving")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading %s: %v", *envFile, err)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting Vestige character creator",
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.String("content_dir", cfg.Content.Dir),
	)

	var tablesFS fs.FS = content.FS
	if cfg.Content.Dir != "" {
		tablesFS = os.DirFS(cfg.Content.Dir)
	}
	tables, err := ruleset.LoadTables(tablesFS)
	if err != nil {
		logger.Fatal("loading reference tables", zap.Error(err))
	}
	logger.Info("reference tables loaded",
		zap.Int("professions", len(tables.Professions())),
		zap.Int("upbringings", len(tables.Upbringings())),
		zap.Int("skills", len(tables.Skills())),
	)

	ctx := context.Background()
	if *migrateOnStart {
		version, err := postgres.Migrate(cfg.Database.DSN(), postgres.Up, 0)
		if err != nil {
			logger.Fatal("migrating database", zap.Error(err))
		}
		logger.Info("database schema current", zap.Uint("version", version))
	}

	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Name),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.AddCloser("postgres", func() error {
		pool.Close()
		return nil
	})

	// Drafts are only autosaved when Redis answers; creation still works without it.
	var state wizard.StateStore
	redisClient, err := redisstore.NewClient(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, drafts will not be saved", zap.Error(err))
	} else {
		state = redisstore.NewStateStore(redisClient, cfg.Redis.StateTTL)
		lifecycle.AddCloser("redis", redisClient.Close)
		logger.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	svc := wizard.Services{
		Tables:     tables,
		Dice:       dice.NewLoggedRoller(dice.NewCryptoSource(), logger.Named("dice")),
		Actors:     postgres.NewActorRepository(pool.DB()),
		Compendium: postgres.NewCompendiumRepository(pool.DB()),
		State:      state,
		Logger:     logger,
	}
	opts := wizard.Options{
		Baseline:             &cfg.Wizard.BaselineAttribute,
		StateNamespace:       cfg.Wizard.StateNamespace,
		CompendiumCollection: cfg.Wizard.CompendiumCollection,
	}
	acceptor := telnet.NewAcceptor(cfg.Telnet, handlers.NewCreatorHandler(svc, opts, logger), logger)

	lifecycle.Add("postgres-health", &server.FuncService{
		StartFn: func(ctx context.Context) error {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := pool.Health(ctx, 5*time.Second); err != nil {
						logger.Warn("database health check failed", zap.Error(err))
					}
				}
			}
		},
		StopFn: func() {},
	})
	lifecycle.Add("telnet", acceptor)

	logger.Info("creator initialized",
		zap.Duration("startup", time.Since(start)),
		zap.Bool("autosave", state != nil),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.LoadDefaults()
	}
	return config.Load(path)
}

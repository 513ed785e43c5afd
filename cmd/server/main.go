// Package main runs the Valouniversaire game server: the HTTP API and front
// end, the websocket event stream and the gRPC game service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/cory-johannsen/valouniversaire/internal/config"
	"github.com/cory-johannsen/valouniversaire/internal/game/achievement"
	"github.com/cory-johannsen/valouniversaire/internal/game/session"
	"github.com/cory-johannsen/valouniversaire/internal/game/tick"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
	"github.com/cory-johannsen/valouniversaire/internal/gameserver"
	"github.com/cory-johannsen/valouniversaire/internal/gameserver/gamev1"
	"github.com/cory-johannsen/valouniversaire/internal/observability"
	"github.com/cory-johannsen/valouniversaire/internal/results"
	"github.com/cory-johannsen/valouniversaire/internal/scripting"
	"github.com/cory-johannsen/valouniversaire/internal/server"
	"github.com/cory-johannsen/valouniversaire/internal/storage/jsonfile"
	"github.com/cory-johannsen/valouniversaire/internal/storage/postgres"
	"github.com/cory-johannsen/valouniversaire/internal/storage/sqlite"
	"github.com/cory-johannsen/valouniversaire/internal/web"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = observability.Sync(logger) }()

	logger.Info("starting server",
		zap.String("http_addr", cfg.Server.HTTPAddr()),
		zap.String("storage", cfg.Storage.Driver),
	)

	catalog, err := loadCatalog(cfg.Game.TuningPath)
	if err != nil {
		logger.Fatal("loading tuning catalog", zap.Error(err))
	}
	logger.Info("tuning catalog loaded",
		zap.String("path", cfg.Game.TuningPath),
		zap.Int("workers", len(catalog.Workers())),
		zap.Int("achievements", len(catalog.Achievements())),
	)

	var scripts achievement.Scripts
	if cfg.Game.ScriptsDir != "" {
		scriptMgr := scripting.NewManager(logger, cfg.Game.ScriptInstructionLimit)
		defer scriptMgr.Close()
		if err := scriptMgr.LoadDir(cfg.Game.ScriptsDir); err != nil {
			logger.Fatal("loading achievement scripts", zap.String("dir", cfg.Game.ScriptsDir), zap.Error(err))
		}
		for _, def := range catalog.Achievements() {
			if def.Predicate != "" && !scriptMgr.Defined(def.Predicate) {
				logger.Warn("achievement predicate not defined by any script",
					zap.String("achievement", string(def.ID)),
					zap.String("predicate", def.Predicate),
				)
			}
		}
		scripts = scriptMgr
		logger.Info("achievement scripts loaded", zap.String("dir", cfg.Game.ScriptsDir))
	}

	files, err := jsonfile.New(cfg.Storage.ResultsDir, logger)
	if err != nil {
		logger.Fatal("opening results directory", zap.Error(err))
	}

	storeStart := time.Now()
	store, err := openStore(ctx, cfg, files, logger)
	if err != nil {
		logger.Fatal("opening results store", zap.Error(err))
	}
	logger.Info("results store ready",
		zap.String("driver", cfg.Storage.Driver),
		zap.Duration("elapsed", time.Since(storeStart)),
	)

	recorder := results.NewRecorder(store, logger, cfg.Storage.SaveTimeout)
	defer func() {
		if err := recorder.Close(); err != nil {
			logger.Warn("closing results store", zap.Error(err))
		}
	}()

	clock := tick.SystemClock{}
	sessions, err := session.NewManager(session.Options{
		Catalog:        catalog,
		Evaluator:      achievement.NewEvaluator(catalog, scripts),
		Clock:          clock,
		Recorder:       recorder,
		PollInterval:   cfg.Game.AchievementPollInterval,
		TickResolution: cfg.Game.TickResolution,
		IdleTTL:        cfg.Game.IdleSessionTTL,
		EventBuffer:    cfg.Game.EventBuffer,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal("creating session manager", zap.Error(err))
	}
	defer sessions.Close()

	webServer, err := web.NewServer(web.Options{
		Sessions:        sessions,
		Leaderboard:     store,
		Submissions:     files,
		LeaderboardSize: cfg.Storage.LeaderboardSize,
		StaticDir:       cfg.Server.StaticDir,
		AllowedOrigin:   cfg.Server.AllowedOrigin,
		Clock:           clock,
		Logger:          logger,
	})
	if err != nil {
		logger.Fatal("creating web server", zap.Error(err))
	}

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("sessions", &server.LoopService{Run: sessions.Run})
	lifecycle.Add("http", &server.HTTPService{
		Server: &http.Server{
			Addr:         cfg.Server.HTTPAddr(),
			Handler:      webServer.Handler(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if cfg.Server.GRPCPort != 0 {
		grpcServer := grpc.NewServer(grpc.UnaryInterceptor(gameserver.LoggingInterceptor(logger)))
		gamev1.RegisterGameServiceServer(grpcServer,
			gameserver.NewService(sessions, store, cfg.Storage.LeaderboardSize, logger))
		lifecycle.Add("grpc", &server.GRPCService{Server: grpcServer, Addr: cfg.Server.GRPCAddr()})
		logger.Info("grpc enabled", zap.String("grpc_addr", cfg.Server.GRPCAddr()))
	}

	logger.Info("server initialized", zap.Duration("startup", time.Since(start)))

	if err := lifecycle.Run(ctx); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}
}

func loadCatalog(path string) (*tuning.Catalog, error) {
	if path == "" {
		return tuning.Default()
	}
	return tuning.Load(path)
}

// openStore returns the completed-run store selected by cfg.Storage.Driver.
// The jsonfile driver reuses files so server runs and submitted results share
// one leaderboard.
func openStore(ctx context.Context, cfg config.Config, files *jsonfile.Store, logger *zap.Logger) (results.Store, error) {
	switch cfg.Storage.Driver {
	case "jsonfile":
		return files, nil
	case "sqlite":
		s, err := sqlite.Open(ctx, cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := pool.Health(ctx, 5*time.Second); err != nil {
			pool.Close()
			return nil, err
		}
		return postgres.NewRunRepository(pool), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

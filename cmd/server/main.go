// Command server runs the event evaluation API: judge token validation,
// score recording and the live ranking dashboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/startup-demoday/jurado/internal/api"
	adminapi "github.com/startup-demoday/jurado/internal/api/admin"
	dashboardapi "github.com/startup-demoday/jurado/internal/api/dashboard"
	evaluationsapi "github.com/startup-demoday/jurado/internal/api/evaluations"
	judgesapi "github.com/startup-demoday/jurado/internal/api/judges"
	"github.com/startup-demoday/jurado/internal/api/middleware"
	questionsapi "github.com/startup-demoday/jurado/internal/api/questions"
	"github.com/startup-demoday/jurado/internal/cache"
	"github.com/startup-demoday/jurado/internal/config"
	"github.com/startup-demoday/jurado/internal/repository"
	"github.com/startup-demoday/jurado/internal/seed"
	evalsvc "github.com/startup-demoday/jurado/internal/service/evaluations"
	judgesvc "github.com/startup-demoday/jurado/internal/service/judges"
	"github.com/startup-demoday/jurado/internal/service/scoring"
	"github.com/startup-demoday/jurado/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log := logger.Get()

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	if err := repository.RunMigrations(&cfg.Database.Postgres, log); err != nil {
		return err
	}

	db, err := repository.NewDB(&cfg.Database.Postgres, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	// Repositories.
	programRepo := repository.NewProgramRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	judgeRepo := repository.NewJudgeRepository(db)
	evalRepo := repository.NewEvaluationRepository(db)

	// Legacy deployments can carry a stale score check plus out-of-range
	// rows; repair before serving traffic.
	if err := evalRepo.RepairScoreConstraint(); err != nil {
		return err
	}

	// Services.
	scoringService := scoring.NewService(projectRepo, evalRepo, questionRepo, judgeRepo, cfg.Scoring, log)
	evalService := evalsvc.NewService(evalRepo, judgeRepo, projectRepo, questionRepo, log)
	judgeService := judgesvc.NewService(judgeRepo, log)
	seeder := seed.NewSeeder(
		cfg.Seed.FixturePath,
		programRepo, blockRepo, questionRepo, teamRepo, projectRepo,
		judgeService, evalRepo, log,
	)

	// Rate limiter (optional).
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			return err
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close redis client")
			}
		}()
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit, log)
		log.Info().
			Int("requests_per_window", cfg.RateLimit.RequestsPerWindow).
			Int("window_seconds", cfg.RateLimit.WindowSeconds).
			Msg("Rate limiter enabled")
	}

	router := api.NewRouter(cfg, api.Handlers{
		Dashboard:   dashboardapi.NewHandler(scoringService, log),
		Evaluations: evaluationsapi.NewHandler(evalService, log),
		Judges:      judgesapi.NewHandler(judgeService, log),
		Questions:   questionsapi.NewHandler(projectRepo, questionRepo, blockRepo, log),
		Admin: adminapi.NewHandler(
			programRepo, blockRepo, questionRepo, teamRepo, projectRepo,
			judgeService, seeder, log,
		),
	}, rateLimiter, db)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}

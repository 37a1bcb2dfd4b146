package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"shortfall_service/internal/config"
	"shortfall_service/internal/core"
	"shortfall_service/internal/domain/model"
	"shortfall_service/internal/domain/repository"
	"shortfall_service/internal/infrastructure/estimator"
	"shortfall_service/internal/infrastructure/mlclient"
	"shortfall_service/internal/observability"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "shortfall: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "shortfall",
		Short:         "Predict the Spanish 3-hour electricity load shortfall from weather readings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.Model.Path, "model", cfg.Model.Path, "path to a persisted model artifact (MODEL_PATH)")
	root.PersistentFlags().StringVar(&cfg.Model.URL, "model-url", cfg.Model.URL, "address of a v2 inference server (MODEL_URL)")
	root.PersistentFlags().StringVar(&cfg.Model.Encoding, "encoding", cfg.Model.Encoding, "feature encoding: raw or encoded (FEATURE_ENCODING)")

	root.AddCommand(
		newServeCommand(&cfg),
		newPredictCommand(&cfg),
		newBatchCommand(&cfg),
	)
	return root
}

// app holds what every sub-command needs to serve predictions.
type app struct {
	service *core.PredictionService
	metrics *observability.Metrics
	logger  *slog.Logger
	close   func()
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	encoding, err := core.ParseEncoding(cfg.Model.Encoding)
	if err != nil {
		return nil, err
	}

	est, err := loadEstimator(cfg.Model)
	if err != nil {
		return nil, err
	}
	logger.Info("estimator loaded", "path", cfg.Model.Path, "url", cfg.Model.URL, "encoding", encoding)

	closeFn := func() {}
	var recorder repository.PredictionRecorder
	if cfg.Postgres.SavePredictions {
		repo, err := repository.NewPostgresRepository(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		pgRecorder := repository.NewPostgresPredictionRecorder(repo.DB)
		if err := pgRecorder.EnsureSchema(ctx); err != nil {
			_ = repo.Close()
			return nil, err
		}
		recorder = pgRecorder
		closeFn = func() {
			if err := repo.Close(); err != nil {
				logger.Error("failed to close postgres", "error", err)
			}
		}
		logger.Info("recording predictions to postgres")
	}

	metrics := observability.NewMetrics()
	service := core.NewPredictionService(est, encoding, recorder, cfg.Postgres.SavePredictions, metrics, logger)

	return &app{
		service: service,
		metrics: metrics,
		logger:  logger,
		close:   closeFn,
	}, nil
}

func loadEstimator(cfg config.ModelConfig) (model.Estimator, error) {
	if cfg.URL != "" {
		return mlclient.NewV2Client(cfg.URL, cfg.Name, cfg.Version, cfg.Timeout), nil
	}
	est, err := estimator.Load(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", cfg.Path, err)
	}
	return est, nil
}

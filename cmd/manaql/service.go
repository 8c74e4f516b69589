package manaql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/manaql/manaql-mcp/pkg/cards"
	"github.com/manaql/manaql-mcp/pkg/config"
)

// buildService connects to Postgres, bootstraps the schema and wraps the
// repository in a CardService, applying the circuit breaker when the
// config enables it.
func buildService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*cards.CardService, *cards.PostgresRepository, error) {
	repo, err := cards.NewPostgresRepository(cfg.Database.URL, &cards.PostgresConfig{
		MaxOpenConns:        cfg.Database.MaxOpenConns,
		MaxIdleConns:        cfg.Database.MaxIdleConns,
		ConnMaxLifetime:     cfg.Database.ConnMaxLifetimeDuration(),
		EmbeddingDimensions: cfg.Database.EmbeddingDimensions,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := repo.Initialize(ctx); err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	// The ivfflat index needs data to cluster; on an empty catalog this
	// is a no-op worth only a warning.
	if err := repo.CreateVectorIndex(ctx, cfg.Database.VectorIndexLists); err != nil {
		logger.Warn("failed to create vector index", "error", err)
	}

	var opts []cards.ServiceOption
	if cfg.CircuitBreaker.Enabled {
		cb := cards.NewStoreBreaker(
			"postgres",
			cfg.CircuitBreaker.MaxRequests,
			time.Duration(cfg.CircuitBreaker.Interval)*time.Second,
			time.Duration(cfg.CircuitBreaker.Timeout)*time.Second,
			logger,
		)
		opts = append(opts, cards.WithBreaker(cb))
		logger.Info("circuit breaker enabled", "max_requests", cfg.CircuitBreaker.MaxRequests)
	}

	svc := cards.NewCardService(repo, logger, opts...)
	return svc, repo, nil
}

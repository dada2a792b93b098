package cli

import (
	"context"
	"fmt"

	"career-fit-service/internal/config"
	"career-fit-service/internal/infra/postgres"
	redisinfra "career-fit-service/internal/infra/redis"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewSeedCmd upserts the catalog into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Store the assessment catalog in Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath)
		},
	}
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
		return err
	}
	banks, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	db := postgres.OpenBun(cfg.Postgres.URL)
	defer db.Close()
	seeder := postgres.NewSeeder(db)

	// Stale cached banks would outlive the new rows until their TTL expires.
	var cache *redisinfra.AssessmentRepository
	if client := newRedisClient(cfg); client != nil {
		defer client.Close()
		cache = redisinfra.NewAssessmentRepository(client, nil, config.TTLDuration(cfg.Assessment.TTL, 0), logger)
	}

	for _, a := range banks.List() {
		if err := seeder.Upsert(ctx, a); err != nil {
			return err
		}
		if cache != nil {
			if err := cache.Invalidate(ctx, a.ID); err != nil {
				logger.Warn("invalidate cached assessment failed", zap.String("assessment_id", a.ID), zap.Error(err))
			}
		}
		logger.Info("assessment seeded", zap.String("assessment_id", a.ID), zap.Int("questions", len(a.Questions)))
	}
	if banks.Len() == 0 {
		return fmt.Errorf("catalog is empty")
	}
	return nil
}

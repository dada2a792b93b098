package cli

import (
	"fmt"

	"career-fit-service/internal/catalog"
	"career-fit-service/internal/config"
	"career-fit-service/internal/logging"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func loadConfig(path string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, logger, nil
}

// loadCatalog returns the built-in banks plus any found under catalog.dir.
func loadCatalog(cfg config.Config, logger *zap.Logger) (*catalog.Catalog, error) {
	c, err := catalog.Builtin()
	if err != nil {
		return nil, fmt.Errorf("load built-in catalog: %w", err)
	}
	if cfg.Catalog.Dir == "" {
		return c, nil
	}
	extra, err := catalog.LoadDir(cfg.Catalog.Dir)
	if err != nil {
		return nil, fmt.Errorf("load catalog dir %s: %w", cfg.Catalog.Dir, err)
	}
	logger.Info("catalog directory loaded", zap.String("dir", cfg.Catalog.Dir), zap.Int("assessments", extra.Len()))
	return c.Merge(extra), nil
}

func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

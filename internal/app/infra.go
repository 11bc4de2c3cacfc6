package app

import (
	"context"
	"database/sql"

	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/config"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/db"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/logger"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/redis"

	_ "github.com/lib/pq"
)

type Infra struct {
	DB    *db.DB        // nil when running on in-memory stores
	Redis *redis.Client // nil when sessions live in memory
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	infra := &Infra{}

	if cfg.DatabaseDSN != "" {
		sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}

		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, err
		}

		if err := db.RunMarketplaceMigration(ctx, sqlDB); err != nil {
			return nil, err
		}

		logger.Info("database ready", nil)
		infra.DB = &db.DB{DB: sqlDB}
	} else {
		logger.Warn("DATABASE_DSN not set, using in-memory stores", nil)
	}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}

		logger.Info("redis ready", nil)
		infra.Redis = redisClient
	} else {
		logger.Warn("REDIS_ADDR not set, sessions held in process memory", nil)
	}

	return infra, nil
}

func (i *Infra) Close() error {
	if i.DB != nil {
		return i.DB.Close()
	}
	return nil
}

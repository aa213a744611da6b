package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"crednest-server/internal/cache"
	"crednest-server/internal/repository"
	"crednest-server/internal/seed"
	"crednest-server/internal/service"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "执行数据库迁移",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := repository.OpenDatabase(cfg.Database, newGormLogger(cfg, log))
		if err != nil {
			return err
		}
		if err := repository.AutoMigrate(db); err != nil {
			return err
		}
		log.Info().Str("driver", cfg.Database.Driver).Msg("database migrations completed")
		return nil
	},
}

var seedBanksCmd = &cobra.Command{
	Use:   "seed-banks",
	Short: "导入银行贷款目录（覆盖现有数据）",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := repository.OpenDatabase(cfg.Database, newGormLogger(cfg, log))
		if err != nil {
			return err
		}
		if err := repository.AutoMigrate(db); err != nil {
			return err
		}
		redisCache, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			return err
		}
		defer redisCache.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		banks := seed.Banks()
		financeService := service.NewFinanceService(repository.NewBankRepository(db), redisCache, log.Sub("finance"))
		if err := financeService.SeedBanks(ctx, banks); err != nil {
			return err
		}
		log.Info().Int("count", len(banks)).Msg("bank catalog seeded")
		return nil
	},
}

// Package main 是服务端的入口点
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	gormlogger "gorm.io/gorm/logger"

	"crednest-server/internal/config"
	"crednest-server/internal/logger"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "crednest-server",
	Short: "CredNest 个人理财服务端",
	Long: `CredNest 服务端

提供账户、预算与支出、银行贷款目录、EMI 计算以及聊天助手接口。
不带子命令运行时等同于 serve。`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", "./configs", "配置文件目录")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedBanksCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap 加载配置并创建根 Logger
func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logger.FromConfig(cfg.Log.Level, cfg.Log.Format), nil
}

// newGormLogger SQL 日志写入 zerolog，release 模式只记录警告
func newGormLogger(cfg *config.Config, log *logger.Logger) gormlogger.Interface {
	level := gormlogger.Info
	if cfg.Server.Mode == "release" {
		level = gormlogger.Warn
	}
	return gormlogger.New(log.Sub("gorm"), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

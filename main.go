// @title SmartEnglish+ 后端 API
// @version 1.0
// @description SmartEnglish+ 英语学习进度平台的后端服务器。
// @termsOfService http://swagger.io/terms/

// @contact.name API支持
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"smartenglish_backend/internal/app"
	"smartenglish_backend/internal/config"
	"smartenglish_backend/pkg/logger"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var (
		configDir   string
		migrate     bool
		migrateOnly bool
	)

	cmd := &cobra.Command{
		Use:          "smartenglish",
		Short:        "SmartEnglish+ progress tracking server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configDir)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// 设置迁移标志
			cfg.ForceMigrate = migrate || migrateOnly
			cfg.MigrateOnly = migrateOnly

			application, err := app.NewApp(cfg, filepath.Join(configDir, "config.yaml"))
			if err != nil {
				return err
			}
			defer logger.Log.Sync()

			// 迁移完成后直接退出
			if migrateOnly {
				logger.Log.Info("Database migration finished, exiting")
				return nil
			}

			application.Run()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configDir, "config", "c", "configs", "配置文件所在目录")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	cmd.Flags().BoolVar(&migrateOnly, "migrate-only", false, "只执行数据库迁移，完成后退出")
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// Package commands 实现 qcadmin 的各个子命令。
package commands

import (
	"github.com/spf13/cobra"

	"qcmeta-go/internal/config"
	"qcmeta-go/pkg/database"
	"qcmeta-go/pkg/log"
)

var configPath string

// Execute 构建并运行根命令。所有子命令共享配置加载和数据库初始化。
func Execute() error {
	root := &cobra.Command{
		Use:   "qcadmin",
		Short: "量子化学计算目录的运维工具",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Init(configPath)
			cfg := config.Conf
			log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
			database.InitMySQL(cfg.Database.MySQL.DSN)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "./configs/config.yaml", "配置文件路径")

	root.AddCommand(createAdminCmd(), seedCmd(), reindexCmd())
	return root.Execute()
}

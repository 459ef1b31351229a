package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"qcmeta-go/internal/config"
	"qcmeta-go/internal/model"
	"qcmeta-go/internal/repository"
	"qcmeta-go/internal/service"
	"qcmeta-go/pkg/database"
	"qcmeta-go/pkg/kafka"
)

// reindexCmd 为数据库中的全部目录记录重新投递索引任务。
// 任务由服务端的 Kafka 消费者异步处理，命令返回不代表索引已完成。
func reindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "重建全部目录记录的搜索索引",
		RunE: func(cmd *cobra.Command, args []string) error {
			kafka.InitProducer(config.Conf.Kafka)

			db := database.DB
			familyRepo := repository.NewCatalogRepository[model.MethodFamily](db)
			spinStateRepo := repository.NewCatalogRepository[model.SpinState](db)
			stateRepo := repository.NewCatalogRepository[model.ElectronicState](db)
			moleculeRepo := repository.NewCatalogRepository[model.Molecule](db)
			baseMethodRepo := repository.NewBaseMethodRepository(db)
			esmfRepo := repository.NewCatalogRepository[model.ElectronicStateMethodFamilySimple](db)
			ssesmfRepo := repository.NewCatalogRepository[model.SpinStateElectronicStateMethodFamilySimple](db)
			fullMethodRepo := repository.NewCatalogRepository[model.FullMethodSimple](db)
			experimentRepo := repository.NewExperimentRepository(db)

			hydrator := service.NewHydrator(
				familyRepo, spinStateRepo, stateRepo, moleculeRepo,
				baseMethodRepo, esmfRepo, ssesmfRepo, fullMethodRepo, experimentRepo,
			)
			userRepo := repository.NewUserRepository(db)
			adminService := service.NewAdminService(userRepo, hydrator, service.NewKafkaIndexPublisher())

			published, err := adminService.ReindexAll()
			if err != nil {
				return err
			}
			fmt.Printf("已投递 %d 个索引任务\n", published)
			return nil
		},
	}
}

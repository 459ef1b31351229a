package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"qcmeta-go/internal/model"
	"qcmeta-go/internal/repository"
	"qcmeta-go/internal/service"
	"qcmeta-go/pkg/database"
)

// seedCmd 写入一批基础目录数据：常用方法族、自旋态和基态电子态。
// 以 keyword 判重，可以安全地重复执行。
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "写入基础目录数据 (幂等)",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			// 种子数据不投递索引任务，导入后统一执行 reindex
			publisher := service.NoopIndexPublisher{}
			notifier := service.NoopChangeNotifier{}
			methodService := service.NewMethodService(familyRepo, baseMethodRepo, fullMethodRepo, ssesmfRepo, hydrator, publisher, notifier)
			stateService := service.NewStateService(spinStateRepo, stateRepo, familyRepo, esmfRepo, ssesmfRepo, hydrator, publisher, notifier)

			created := 0

			families := []service.CatalogInput{
				{Keyword: "WFT", Name: "Wave Function Theory"},
				{Keyword: "DFT", Name: "Density Functional Theory"},
				{Keyword: "SE", Name: "Semi-Empirical"},
			}
			for _, input := range families {
				exists, err := seedExists(familyRepo, input.Keyword)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				if _, err := methodService.CreateMethodFamily(input); err != nil {
					return fmt.Errorf("创建方法族 '%s' 失败: %w", input.Keyword, err)
				}
				created++
			}

			spinStates := []service.SpinStateInput{
				{CatalogInput: service.CatalogInput{Keyword: "S", Name: "Singlet"}, Multiplicity: 1},
				{CatalogInput: service.CatalogInput{Keyword: "D", Name: "Doublet"}, Multiplicity: 2},
				{CatalogInput: service.CatalogInput{Keyword: "T", Name: "Triplet"}, Multiplicity: 3},
			}
			for _, input := range spinStates {
				exists, err := seedExists(spinStateRepo, input.Keyword)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				if _, err := stateService.CreateSpinState(input); err != nil {
					return fmt.Errorf("创建自旋态 '%s' 失败: %w", input.Keyword, err)
				}
				created++
			}

			states := []service.CatalogInput{
				{Keyword: "GS", Name: "Ground State"},
				{Keyword: "ES1", Name: "First Excited State"},
			}
			for _, input := range states {
				exists, err := seedExists(stateRepo, input.Keyword)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				if _, err := stateService.CreateElectronicState(input); err != nil {
					return fmt.Errorf("创建电子态 '%s' 失败: %w", input.Keyword, err)
				}
				created++
			}

			fmt.Printf("种子数据导入完成，新建 %d 条记录\n", created)
			return nil
		},
	}
}

// seedExists 以 keyword 查询记录是否已存在。
func seedExists[T any](repo repository.CatalogRepository[T], keyword string) (bool, error) {
	_, err := repo.FindByKeyword(keyword)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

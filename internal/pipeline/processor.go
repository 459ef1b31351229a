// Package pipeline 定义了目录索引任务的核心处理流程。
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"qcmeta-go/internal/config"
	"qcmeta-go/internal/model"
	"qcmeta-go/internal/repository"
	"qcmeta-go/pkg/es"
	"qcmeta-go/pkg/log"
	"qcmeta-go/pkg/tasks"

	"gorm.io/gorm"
)

// Processor 封装了索引任务处理所需的全部依赖。
// 它从 Kafka 消费 IndexTask，按实体类型从 MySQL 加载目录实体，
// 并把对应的文档写入或移出 Elasticsearch。
type Processor struct {
	esCfg          config.ElasticsearchConfig
	familyRepo     repository.CatalogRepository[model.MethodFamily]
	spinStateRepo  repository.CatalogRepository[model.SpinState]
	stateRepo      repository.CatalogRepository[model.ElectronicState]
	moleculeRepo   repository.CatalogRepository[model.Molecule]
	baseMethodRepo repository.BaseMethodRepository
	esmfRepo       repository.CatalogRepository[model.ElectronicStateMethodFamilySimple]
	ssesmfRepo     repository.CatalogRepository[model.SpinStateElectronicStateMethodFamilySimple]
	fullMethodRepo repository.CatalogRepository[model.FullMethodSimple]
	experimentRepo repository.ExperimentRepository
}

// NewProcessor 创建一个新的 Processor 实例。
func NewProcessor(
	esCfg config.ElasticsearchConfig,
	familyRepo repository.CatalogRepository[model.MethodFamily],
	spinStateRepo repository.CatalogRepository[model.SpinState],
	stateRepo repository.CatalogRepository[model.ElectronicState],
	moleculeRepo repository.CatalogRepository[model.Molecule],
	baseMethodRepo repository.BaseMethodRepository,
	esmfRepo repository.CatalogRepository[model.ElectronicStateMethodFamilySimple],
	ssesmfRepo repository.CatalogRepository[model.SpinStateElectronicStateMethodFamilySimple],
	fullMethodRepo repository.CatalogRepository[model.FullMethodSimple],
	experimentRepo repository.ExperimentRepository,
) *Processor {
	return &Processor{
		esCfg:          esCfg,
		familyRepo:     familyRepo,
		spinStateRepo:  spinStateRepo,
		stateRepo:      stateRepo,
		moleculeRepo:   moleculeRepo,
		baseMethodRepo: baseMethodRepo,
		esmfRepo:       esmfRepo,
		ssesmfRepo:     ssesmfRepo,
		fullMethodRepo: fullMethodRepo,
		experimentRepo: experimentRepo,
	}
}

// Process 是索引任务处理的主函数。
// 删除任务直接移除 ES 文档；索引任务先从数据库加载实体再写入文档，
// 若实体已不存在或已归档，则同样移除文档，保证索引与库内状态一致。
func (p *Processor) Process(ctx context.Context, task tasks.IndexTask) error {
	log.Infof("[Processor] 开始处理索引任务, EntityType: %s, EntityID: %d, Action: %s",
		task.EntityType, task.EntityID, task.Action)

	if task.Action == tasks.ActionDelete {
		log.Infof("[Processor] 删除任务: 从索引中移除文档 %s", task.Key())
		if err := es.DeleteCatalogDocument(ctx, p.esCfg.IndexName, task.Key()); err != nil {
			log.Errorf("[Processor] 从 Elasticsearch 删除文档失败, DocID: %s, Error: %v", task.Key(), err)
			return fmt.Errorf("从 Elasticsearch 删除文档失败: %w", err)
		}
		log.Infof("[Processor] 索引任务处理完成, DocID: %s", task.Key())
		return nil
	}

	// 1. 按实体类型从数据库加载公共属性
	log.Infof("[Processor] 步骤1: 从数据库加载实体, EntityType: %s, EntityID: %d", task.EntityType, task.EntityID)
	meta, err := p.loadMeta(task.EntityType, task.EntityID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 实体已被物理删除（目前只有附件会），索引里不应再保留对应文档
		log.Warnf("[Processor] 实体不存在, 按删除处理, DocID: %s", task.Key())
		return es.DeleteCatalogDocument(ctx, p.esCfg.IndexName, task.Key())
	}
	if err != nil {
		log.Errorf("[Processor] 加载实体失败, EntityType: %s, EntityID: %d, Error: %v",
			task.EntityType, task.EntityID, err)
		return fmt.Errorf("加载实体失败: %w", err)
	}

	// 已归档实体不参与搜索
	if meta.Archived {
		log.Infof("[Processor] 实体已归档, 从索引中移除文档, DocID: %s", task.Key())
		if err := es.DeleteCatalogDocument(ctx, p.esCfg.IndexName, task.Key()); err != nil {
			log.Errorf("[Processor] 从 Elasticsearch 删除文档失败, DocID: %s, Error: %v", task.Key(), err)
			return fmt.Errorf("从 Elasticsearch 删除文档失败: %w", err)
		}
		return nil
	}

	// 2. 构造目录文档并写入 Elasticsearch
	doc := model.CatalogDocument{
		DocID:       task.Key(),
		EntityType:  task.EntityType,
		EntityID:    meta.ID,
		Keyword:     meta.Keyword,
		Name:        meta.Name,
		Label:       meta.Label(),
		Description: meta.PlainDescription,
		Archived:    meta.Archived,
		IndexedAt:   model.NowLocalTime(),
	}
	log.Infof("[Processor] 步骤2: 写入 Elasticsearch, DocID: %s, Label: %s", doc.DocID, doc.Label)
	if err := es.IndexCatalogDocument(ctx, p.esCfg.IndexName, doc); err != nil {
		log.Errorf("[Processor] 索引文档到 Elasticsearch 失败, DocID: %s, Error: %v", doc.DocID, err)
		return fmt.Errorf("索引文档到 Elasticsearch 失败: %w", err)
	}

	log.Infof("[Processor] 索引任务处理成功, DocID: %s", doc.DocID)
	return nil
}

// loadMeta 按实体类型加载实体并提取公共属性。
func (p *Processor) loadMeta(entityType string, id uint) (*model.EntityMeta, error) {
	switch entityType {
	case model.EntityTypeMethodFamily:
		return fetchMeta(p.familyRepo, id)
	case model.EntityTypeSpinState:
		return fetchMeta(p.spinStateRepo, id)
	case model.EntityTypeElectronicState:
		return fetchMeta(p.stateRepo, id)
	case model.EntityTypeMolecule:
		return fetchMeta(p.moleculeRepo, id)
	case model.EntityTypeBaseMethod:
		return fetchMeta[model.BaseMethodSimple](p.baseMethodRepo, id)
	case model.EntityTypeElectronicStateMethodFamily:
		return fetchMeta(p.esmfRepo, id)
	case model.EntityTypeSpinStateElectronicStateMethodFamily:
		return fetchMeta(p.ssesmfRepo, id)
	case model.EntityTypeFullMethod:
		return fetchMeta(p.fullMethodRepo, id)
	case model.EntityTypeExperiment:
		return fetchMeta[model.ExperimentSimple](p.experimentRepo, id)
	default:
		return nil, fmt.Errorf("未知的实体类型: %s", entityType)
	}
}

// fetchMeta 加载一条记录并通过 Meta 访问器提取嵌入的公共属性。
func fetchMeta[T any](repo repository.CatalogRepository[T], id uint) (*model.EntityMeta, error) {
	entity, err := repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	withMeta, ok := any(*entity).(interface{ Meta() model.EntityMeta })
	if !ok {
		return nil, fmt.Errorf("实体类型 %T 缺少公共属性", *entity)
	}
	meta := withMeta.Meta()
	return &meta, nil
}

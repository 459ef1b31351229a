// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"gorm.io/gorm"

	"qcmeta-go/internal/model"
)

// ExperimentRepository 在通用目录仓库之上补充了按关联实体过滤的查询。
type ExperimentRepository interface {
	CatalogRepository[model.ExperimentSimple]
	FindByMoleculeID(moleculeID uint, includeArchived bool) ([]model.ExperimentSimple, error)
	FindByFullMethodID(fullMethodID uint, includeArchived bool) ([]model.ExperimentSimple, error)
}

type experimentRepository struct {
	catalogRepository[model.ExperimentSimple]
}

// NewExperimentRepository 创建一个新的 ExperimentRepository 实例。
func NewExperimentRepository(db *gorm.DB) ExperimentRepository {
	return &experimentRepository{catalogRepository[model.ExperimentSimple]{db: db}}
}

// FindByMoleculeID 检索某个分子下的所有实验记录。
func (r *experimentRepository) FindByMoleculeID(moleculeID uint, includeArchived bool) ([]model.ExperimentSimple, error) {
	return r.findByColumn("molecule_id", moleculeID, includeArchived)
}

// FindByFullMethodID 检索使用某个完整方法的所有实验记录。
func (r *experimentRepository) FindByFullMethodID(fullMethodID uint, includeArchived bool) ([]model.ExperimentSimple, error) {
	return r.findByColumn("full_method_id", fullMethodID, includeArchived)
}

func (r *experimentRepository) findByColumn(column string, id uint, includeArchived bool) ([]model.ExperimentSimple, error) {
	var experiments []model.ExperimentSimple
	query := r.db.Where(column+" = ?", id)
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}
	err := query.Order("id").Find(&experiments).Error
	return experiments, err
}

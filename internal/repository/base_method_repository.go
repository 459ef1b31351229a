// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"gorm.io/gorm"

	"qcmeta-go/internal/model"
)

// BaseMethodRepository 在通用目录仓库之上补充了按方法族过滤的查询，
// 用于归档方法族前的引用检查。
type BaseMethodRepository interface {
	CatalogRepository[model.BaseMethodSimple]
	CountByMethodFamilyID(familyID uint) (int64, error)
}

type baseMethodRepository struct {
	catalogRepository[model.BaseMethodSimple]
}

// NewBaseMethodRepository 创建一个新的 BaseMethodRepository 实例。
func NewBaseMethodRepository(db *gorm.DB) BaseMethodRepository {
	return &baseMethodRepository{catalogRepository[model.BaseMethodSimple]{db: db}}
}

// CountByMethodFamilyID 统计某个方法族下未归档的基础方法数量。
func (r *baseMethodRepository) CountByMethodFamilyID(familyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.BaseMethodSimple{}).
		Where("method_family_id = ? AND archived = ?", familyID, false).
		Count(&count).Error
	return count, err
}

// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"time"

	"gorm.io/gorm"

	"qcmeta-go/internal/model"
)

// CatalogRepository 是所有目录实体仓库共享的泛型接口。
// 六个实体族的持久化操作完全同构，因此用一个泛型实现承载，
// 避免手工复制六份几乎相同的仓库代码。
//
// 删除语义：目录记录永远不会被物理删除。Archive 只翻转 Archived 标记，
// 默认的查询都会排除已归档的记录。
type CatalogRepository[T any] interface {
	Create(entity *T) error
	FindByID(id uint) (*T, error)
	FindByKeyword(keyword string) (*T, error)
	FindAll(includeArchived bool) ([]T, error)
	FindWithPagination(includeArchived bool, offset, limit int) ([]T, int64, error)
	FindRecords() ([]model.Record, error)
	FindAllIDs(includeArchived bool) ([]uint, error)
	Update(entity *T) error
	Archive(id uint) error
	Restore(id uint) error
}

// catalogRepository 是 CatalogRepository 的 GORM 实现。
type catalogRepository[T any] struct {
	db *gorm.DB
}

// NewCatalogRepository 为某个目录实体类型创建一个仓库实例。
func NewCatalogRepository[T any](db *gorm.DB) CatalogRepository[T] {
	return &catalogRepository[T]{db: db}
}

// Create 在数据库中插入一条新的目录记录。
func (r *catalogRepository[T]) Create(entity *T) error {
	return r.db.Create(entity).Error
}

// FindByID 根据主键查找一条记录，包含已归档的记录。
func (r *catalogRepository[T]) FindByID(id uint) (*T, error) {
	var entity T
	err := r.db.First(&entity, id).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindByKeyword 根据 Keyword 查找一条未归档的记录，主要用于幂等的种子导入。
func (r *catalogRepository[T]) FindByKeyword(keyword string) (*T, error) {
	var entity T
	err := r.db.Where("keyword = ? AND archived = ?", keyword, false).First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindAll 检索全部记录，默认排除已归档的记录。
func (r *catalogRepository[T]) FindAll(includeArchived bool) ([]T, error) {
	var entities []T
	query := r.db
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}
	err := query.Order("id").Find(&entities).Error
	return entities, err
}

// FindWithPagination 分页检索记录，返回当前页数据和总记录数。
func (r *catalogRepository[T]) FindWithPagination(includeArchived bool, offset, limit int) ([]T, int64, error) {
	var entities []T
	var total int64

	query := r.db.Model(new(T))
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}

	// 首先计算总记录数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 然后根据偏移量和限制获取当前页的数据
	if err := query.Order("id").Offset(offset).Limit(limit).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

// FindRecords 检索全部未归档记录的 Record 投影，按 Keyword 排序，
// 供下拉列表使用。
func (r *catalogRepository[T]) FindRecords() ([]model.Record, error) {
	var records []model.Record
	err := r.db.Model(new(T)).
		Where("archived = ?", false).
		Order("keyword").
		Find(&records).Error
	return records, err
}

// FindAllIDs 检索全部记录的主键，用于重建搜索索引。
func (r *catalogRepository[T]) FindAllIDs(includeArchived bool) ([]uint, error) {
	var ids []uint
	query := r.db.Model(new(T))
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}
	err := query.Order("id").Pluck("id", &ids).Error
	return ids, err
}

// Update 保存一条已存在的记录。
func (r *catalogRepository[T]) Update(entity *T) error {
	return r.db.Save(entity).Error
}

// Archive 将一条记录打上软删除标记。记录不存在时返回 gorm.ErrRecordNotFound。
func (r *catalogRepository[T]) Archive(id uint) error {
	return r.setArchived(id, true)
}

// Restore 取消一条记录的软删除标记。
func (r *catalogRepository[T]) Restore(id uint) error {
	return r.setArchived(id, false)
}

func (r *catalogRepository[T]) setArchived(id uint, archived bool) error {
	result := r.db.Model(new(T)).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"archived":          archived,
			"last_updated_date": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

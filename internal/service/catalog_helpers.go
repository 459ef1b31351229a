package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"qcmeta-go/internal/model"
	"qcmeta-go/internal/repository"
)

// loadRelated 加载一条被引用的目录记录，用于写操作前的引用检查。
// 记录不存在或已归档都算调用方的输入错误。
func loadRelated[T any](repo repository.CatalogRepository[T], id uint, what string) (*T, error) {
	entity, err := repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s %d 不存在", ErrInvalidInput, what, id)
		}
		return nil, err
	}
	if a, ok := any(*entity).(interface{ IsArchived() bool }); ok && a.IsArchived() {
		return nil, fmt.Errorf("%w: %s %d 已归档，不能被引用", ErrInvalidInput, what, id)
	}
	return entity, nil
}

// relatedRecords 把某个实体族的全部记录（含已归档）折叠成 id 到 Record 的映射，
// 列表接口批量升级 Intermediate 形态时用它避免逐行回表。
func relatedRecords[T any](repo repository.CatalogRepository[T]) (map[uint]model.Record, error) {
	all, err := repo.FindAll(true)
	if err != nil {
		return nil, err
	}
	records := make(map[uint]model.Record, len(all))
	for _, entity := range all {
		if r, ok := any(entity).(interface{ ToRecord() model.Record }); ok {
			record := r.ToRecord()
			records[record.ID] = record
		}
	}
	return records, nil
}

// applyCatalogInput 把客户端可写的公共属性套用到实体上并刷新更新时间。
// ID、创建时间和归档标记不受更新接口影响。
func applyCatalogInput(meta *model.EntityMeta, input CatalogInput) {
	meta.Keyword = input.Keyword
	meta.Name = input.Name
	meta.RichDescription = input.RichDescription
	meta.PlainDescription = input.PlainDescription
	meta.Touch()
}

// announceArchiveChange 重新加载实体取其标签，再广播归档/恢复事件。
// 实体刚刚被成功更新过，加载失败时退化为空标签而不是放弃广播。
func announceArchiveChange[T any](a announcer, repo repository.CatalogRepository[T], entityType string, id uint, action string) {
	var label string
	if entity, err := repo.FindByID(id); err == nil {
		if l, ok := any(*entity).(interface{ Label() string }); ok {
			label = l.Label()
		}
	}
	a.announce(entityType, id, action, label)
}

// pageToOffset 把 1 起始的页码换算成偏移量，页码和页大小越界时回退到默认值。
func pageToOffset(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return (page - 1) * pageSize, pageSize
}

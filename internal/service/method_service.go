package service

import (
	"fmt"

	"qcmeta-go/internal/model"
	"qcmeta-go/internal/repository"
)

// MethodService 接口定义了方法目录（方法族、基础方法、完整方法）的业务操作。
// 列表接口返回 Intermediate 形态，详情接口返回递归展开的 Full 形态，
// 下拉列表返回 Record 投影。
type MethodService interface {
	// 方法族
	CreateMethodFamily(input CatalogInput) (*model.MethodFamily, error)
	UpdateMethodFamily(id uint, input CatalogInput) (*model.MethodFamily, error)
	GetMethodFamily(id uint) (*model.MethodFamily, error)
	ListMethodFamilies(includeArchived bool, page, pageSize int) ([]model.MethodFamily, int64, error)
	MethodFamilyRecords() ([]model.Record, error)
	ArchiveMethodFamily(id uint) error
	RestoreMethodFamily(id uint) error

	// 基础方法
	CreateBaseMethod(input BaseMethodInput) (*model.BaseMethodIntermediate, error)
	UpdateBaseMethod(id uint, input BaseMethodInput) (*model.BaseMethodIntermediate, error)
	GetBaseMethod(id uint) (*model.BaseMethodFull, error)
	ListBaseMethods(includeArchived bool, page, pageSize int) ([]model.BaseMethodIntermediate, int64, error)
	BaseMethodRecords() ([]model.Record, error)
	ArchiveBaseMethod(id uint) error
	RestoreBaseMethod(id uint) error

	// 完整方法
	CreateFullMethod(input FullMethodInput) (*model.FullMethodIntermediate, error)
	UpdateFullMethod(id uint, input FullMethodInput) (*model.FullMethodIntermediate, error)
	GetFullMethod(id uint) (*model.FullMethodFull, error)
	ListFullMethods(includeArchived bool, page, pageSize int) ([]model.FullMethodIntermediate, int64, error)
	FullMethodRecords() ([]model.Record, error)
	ArchiveFullMethod(id uint) error
	RestoreFullMethod(id uint) error
}

// methodService 是 MethodService 接口的实现。
type methodService struct {
	familyRepo     repository.CatalogRepository[model.MethodFamily]
	baseMethodRepo repository.BaseMethodRepository
	fullMethodRepo repository.CatalogRepository[model.FullMethodSimple]
	ssesmfRepo     repository.CatalogRepository[model.SpinStateElectronicStateMethodFamilySimple]
	hydrator       *Hydrator
	announcer      announcer
}

// NewMethodService 创建一个新的 MethodService 实例。
func NewMethodService(
	familyRepo repository.CatalogRepository[model.MethodFamily],
	baseMethodRepo repository.BaseMethodRepository,
	fullMethodRepo repository.CatalogRepository[model.FullMethodSimple],
	ssesmfRepo repository.CatalogRepository[model.SpinStateElectronicStateMethodFamilySimple],
	hydrator *Hydrator,
	publisher IndexPublisher,
	notifier ChangeNotifier,
) MethodService {
	return &methodService{
		familyRepo:     familyRepo,
		baseMethodRepo: baseMethodRepo,
		fullMethodRepo: fullMethodRepo,
		ssesmfRepo:     ssesmfRepo,
		hydrator:       hydrator,
		announcer:      announcer{publisher: publisher, notifier: notifier},
	}
}

// --- 方法族 ---

// CreateMethodFamily 创建一个新的方法族。
func (s *methodService) CreateMethodFamily(input CatalogInput) (*model.MethodFamily, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	family := &model.MethodFamily{
		EntityMeta: model.NewEntityMeta(input.Keyword, input.Name),
	}
	family.RichDescription = input.RichDescription
	family.PlainDescription = input.PlainDescription
	if err := s.familyRepo.Create(family); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeMethodFamily, family.ID, model.ActionCreated, family.Label())
	return family, nil
}

// UpdateMethodFamily 更新一个已存在的方法族。
func (s *methodService) UpdateMethodFamily(id uint, input CatalogInput) (*model.MethodFamily, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	family, err := s.familyRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	applyCatalogInput(&family.EntityMeta, input)
	if err := s.familyRepo.Update(family); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeMethodFamily, family.ID, model.ActionUpdated, family.Label())
	return family, nil
}

// GetMethodFamily 返回一个方法族。方法族没有关联引用，三种详细形态一致。
func (s *methodService) GetMethodFamily(id uint) (*model.MethodFamily, error) {
	return s.familyRepo.FindByID(id)
}

// ListMethodFamilies 分页返回方法族列表。
func (s *methodService) ListMethodFamilies(includeArchived bool, page, pageSize int) ([]model.MethodFamily, int64, error) {
	offset, limit := pageToOffset(page, pageSize)
	return s.familyRepo.FindWithPagination(includeArchived, offset, limit)
}

// MethodFamilyRecords 返回供下拉列表使用的方法族 Record 投影。
func (s *methodService) MethodFamilyRecords() ([]model.Record, error) {
	return s.familyRepo.FindRecords()
}

// ArchiveMethodFamily 归档一个方法族。
// 仍被未归档基础方法引用的方法族不能归档，否则这些方法的详情视图会悬空。
func (s *methodService) ArchiveMethodFamily(id uint) error {
	count, err := s.baseMethodRepo.CountByMethodFamilyID(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: 方法族 %d 仍被 %d 个基础方法引用", ErrInvalidInput, id, count)
	}
	if err := s.familyRepo.Archive(id); err != nil {
		return err
	}
	announceArchiveChange(s.announcer, s.familyRepo, model.EntityTypeMethodFamily, id, model.ActionArchived)
	return nil
}

// RestoreMethodFamily 取消一个方法族的归档。
func (s *methodService) RestoreMethodFamily(id uint) error {
	if err := s.familyRepo.Restore(id); err != nil {
		return err
	}
	announceArchiveChange(s.announcer, s.familyRepo, model.EntityTypeMethodFamily, id, model.ActionRestored)
	return nil
}

// --- 基础方法 ---

// CreateBaseMethod 创建一个新的基础方法，方法族为必需关联。
func (s *methodService) CreateBaseMethod(input BaseMethodInput) (*model.BaseMethodIntermediate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	family, err := loadRelated(s.familyRepo, input.MethodFamilyID, "方法族")
	if err != nil {
		return nil, err
	}

	method := &model.BaseMethodSimple{
		EntityMeta:     model.NewEntityMeta(input.Keyword, input.Name),
		MethodFamilyID: family.ID,
	}
	method.RichDescription = input.RichDescription
	method.PlainDescription = input.PlainDescription
	if err := s.baseMethodRepo.Create(method); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeBaseMethod, method.ID, model.ActionCreated, method.Label())

	record := family.ToRecord()
	return method.ToIntermediate(&record)
}

// UpdateBaseMethod 更新一个已存在的基础方法。
func (s *methodService) UpdateBaseMethod(id uint, input BaseMethodInput) (*model.BaseMethodIntermediate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	method, err := s.baseMethodRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	family, err := loadRelated(s.familyRepo, input.MethodFamilyID, "方法族")
	if err != nil {
		return nil, err
	}

	applyCatalogInput(&method.EntityMeta, input.CatalogInput)
	method.MethodFamilyID = family.ID
	if err := s.baseMethodRepo.Update(method); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeBaseMethod, method.ID, model.ActionUpdated, method.Label())

	record := family.ToRecord()
	return method.ToIntermediate(&record)
}

// GetBaseMethod 返回一个基础方法的 Full 形态，内嵌其方法族。
func (s *methodService) GetBaseMethod(id uint) (*model.BaseMethodFull, error) {
	return s.hydrator.BaseMethodFull(id)
}

// ListBaseMethods 分页返回基础方法的 Intermediate 列表。
func (s *methodService) ListBaseMethods(includeArchived bool, page, pageSize int) ([]model.BaseMethodIntermediate, int64, error) {
	offset, limit := pageToOffset(page, pageSize)
	methods, total, err := s.baseMethodRepo.FindWithPagination(includeArchived, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	families, err := relatedRecords(s.familyRepo)
	if err != nil {
		return nil, 0, err
	}

	items := make([]model.BaseMethodIntermediate, 0, len(methods))
	for _, method := range methods {
		family, ok := families[method.MethodFamilyID]
		if !ok {
			return nil, 0, fmt.Errorf("基础方法 %d 引用的方法族 %d 不存在", method.ID, method.MethodFamilyID)
		}
		inter, err := method.ToIntermediate(&family)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *inter)
	}
	return items, total, nil
}

// BaseMethodRecords 返回供下拉列表使用的基础方法 Record 投影。
func (s *methodService) BaseMethodRecords() ([]model.Record, error) {
	return s.baseMethodRepo.FindRecords()
}

// ArchiveBaseMethod 归档一个基础方法。
func (s *methodService) ArchiveBaseMethod(id uint) error {
	if err := s.baseMethodRepo.Archive(id); err != nil {
		return err
	}
	announceArchiveChange[model.BaseMethodSimple](s.announcer, s.baseMethodRepo, model.EntityTypeBaseMethod, id, model.ActionArchived)
	return nil
}

// RestoreBaseMethod 取消一个基础方法的归档。
func (s *methodService) RestoreBaseMethod(id uint) error {
	if err := s.baseMethodRepo.Restore(id); err != nil {
		return err
	}
	announceArchiveChange[model.BaseMethodSimple](s.announcer, s.baseMethodRepo, model.EntityTypeBaseMethod, id, model.ActionRestored)
	return nil
}

// --- 完整方法 ---

// CreateFullMethod 创建一个新的完整方法。
// 基础方法为必需关联，三元组合修饰为可选关联。
func (s *methodService) CreateFullMethod(input FullMethodInput) (*model.FullMethodIntermediate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	baseMethod, err := loadRelated[model.BaseMethodSimple](s.baseMethodRepo, input.BaseMethodID, "基础方法")
	if err != nil {
		return nil, err
	}
	combinationRecord, err := s.resolveCombination(input.SpinStateElectronicStateMethodFamilyID)
	if err != nil {
		return nil, err
	}

	method := &model.FullMethodSimple{
		EntityMeta:                             model.NewEntityMeta(input.Keyword, input.Name),
		BaseMethodID:                           baseMethod.ID,
		SpinStateElectronicStateMethodFamilyID: input.SpinStateElectronicStateMethodFamilyID,
	}
	method.RichDescription = input.RichDescription
	method.PlainDescription = input.PlainDescription
	if err := s.fullMethodRepo.Create(method); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeFullMethod, method.ID, model.ActionCreated, method.Label())

	baseRecord := baseMethod.ToRecord()
	return method.ToIntermediate(&baseRecord, combinationRecord)
}

// UpdateFullMethod 更新一个已存在的完整方法。
func (s *methodService) UpdateFullMethod(id uint, input FullMethodInput) (*model.FullMethodIntermediate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	method, err := s.fullMethodRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	baseMethod, err := loadRelated[model.BaseMethodSimple](s.baseMethodRepo, input.BaseMethodID, "基础方法")
	if err != nil {
		return nil, err
	}
	combinationRecord, err := s.resolveCombination(input.SpinStateElectronicStateMethodFamilyID)
	if err != nil {
		return nil, err
	}

	applyCatalogInput(&method.EntityMeta, input.CatalogInput)
	method.BaseMethodID = baseMethod.ID
	method.SpinStateElectronicStateMethodFamilyID = input.SpinStateElectronicStateMethodFamilyID
	if err := s.fullMethodRepo.Update(method); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeFullMethod, method.ID, model.ActionUpdated, method.Label())

	baseRecord := baseMethod.ToRecord()
	return method.ToIntermediate(&baseRecord, combinationRecord)
}

// GetFullMethod 返回一个完整方法的 Full 形态，递归展开整个关联对象图。
func (s *methodService) GetFullMethod(id uint) (*model.FullMethodFull, error) {
	return s.hydrator.FullMethodFull(id)
}

// ListFullMethods 分页返回完整方法的 Intermediate 列表。
func (s *methodService) ListFullMethods(includeArchived bool, page, pageSize int) ([]model.FullMethodIntermediate, int64, error) {
	offset, limit := pageToOffset(page, pageSize)
	methods, total, err := s.fullMethodRepo.FindWithPagination(includeArchived, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	baseMethods, err := relatedRecords[model.BaseMethodSimple](s.baseMethodRepo)
	if err != nil {
		return nil, 0, err
	}
	combinations, err := relatedRecords(s.ssesmfRepo)
	if err != nil {
		return nil, 0, err
	}

	items := make([]model.FullMethodIntermediate, 0, len(methods))
	for _, method := range methods {
		base, ok := baseMethods[method.BaseMethodID]
		if !ok {
			return nil, 0, fmt.Errorf("完整方法 %d 引用的基础方法 %d 不存在", method.ID, method.BaseMethodID)
		}
		var combination *model.Record
		if method.SpinStateElectronicStateMethodFamilyID != nil {
			record, ok := combinations[*method.SpinStateElectronicStateMethodFamilyID]
			if !ok {
				return nil, 0, fmt.Errorf("完整方法 %d 引用的三元组合 %d 不存在", method.ID, *method.SpinStateElectronicStateMethodFamilyID)
			}
			combination = &record
		}
		inter, err := method.ToIntermediate(&base, combination)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *inter)
	}
	return items, total, nil
}

// FullMethodRecords 返回供下拉列表使用的完整方法 Record 投影。
func (s *methodService) FullMethodRecords() ([]model.Record, error) {
	return s.fullMethodRepo.FindRecords()
}

// ArchiveFullMethod 归档一个完整方法。
func (s *methodService) ArchiveFullMethod(id uint) error {
	if err := s.fullMethodRepo.Archive(id); err != nil {
		return err
	}
	announceArchiveChange(s.announcer, s.fullMethodRepo, model.EntityTypeFullMethod, id, model.ActionArchived)
	return nil
}

// RestoreFullMethod 取消一个完整方法的归档。
func (s *methodService) RestoreFullMethod(id uint) error {
	if err := s.fullMethodRepo.Restore(id); err != nil {
		return err
	}
	announceArchiveChange(s.announcer, s.fullMethodRepo, model.EntityTypeFullMethod, id, model.ActionRestored)
	return nil
}

// resolveCombination 校验可选的三元组合引用并返回其 Record 投影，
// id 为 nil 时直接返回 nil。
func (s *methodService) resolveCombination(id *uint) (*model.Record, error) {
	if id == nil {
		return nil, nil
	}
	combination, err := loadRelated(s.ssesmfRepo, *id, "自旋态-电子态-方法族组合")
	if err != nil {
		return nil, err
	}
	record := combination.ToRecord()
	return &record, nil
}

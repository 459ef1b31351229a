package service

import (
	"fmt"

	"qcmeta-go/internal/model"
	"qcmeta-go/internal/repository"
)

// StateService 接口定义了态目录（自旋态、电子态及其组合）的业务操作。
type StateService interface {
	// 自旋态
	CreateSpinState(input SpinStateInput) (*model.SpinState, error)
	UpdateSpinState(id uint, input SpinStateInput) (*model.SpinState, error)
	GetSpinState(id uint) (*model.SpinState, error)
	ListSpinStates(includeArchived bool, page, pageSize int) ([]model.SpinState, int64, error)
	SpinStateRecords() ([]model.Record, error)
	ArchiveSpinState(id uint) error
	RestoreSpinState(id uint) error

	// 电子态
	CreateElectronicState(input CatalogInput) (*model.ElectronicState, error)
	UpdateElectronicState(id uint, input CatalogInput) (*model.ElectronicState, error)
	GetElectronicState(id uint) (*model.ElectronicState, error)
	ListElectronicStates(includeArchived bool, page, pageSize int) ([]model.ElectronicState, int64, error)
	ElectronicStateRecords() ([]model.Record, error)
	ArchiveElectronicState(id uint) error
	RestoreElectronicState(id uint) error

	// 电子态-方法族组合
	CreateElectronicStateMethodFamily(input ElectronicStateMethodFamilyInput) (*model.ElectronicStateMethodFamilyIntermediate, error)
	UpdateElectronicStateMethodFamily(id uint, input ElectronicStateMethodFamilyInput) (*model.ElectronicStateMethodFamilyIntermediate, error)
	GetElectronicStateMethodFamily(id uint) (*model.ElectronicStateMethodFamilyFull, error)
	ListElectronicStateMethodFamilies(includeArchived bool, page, pageSize int) ([]model.ElectronicStateMethodFamilyIntermediate, int64, error)
	ElectronicStateMethodFamilyRecords() ([]model.Record, error)
	ArchiveElectronicStateMethodFamily(id uint) error
	RestoreElectronicStateMethodFamily(id uint) error

	// 自旋态-电子态-方法族三元组合
	CreateSpinStateElectronicStateMethodFamily(input SpinStateElectronicStateMethodFamilyInput) (*model.SpinStateElectronicStateMethodFamilyIntermediate, error)
	UpdateSpinStateElectronicStateMethodFamily(id uint, input SpinStateElectronicStateMethodFamilyInput) (*model.SpinStateElectronicStateMethodFamilyIntermediate, error)
	GetSpinStateElectronicStateMethodFamily(id uint) (*model.SpinStateElectronicStateMethodFamilyFull, error)
	ListSpinStateElectronicStateMethodFamilies(includeArchived bool, page, pageSize int) ([]model.SpinStateElectronicStateMethodFamilyIntermediate, int64, error)
	SpinStateElectronicStateMethodFamilyRecords() ([]model.Record, error)
	ArchiveSpinStateElectronicStateMethodFamily(id uint) error
	RestoreSpinStateElectronicStateMethodFamily(id uint) error
}

// stateService 是 StateService 接口的实现。
type stateService struct {
	spinStateRepo repository.CatalogRepository[model.SpinState]
	stateRepo     repository.CatalogRepository[model.ElectronicState]
	familyRepo    repository.CatalogRepository[model.MethodFamily]
	esmfRepo      repository.CatalogRepository[model.ElectronicStateMethodFamilySimple]
	ssesmfRepo    repository.CatalogRepository[model.SpinStateElectronicStateMethodFamilySimple]
	hydrator      *Hydrator
	announcer     announcer
}

// NewStateService 创建一个新的 StateService 实例。
func NewStateService(
	spinStateRepo repository.CatalogRepository[model.SpinState],
	stateRepo repository.CatalogRepository[model.ElectronicState],
	familyRepo repository.CatalogRepository[model.MethodFamily],
	esmfRepo repository.CatalogRepository[model.ElectronicStateMethodFamilySimple],
	ssesmfRepo repository.CatalogRepository[model.SpinStateElectronicStateMethodFamilySimple],
	hydrator *Hydrator,
	publisher IndexPublisher,
	notifier ChangeNotifier,
) StateService {
	return &stateService{
		spinStateRepo: spinStateRepo,
		stateRepo:     stateRepo,
		familyRepo:    familyRepo,
		esmfRepo:      esmfRepo,
		ssesmfRepo:    ssesmfRepo,
		hydrator:      hydrator,
		announcer:     announcer{publisher: publisher, notifier: notifier},
	}
}

// --- 自旋态 ---

// CreateSpinState 创建一个新的自旋态。
func (s *stateService) CreateSpinState(input SpinStateInput) (*model.SpinState, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.Multiplicity == 0 {
		return nil, fmt.Errorf("%w: 自旋多重度必须大于 0", ErrInvalidInput)
	}
	state := &model.SpinState{
		EntityMeta:   model.NewEntityMeta(input.Keyword, input.Name),
		Multiplicity: input.Multiplicity,
	}
	state.RichDescription = input.RichDescription
	state.PlainDescription = input.PlainDescription
	if err := s.spinStateRepo.Create(state); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeSpinState, state.ID, model.ActionCreated, state.Label())
	return state, nil
}

// UpdateSpinState 更新一个已存在的自旋态。
func (s *stateService) UpdateSpinState(id uint, input SpinStateInput) (*model.SpinState, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.Multiplicity == 0 {
		return nil, fmt.Errorf("%w: 自旋多重度必须大于 0", ErrInvalidInput)
	}
	state, err := s.spinStateRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	applyCatalogInput(&state.EntityMeta, input.CatalogInput)
	state.Multiplicity = input.Multiplicity
	if err := s.spinStateRepo.Update(state); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeSpinState, state.ID, model.ActionUpdated, state.Label())
	return state, nil
}

// GetSpinState 返回一个自旋态。自旋态没有关联引用，三种详细形态一致。
func (s *stateService) GetSpinState(id uint) (*model.SpinState, error) {
	return s.spinStateRepo.FindByID(id)
}

// ListSpinStates 分页返回自旋态列表。
func (s *stateService) ListSpinStates(includeArchived bool, page, pageSize int) ([]model.SpinState, int64, error) {
	offset, limit := pageToOffset(page, pageSize)
	return s.spinStateRepo.FindWithPagination(includeArchived, offset, limit)
}

// SpinStateRecords 返回供下拉列表使用的自旋态 Record 投影。
func (s *stateService) SpinStateRecords() ([]model.Record, error) {
	return s.spinStateRepo.FindRecords()
}

// ArchiveSpinState 归档一个自旋态。
func (s *stateService) ArchiveSpinState(id uint) error {
	if err := s.spinStateRepo.Archive(id); err != nil {
		return err
	}
	announceArchiveChange(s.announcer, s.spinStateRepo, model.EntityTypeSpinState, id, model.ActionArchived)
	return nil
}

// RestoreSpinState 取消一个自旋态的归档。
func (s *stateService) RestoreSpinState(id uint) error {
	if err := s.spinStateRepo.Restore(id); err != nil {
		return err
	}
	announceArchiveChange(s.announcer, s.spinStateRepo, model.EntityTypeSpinState, id, model.ActionRestored)
	return nil
}

// --- 电子态 ---

// CreateElectronicState 创建一个新的电子态。
func (s *stateService) CreateElectronicState(input CatalogInput) (*model.ElectronicState, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	state := &model.ElectronicState{
		EntityMeta: model.NewEntityMeta(input.Keyword, input.Name),
	}
	state.RichDescription = input.RichDescription
	state.PlainDescription = input.PlainDescription
	if err := s.stateRepo.Create(state); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeElectronicState, state.ID, model.ActionCreated, state.Label())
	return state, nil
}

// UpdateElectronicState 更新一个已存在的电子态。
func (s *stateService) UpdateElectronicState(id uint, input CatalogInput) (*model.ElectronicState, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	state, err := s.stateRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	applyCatalogInput(&state.EntityMeta, input)
	if err := s.stateRepo.Update(state); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeElectronicState, state.ID, model.ActionUpdated, state.Label())
	return state, nil
}

// GetElectronicState 返回一个电子态。
func (s *stateService) GetElectronicState(id uint) (*model.ElectronicState, error) {
	return s.stateRepo.FindByID(id)
}

// ListElectronicStates 分页返回电子态列表。
func (s *stateService) ListElectronicStates(includeArchived bool, page, pageSize int) ([]model.ElectronicState, int64, error) {
	offset, limit := pageToOffset(page, pageSize)
	return s.stateRepo.FindWithPagination(includeArchived, offset, limit)
}

// ElectronicStateRecords 返回供下拉列表使用的电子态 Record 投影。
func (s *stateService) ElectronicStateRecords() ([]model.Record, error) {
	return s.stateRepo.FindRecords()
}

// ArchiveElectronicState 归档一个电子态。
func (s *stateService) ArchiveElectronicState(id uint) error {
	if err := s.stateRepo.Archive(id); err != nil {
		return err
	}
	announceArchiveChange(s.announcer, s.stateRepo, model.EntityTypeElectronicState, id, model.ActionArchived)
	return nil
}

// RestoreElectronicState 取消一个电子态的归档。
func (s *stateService) RestoreElectronicState(id uint) error {
	if err := s.stateRepo.Restore(id); err != nil {
		return err
	}
	announceArchiveChange(s.announcer, s.stateRepo, model.EntityTypeElectronicState, id, model.ActionRestored)
	return nil
}

// --- 电子态-方法族组合 ---

// CreateElectronicStateMethodFamily 创建一个新的"电子态-方法族"组合。
// 电子态为必需关联，方法族为可选关联。
func (s *stateService) CreateElectronicStateMethodFamily(input ElectronicStateMethodFamilyInput) (*model.ElectronicStateMethodFamilyIntermediate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	state, err := loadRelated(s.stateRepo, input.ElectronicStateID, "电子态")
	if err != nil {
		return nil, err
	}
	familyRecord, err := s.resolveFamily(input.MethodFamilyID)
	if err != nil {
		return nil, err
	}

	combination := &model.ElectronicStateMethodFamilySimple{
		EntityMeta:        model.NewEntityMeta(input.Keyword, input.Name),
		ElectronicStateID: state.ID,
		MethodFamilyID:    input.MethodFamilyID,
	}
	combination.RichDescription = input.RichDescription
	combination.PlainDescription = input.PlainDescription
	if err := s.esmfRepo.Create(combination); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeElectronicStateMethodFamily, combination.ID, model.ActionCreated, combination.Label())

	stateRecord := state.ToRecord()
	return combination.ToIntermediate(&stateRecord, familyRecord)
}

// UpdateElectronicStateMethodFamily 更新一个已存在的"电子态-方法族"组合。
func (s *stateService) UpdateElectronicStateMethodFamily(id uint, input ElectronicStateMethodFamilyInput) (*model.ElectronicStateMethodFamilyIntermediate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	combination, err := s.esmfRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	state, err := loadRelated(s.stateRepo, input.ElectronicStateID, "电子态")
	if err != nil {
		return nil, err
	}
	familyRecord, err := s.resolveFamily(input.MethodFamilyID)
	if err != nil {
		return nil, err
	}

	applyCatalogInput(&combination.EntityMeta, input.CatalogInput)
	combination.ElectronicStateID = state.ID
	combination.MethodFamilyID = input.MethodFamilyID
	if err := s.esmfRepo.Update(combination); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeElectronicStateMethodFamily, combination.ID, model.ActionUpdated, combination.Label())

	stateRecord := state.ToRecord()
	return combination.ToIntermediate(&stateRecord, familyRecord)
}

// GetElectronicStateMethodFamily 返回一个组合的 Full 形态。
func (s *stateService) GetElectronicStateMethodFamily(id uint) (*model.ElectronicStateMethodFamilyFull, error) {
	return s.hydrator.ElectronicStateMethodFamilyFull(id)
}

// ListElectronicStateMethodFamilies 分页返回组合的 Intermediate 列表。
func (s *stateService) ListElectronicStateMethodFamilies(includeArchived bool, page, pageSize int) ([]model.ElectronicStateMethodFamilyIntermediate, int64, error) {
	offset, limit := pageToOffset(page, pageSize)
	combinations, total, err := s.esmfRepo.FindWithPagination(includeArchived, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	states, err := relatedRecords(s.stateRepo)
	if err != nil {
		return nil, 0, err
	}
	families, err := relatedRecords(s.familyRepo)
	if err != nil {
		return nil, 0, err
	}

	items := make([]model.ElectronicStateMethodFamilyIntermediate, 0, len(combinations))
	for _, combination := range combinations {
		state, ok := states[combination.ElectronicStateID]
		if !ok {
			return nil, 0, fmt.Errorf("组合 %d 引用的电子态 %d 不存在", combination.ID, combination.ElectronicStateID)
		}
		var family *model.Record
		if combination.MethodFamilyID != nil {
			record, ok := families[*combination.MethodFamilyID]
			if !ok {
				return nil, 0, fmt.Errorf("组合 %d 引用的方法族 %d 不存在", combination.ID, *combination.MethodFamilyID)
			}
			family = &record
		}
		inter, err := combination.ToIntermediate(&state, family)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *inter)
	}
	return items, total, nil
}

// ElectronicStateMethodFamilyRecords 返回供下拉列表使用的组合 Record 投影。
func (s *stateService) ElectronicStateMethodFamilyRecords() ([]model.Record, error) {
	return s.esmfRepo.FindRecords()
}

// ArchiveElectronicStateMethodFamily 归档一个组合。
func (s *stateService) ArchiveElectronicStateMethodFamily(id uint) error {
	if err := s.esmfRepo.Archive(id); err != nil {
		return err
	}
	announceArchiveChange(s.announcer, s.esmfRepo, model.EntityTypeElectronicStateMethodFamily, id, model.ActionArchived)
	return nil
}

// RestoreElectronicStateMethodFamily 取消一个组合的归档。
func (s *stateService) RestoreElectronicStateMethodFamily(id uint) error {
	if err := s.esmfRepo.Restore(id); err != nil {
		return err
	}
	announceArchiveChange(s.announcer, s.esmfRepo, model.EntityTypeElectronicStateMethodFamily, id, model.ActionRestored)
	return nil
}

// --- 自旋态-电子态-方法族三元组合 ---

// CreateSpinStateElectronicStateMethodFamily 创建一个新的三元组合，
// 自旋态与电子态-方法族组合都是必需关联。
func (s *stateService) CreateSpinStateElectronicStateMethodFamily(input SpinStateElectronicStateMethodFamilyInput) (*model.SpinStateElectronicStateMethodFamilyIntermediate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	spinState, err := loadRelated(s.spinStateRepo, input.SpinStateID, "自旋态")
	if err != nil {
		return nil, err
	}
	combination, err := loadRelated(s.esmfRepo, input.ElectronicStateMethodFamilyID, "电子态-方法族组合")
	if err != nil {
		return nil, err
	}

	triple := &model.SpinStateElectronicStateMethodFamilySimple{
		EntityMeta:                    model.NewEntityMeta(input.Keyword, input.Name),
		SpinStateID:                   spinState.ID,
		ElectronicStateMethodFamilyID: combination.ID,
	}
	triple.RichDescription = input.RichDescription
	triple.PlainDescription = input.PlainDescription
	if err := s.ssesmfRepo.Create(triple); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeSpinStateElectronicStateMethodFamily, triple.ID, model.ActionCreated, triple.Label())

	spinRecord := spinState.ToRecord()
	combinationRecord := combination.ToRecord()
	return triple.ToIntermediate(&spinRecord, &combinationRecord)
}

// UpdateSpinStateElectronicStateMethodFamily 更新一个已存在的三元组合。
func (s *stateService) UpdateSpinStateElectronicStateMethodFamily(id uint, input SpinStateElectronicStateMethodFamilyInput) (*model.SpinStateElectronicStateMethodFamilyIntermediate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	triple, err := s.ssesmfRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	spinState, err := loadRelated(s.spinStateRepo, input.SpinStateID, "自旋态")
	if err != nil {
		return nil, err
	}
	combination, err := loadRelated(s.esmfRepo, input.ElectronicStateMethodFamilyID, "电子态-方法族组合")
	if err != nil {
		return nil, err
	}

	applyCatalogInput(&triple.EntityMeta, input.CatalogInput)
	triple.SpinStateID = spinState.ID
	triple.ElectronicStateMethodFamilyID = combination.ID
	if err := s.ssesmfRepo.Update(triple); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeSpinStateElectronicStateMethodFamily, triple.ID, model.ActionUpdated, triple.Label())

	spinRecord := spinState.ToRecord()
	combinationRecord := combination.ToRecord()
	return triple.ToIntermediate(&spinRecord, &combinationRecord)
}

// GetSpinStateElectronicStateMethodFamily 返回一个三元组合的 Full 形态，
// 其中电子态-方法族组合也递归展开。
func (s *stateService) GetSpinStateElectronicStateMethodFamily(id uint) (*model.SpinStateElectronicStateMethodFamilyFull, error) {
	return s.hydrator.SpinStateElectronicStateMethodFamilyFull(id)
}

// ListSpinStateElectronicStateMethodFamilies 分页返回三元组合的 Intermediate 列表。
func (s *stateService) ListSpinStateElectronicStateMethodFamilies(includeArchived bool, page, pageSize int) ([]model.SpinStateElectronicStateMethodFamilyIntermediate, int64, error) {
	offset, limit := pageToOffset(page, pageSize)
	triples, total, err := s.ssesmfRepo.FindWithPagination(includeArchived, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	spinStates, err := relatedRecords(s.spinStateRepo)
	if err != nil {
		return nil, 0, err
	}
	combinations, err := relatedRecords(s.esmfRepo)
	if err != nil {
		return nil, 0, err
	}

	items := make([]model.SpinStateElectronicStateMethodFamilyIntermediate, 0, len(triples))
	for _, triple := range triples {
		spinState, ok := spinStates[triple.SpinStateID]
		if !ok {
			return nil, 0, fmt.Errorf("三元组合 %d 引用的自旋态 %d 不存在", triple.ID, triple.SpinStateID)
		}
		combination, ok := combinations[triple.ElectronicStateMethodFamilyID]
		if !ok {
			return nil, 0, fmt.Errorf("三元组合 %d 引用的电子态-方法族组合 %d 不存在", triple.ID, triple.ElectronicStateMethodFamilyID)
		}
		inter, err := triple.ToIntermediate(&spinState, &combination)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *inter)
	}
	return items, total, nil
}

// SpinStateElectronicStateMethodFamilyRecords 返回供下拉列表使用的三元组合 Record 投影。
func (s *stateService) SpinStateElectronicStateMethodFamilyRecords() ([]model.Record, error) {
	return s.ssesmfRepo.FindRecords()
}

// ArchiveSpinStateElectronicStateMethodFamily 归档一个三元组合。
func (s *stateService) ArchiveSpinStateElectronicStateMethodFamily(id uint) error {
	if err := s.ssesmfRepo.Archive(id); err != nil {
		return err
	}
	announceArchiveChange(s.announcer, s.ssesmfRepo, model.EntityTypeSpinStateElectronicStateMethodFamily, id, model.ActionArchived)
	return nil
}

// RestoreSpinStateElectronicStateMethodFamily 取消一个三元组合的归档。
func (s *stateService) RestoreSpinStateElectronicStateMethodFamily(id uint) error {
	if err := s.ssesmfRepo.Restore(id); err != nil {
		return err
	}
	announceArchiveChange(s.announcer, s.ssesmfRepo, model.EntityTypeSpinStateElectronicStateMethodFamily, id, model.ActionRestored)
	return nil
}

// resolveFamily 校验可选的方法族引用并返回其 Record 投影，id 为 nil 时直接返回 nil。
func (s *stateService) resolveFamily(id *uint) (*model.Record, error) {
	if id == nil {
		return nil, nil
	}
	family, err := loadRelated(s.familyRepo, *id, "方法族")
	if err != nil {
		return nil, err
	}
	record := family.ToRecord()
	return &record, nil
}

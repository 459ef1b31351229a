package service

import (
	"qcmeta-go/internal/model"
	"qcmeta-go/internal/repository"
)

// MoleculeService 接口定义了分子目录的业务操作。
type MoleculeService interface {
	Create(input MoleculeInput) (*model.Molecule, error)
	Update(id uint, input MoleculeInput) (*model.Molecule, error)
	Get(id uint) (*model.Molecule, error)
	List(includeArchived bool, page, pageSize int) ([]model.Molecule, int64, error)
	Records() ([]model.Record, error)
	Archive(id uint) error
	Restore(id uint) error
}

// moleculeService 是 MoleculeService 接口的实现。
type moleculeService struct {
	repo      repository.CatalogRepository[model.Molecule]
	announcer announcer
}

// NewMoleculeService 创建一个新的 MoleculeService 实例。
func NewMoleculeService(
	repo repository.CatalogRepository[model.Molecule],
	publisher IndexPublisher,
	notifier ChangeNotifier,
) MoleculeService {
	return &moleculeService{
		repo:      repo,
		announcer: announcer{publisher: publisher, notifier: notifier},
	}
}

// Create 创建一个新的分子。
func (s *moleculeService) Create(input MoleculeInput) (*model.Molecule, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	molecule := &model.Molecule{
		EntityMeta: model.NewEntityMeta(input.Keyword, input.Name),
		Formula:    input.Formula,
		Charge:     input.Charge,
	}
	molecule.RichDescription = input.RichDescription
	molecule.PlainDescription = input.PlainDescription
	if err := s.repo.Create(molecule); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeMolecule, molecule.ID, model.ActionCreated, molecule.Label())
	return molecule, nil
}

// Update 更新一个已存在的分子。
func (s *moleculeService) Update(id uint, input MoleculeInput) (*model.Molecule, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	molecule, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	applyCatalogInput(&molecule.EntityMeta, input.CatalogInput)
	molecule.Formula = input.Formula
	molecule.Charge = input.Charge
	if err := s.repo.Update(molecule); err != nil {
		return nil, err
	}
	s.announcer.announce(model.EntityTypeMolecule, molecule.ID, model.ActionUpdated, molecule.Label())
	return molecule, nil
}

// Get 返回一个分子。分子没有关联引用，三种详细形态一致。
func (s *moleculeService) Get(id uint) (*model.Molecule, error) {
	return s.repo.FindByID(id)
}

// List 分页返回分子列表。
func (s *moleculeService) List(includeArchived bool, page, pageSize int) ([]model.Molecule, int64, error) {
	offset, limit := pageToOffset(page, pageSize)
	return s.repo.FindWithPagination(includeArchived, offset, limit)
}

// Records 返回供下拉列表使用的分子 Record 投影。
func (s *moleculeService) Records() ([]model.Record, error) {
	return s.repo.FindRecords()
}

// Archive 归档一个分子。
func (s *moleculeService) Archive(id uint) error {
	if err := s.repo.Archive(id); err != nil {
		return err
	}
	announceArchiveChange(s.announcer, s.repo, model.EntityTypeMolecule, id, model.ActionArchived)
	return nil
}

// Restore 取消一个分子的归档。
func (s *moleculeService) Restore(id uint) error {
	if err := s.repo.Restore(id); err != nil {
		return err
	}
	announceArchiveChange(s.announcer, s.repo, model.EntityTypeMolecule, id, model.ActionRestored)
	return nil
}

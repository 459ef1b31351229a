package service

import (
	"fmt"

	"qcmeta-go/internal/model"
	"qcmeta-go/internal/repository"
)

// Hydrator 负责把扁平的外键形态还原成内嵌完整对象图的形态。
// 模型层的转换函数本身不做任何 I/O，关联数据全部由这里查出来再喂给它们。
type Hydrator struct {
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

// NewHydrator 创建一个新的 Hydrator 实例。
func NewHydrator(
	familyRepo repository.CatalogRepository[model.MethodFamily],
	spinStateRepo repository.CatalogRepository[model.SpinState],
	stateRepo repository.CatalogRepository[model.ElectronicState],
	moleculeRepo repository.CatalogRepository[model.Molecule],
	baseMethodRepo repository.BaseMethodRepository,
	esmfRepo repository.CatalogRepository[model.ElectronicStateMethodFamilySimple],
	ssesmfRepo repository.CatalogRepository[model.SpinStateElectronicStateMethodFamilySimple],
	fullMethodRepo repository.CatalogRepository[model.FullMethodSimple],
	experimentRepo repository.ExperimentRepository,
) *Hydrator {
	return &Hydrator{
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

// BaseMethodFull 加载基础方法并内嵌其方法族。
func (h *Hydrator) BaseMethodFull(id uint) (*model.BaseMethodFull, error) {
	simple, err := h.baseMethodRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return h.baseMethodFull(*simple)
}

func (h *Hydrator) baseMethodFull(simple model.BaseMethodSimple) (*model.BaseMethodFull, error) {
	family, err := h.familyRepo.FindByID(simple.MethodFamilyID)
	if err != nil {
		return nil, fmt.Errorf("加载方法族 %d 失败: %w", simple.MethodFamilyID, err)
	}
	return simple.ToFull(family)
}

// ElectronicStateMethodFamilyFull 加载"电子态-方法族"组合并内嵌其关联实体。
func (h *Hydrator) ElectronicStateMethodFamilyFull(id uint) (*model.ElectronicStateMethodFamilyFull, error) {
	simple, err := h.esmfRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return h.electronicStateMethodFamilyFull(*simple)
}

func (h *Hydrator) electronicStateMethodFamilyFull(simple model.ElectronicStateMethodFamilySimple) (*model.ElectronicStateMethodFamilyFull, error) {
	state, err := h.stateRepo.FindByID(simple.ElectronicStateID)
	if err != nil {
		return nil, fmt.Errorf("加载电子态 %d 失败: %w", simple.ElectronicStateID, err)
	}
	var family *model.MethodFamily
	if simple.MethodFamilyID != nil {
		family, err = h.familyRepo.FindByID(*simple.MethodFamilyID)
		if err != nil {
			return nil, fmt.Errorf("加载方法族 %d 失败: %w", *simple.MethodFamilyID, err)
		}
	}
	return simple.ToFull(state, family)
}

// SpinStateElectronicStateMethodFamilyFull 加载三元组合并递归内嵌其关联实体。
func (h *Hydrator) SpinStateElectronicStateMethodFamilyFull(id uint) (*model.SpinStateElectronicStateMethodFamilyFull, error) {
	simple, err := h.ssesmfRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return h.spinStateElectronicStateMethodFamilyFull(*simple)
}

func (h *Hydrator) spinStateElectronicStateMethodFamilyFull(simple model.SpinStateElectronicStateMethodFamilySimple) (*model.SpinStateElectronicStateMethodFamilyFull, error) {
	spinState, err := h.spinStateRepo.FindByID(simple.SpinStateID)
	if err != nil {
		return nil, fmt.Errorf("加载自旋态 %d 失败: %w", simple.SpinStateID, err)
	}
	combination, err := h.ElectronicStateMethodFamilyFull(simple.ElectronicStateMethodFamilyID)
	if err != nil {
		return nil, fmt.Errorf("加载电子态-方法族组合 %d 失败: %w", simple.ElectronicStateMethodFamilyID, err)
	}
	return simple.ToFull(spinState, combination)
}

// FullMethodFull 加载完整方法并递归内嵌整个关联对象图。
func (h *Hydrator) FullMethodFull(id uint) (*model.FullMethodFull, error) {
	simple, err := h.fullMethodRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return h.fullMethodFull(*simple)
}

func (h *Hydrator) fullMethodFull(simple model.FullMethodSimple) (*model.FullMethodFull, error) {
	baseMethod, err := h.BaseMethodFull(simple.BaseMethodID)
	if err != nil {
		return nil, fmt.Errorf("加载基础方法 %d 失败: %w", simple.BaseMethodID, err)
	}
	var combination *model.SpinStateElectronicStateMethodFamilyFull
	if simple.SpinStateElectronicStateMethodFamilyID != nil {
		combination, err = h.SpinStateElectronicStateMethodFamilyFull(*simple.SpinStateElectronicStateMethodFamilyID)
		if err != nil {
			return nil, fmt.Errorf("加载三元组合 %d 失败: %w", *simple.SpinStateElectronicStateMethodFamilyID, err)
		}
	}
	return simple.ToFull(baseMethod, combination)
}

// ExperimentFull 加载实验记录并递归内嵌分子和完整方法。
func (h *Hydrator) ExperimentFull(id uint) (*model.ExperimentFull, error) {
	simple, err := h.experimentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	molecule, err := h.moleculeRepo.FindByID(simple.MoleculeID)
	if err != nil {
		return nil, fmt.Errorf("加载分子 %d 失败: %w", simple.MoleculeID, err)
	}
	fullMethod, err := h.FullMethodFull(simple.FullMethodID)
	if err != nil {
		return nil, fmt.Errorf("加载完整方法 %d 失败: %w", simple.FullMethodID, err)
	}
	return model.NewExperimentFull(*simple, molecule, fullMethod)
}

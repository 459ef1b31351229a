// Package model 定义了目录实体的各种表示形态及其相互转换。
package model

// ExperimentSimple 表示一次计算实验（某分子用某完整方法计算的结果元数据）
// 的扁平形态。分子与完整方法都是必需关联。
type ExperimentSimple struct {
	EntityMeta   `gorm:"embedded"`
	MoleculeID   uint `gorm:"not null;index" json:"moleculeId"`
	FullMethodID uint `gorm:"not null;index" json:"fullMethodId"`
	// TotalEnergy 记录计算得到的总能量，计算未完成时为空。
	TotalEnergy *float64 `json:"totalEnergy"`
	// EnergyUnit 是 TotalEnergy 的单位，例如 "Hartree"。
	EnergyUnit string `gorm:"type:varchar(20)" json:"energyUnit"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (ExperimentSimple) TableName() string {
	return "experiments"
}

// ExperimentIntermediate 将关联实体内嵌为 Record 投影。
type ExperimentIntermediate struct {
	EntityMeta
	Molecule    Record   `json:"molecule"`
	FullMethod  Record   `json:"fullMethod"`
	TotalEnergy *float64 `json:"totalEnergy"`
	EnergyUnit  string   `json:"energyUnit"`
}

// ExperimentFull 内嵌完整的关联对象图，用于详情视图。
type ExperimentFull struct {
	EntityMeta
	Molecule    *Molecule       `json:"molecule"`
	FullMethod  *FullMethodFull `json:"fullMethod"`
	TotalEnergy *float64        `json:"totalEnergy"`
	EnergyUnit  string          `json:"energyUnit"`
}

// NewExperimentFull 用 Simple 形态和两个完整的关联实体构造 Full 形态。
// 任一必需参数为 nil 都返回 ErrNilRelation。
func NewExperimentFull(simple ExperimentSimple, molecule *Molecule, fullMethod *FullMethodFull) (*ExperimentFull, error) {
	if molecule == nil {
		return nil, nilRelation("molecule")
	}
	if fullMethod == nil {
		return nil, nilRelation("fullMethod")
	}
	return &ExperimentFull{
		EntityMeta:  simple.EntityMeta,
		Molecule:    molecule,
		FullMethod:  fullMethod,
		TotalEnergy: simple.TotalEnergy,
		EnergyUnit:  simple.EnergyUnit,
	}, nil
}

// ToIntermediate 由 Simple 升级为 Intermediate，两个 Record 均为必需参数。
func (s ExperimentSimple) ToIntermediate(molecule, fullMethod *Record) (*ExperimentIntermediate, error) {
	if molecule == nil {
		return nil, nilRelation("molecule")
	}
	if fullMethod == nil {
		return nil, nilRelation("fullMethod")
	}
	return &ExperimentIntermediate{
		EntityMeta:  s.EntityMeta,
		Molecule:    *molecule,
		FullMethod:  *fullMethod,
		TotalEnergy: s.TotalEnergy,
		EnergyUnit:  s.EnergyUnit,
	}, nil
}

// ToFull 由 Simple 升级为 Full，等价于 NewExperimentFull。
func (s ExperimentSimple) ToFull(molecule *Molecule, fullMethod *FullMethodFull) (*ExperimentFull, error) {
	return NewExperimentFull(s, molecule, fullMethod)
}

// ToSimple 退化为 Simple 形态。
func (i ExperimentIntermediate) ToSimple() ExperimentSimple {
	return ExperimentSimple{
		EntityMeta:   i.EntityMeta,
		MoleculeID:   i.Molecule.ID,
		FullMethodID: i.FullMethod.ID,
		TotalEnergy:  i.TotalEnergy,
		EnergyUnit:   i.EnergyUnit,
	}
}

// ToSimple 退化为 Simple 形态。
// Full 值只能经 NewExperimentFull 构造，必需关联保证非空。
func (f ExperimentFull) ToSimple() ExperimentSimple {
	return ExperimentSimple{
		EntityMeta:   f.EntityMeta,
		MoleculeID:   f.Molecule.ID,
		FullMethodID: f.FullMethod.ID,
		TotalEnergy:  f.TotalEnergy,
		EnergyUnit:   f.EnergyUnit,
	}
}

// ToIntermediate 由 Full 退化为 Intermediate，无需额外输入。
func (f ExperimentFull) ToIntermediate() ExperimentIntermediate {
	return ExperimentIntermediate{
		EntityMeta:  f.EntityMeta,
		Molecule:    f.Molecule.ToRecord(),
		FullMethod:  f.FullMethod.ToRecord(),
		TotalEnergy: f.TotalEnergy,
		EnergyUnit:  f.EnergyUnit,
	}
}

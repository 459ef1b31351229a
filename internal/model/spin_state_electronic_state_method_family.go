// Package model 定义了目录实体的各种表示形态及其相互转换。
package model

// SpinStateElectronicStateMethodFamilySimple 表示"自旋态-电子态-方法族"
// 三元组合的扁平形态。自旋态与电子态-方法族组合都是必需关联。
type SpinStateElectronicStateMethodFamilySimple struct {
	EntityMeta                    `gorm:"embedded"`
	SpinStateID                   uint `gorm:"not null;index" json:"spinStateId"`
	ElectronicStateMethodFamilyID uint `gorm:"not null;index" json:"electronicStateMethodFamilyId"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (SpinStateElectronicStateMethodFamilySimple) TableName() string {
	return "spin_state_electronic_state_method_families"
}

// SpinStateElectronicStateMethodFamilyIntermediate 将两个关联实体内嵌为 Record 投影。
type SpinStateElectronicStateMethodFamilyIntermediate struct {
	EntityMeta
	SpinState                   Record `json:"spinState"`
	ElectronicStateMethodFamily Record `json:"electronicStateMethodFamily"`
}

// SpinStateElectronicStateMethodFamilyFull 内嵌完整的关联实体，
// 其中电子态-方法族组合本身也是 Full 形态，递归展开整个对象图。
type SpinStateElectronicStateMethodFamilyFull struct {
	EntityMeta
	SpinState                   *SpinState                       `json:"spinState"`
	ElectronicStateMethodFamily *ElectronicStateMethodFamilyFull `json:"electronicStateMethodFamily"`
}

// NewSpinStateElectronicStateMethodFamilyFull 用 Simple 形态和两个完整的关联
// 实体构造 Full 形态。任一必需参数为 nil 都返回 ErrNilRelation。
func NewSpinStateElectronicStateMethodFamilyFull(
	simple SpinStateElectronicStateMethodFamilySimple,
	spinState *SpinState,
	combination *ElectronicStateMethodFamilyFull,
) (*SpinStateElectronicStateMethodFamilyFull, error) {
	if spinState == nil {
		return nil, nilRelation("spinState")
	}
	if combination == nil {
		return nil, nilRelation("electronicStateMethodFamily")
	}
	return &SpinStateElectronicStateMethodFamilyFull{
		EntityMeta:                  simple.EntityMeta,
		SpinState:                   spinState,
		ElectronicStateMethodFamily: combination,
	}, nil
}

// ToIntermediate 由 Simple 升级为 Intermediate，两个 Record 均为必需参数。
func (s SpinStateElectronicStateMethodFamilySimple) ToIntermediate(spinState, combination *Record) (*SpinStateElectronicStateMethodFamilyIntermediate, error) {
	if spinState == nil {
		return nil, nilRelation("spinState")
	}
	if combination == nil {
		return nil, nilRelation("electronicStateMethodFamily")
	}
	return &SpinStateElectronicStateMethodFamilyIntermediate{
		EntityMeta:                  s.EntityMeta,
		SpinState:                   *spinState,
		ElectronicStateMethodFamily: *combination,
	}, nil
}

// ToFull 由 Simple 升级为 Full。
func (s SpinStateElectronicStateMethodFamilySimple) ToFull(spinState *SpinState, combination *ElectronicStateMethodFamilyFull) (*SpinStateElectronicStateMethodFamilyFull, error) {
	return NewSpinStateElectronicStateMethodFamilyFull(s, spinState, combination)
}

// ToSimple 退化为 Simple 形态。
func (i SpinStateElectronicStateMethodFamilyIntermediate) ToSimple() SpinStateElectronicStateMethodFamilySimple {
	return SpinStateElectronicStateMethodFamilySimple{
		EntityMeta:                    i.EntityMeta,
		SpinStateID:                   i.SpinState.ID,
		ElectronicStateMethodFamilyID: i.ElectronicStateMethodFamily.ID,
	}
}

// ToSimple 退化为 Simple 形态。
// Full 值只能经 NewSpinStateElectronicStateMethodFamilyFull 构造，必需关联保证非空。
func (f SpinStateElectronicStateMethodFamilyFull) ToSimple() SpinStateElectronicStateMethodFamilySimple {
	return SpinStateElectronicStateMethodFamilySimple{
		EntityMeta:                    f.EntityMeta,
		SpinStateID:                   f.SpinState.ID,
		ElectronicStateMethodFamilyID: f.ElectronicStateMethodFamily.ID,
	}
}

// ToIntermediate 由 Full 退化为 Intermediate，无需额外输入。
func (f SpinStateElectronicStateMethodFamilyFull) ToIntermediate() SpinStateElectronicStateMethodFamilyIntermediate {
	return SpinStateElectronicStateMethodFamilyIntermediate{
		EntityMeta:                  f.EntityMeta,
		SpinState:                   f.SpinState.ToRecord(),
		ElectronicStateMethodFamily: f.ElectronicStateMethodFamily.ToRecord(),
	}
}

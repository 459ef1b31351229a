// Package model 定义了目录实体的各种表示形态及其相互转换。
package model

// FullMethodSimple 表示一个完整指定的计算方法（基础方法加上可选的
// 自旋态-电子态-方法族修饰）的扁平形态。基础方法是必需关联；
// 三元组合修饰在数据库中允许为空。
type FullMethodSimple struct {
	EntityMeta                             `gorm:"embedded"`
	BaseMethodID                           uint  `gorm:"not null;index" json:"baseMethodId"`
	SpinStateElectronicStateMethodFamilyID *uint `gorm:"index" json:"spinStateElectronicStateMethodFamilyId"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (FullMethodSimple) TableName() string {
	return "full_methods"
}

// FullMethodIntermediate 将关联实体内嵌为 Record 投影。
type FullMethodIntermediate struct {
	EntityMeta
	BaseMethod                           Record  `json:"baseMethod"`
	SpinStateElectronicStateMethodFamily *Record `json:"spinStateElectronicStateMethodFamily,omitempty"`
}

// FullMethodFull 递归内嵌完整的关联对象图：基础方法（含方法族），
// 以及可选的三元组合（含自旋态、电子态和方法族）。
type FullMethodFull struct {
	EntityMeta
	BaseMethod                           *BaseMethodFull                           `json:"baseMethod"`
	SpinStateElectronicStateMethodFamily *SpinStateElectronicStateMethodFamilyFull `json:"spinStateElectronicStateMethodFamily,omitempty"`
}

// NewFullMethodFull 用 Simple 形态和关联实体构造 Full 形态。
// baseMethod 为 nil 时返回 ErrNilRelation；combination 是可选关联。
func NewFullMethodFull(
	simple FullMethodSimple,
	baseMethod *BaseMethodFull,
	combination *SpinStateElectronicStateMethodFamilyFull,
) (*FullMethodFull, error) {
	if baseMethod == nil {
		return nil, nilRelation("baseMethod")
	}
	return &FullMethodFull{
		EntityMeta:                           simple.EntityMeta,
		BaseMethod:                           baseMethod,
		SpinStateElectronicStateMethodFamily: combination,
	}, nil
}

// ToIntermediate 由 Simple 升级为 Intermediate。
// baseMethod 为必需参数；combination 为可选参数。
func (s FullMethodSimple) ToIntermediate(baseMethod, combination *Record) (*FullMethodIntermediate, error) {
	if baseMethod == nil {
		return nil, nilRelation("baseMethod")
	}
	return &FullMethodIntermediate{
		EntityMeta:                           s.EntityMeta,
		BaseMethod:                           *baseMethod,
		SpinStateElectronicStateMethodFamily: combination,
	}, nil
}

// ToFull 由 Simple 升级为 Full，等价于 NewFullMethodFull。
func (s FullMethodSimple) ToFull(baseMethod *BaseMethodFull, combination *SpinStateElectronicStateMethodFamilyFull) (*FullMethodFull, error) {
	return NewFullMethodFull(s, baseMethod, combination)
}

// ToSimple 退化为 Simple 形态，可选关联通过空值传播收缩为可空外键。
func (i FullMethodIntermediate) ToSimple() FullMethodSimple {
	simple := FullMethodSimple{
		EntityMeta:   i.EntityMeta,
		BaseMethodID: i.BaseMethod.ID,
	}
	if i.SpinStateElectronicStateMethodFamily != nil {
		id := i.SpinStateElectronicStateMethodFamily.ID
		simple.SpinStateElectronicStateMethodFamilyID = &id
	}
	return simple
}

// ToSimple 退化为 Simple 形态。
// Full 值只能经 NewFullMethodFull 构造，必需关联 BaseMethod 保证非空。
func (f FullMethodFull) ToSimple() FullMethodSimple {
	simple := FullMethodSimple{
		EntityMeta:   f.EntityMeta,
		BaseMethodID: f.BaseMethod.ID,
	}
	if f.SpinStateElectronicStateMethodFamily != nil {
		id := f.SpinStateElectronicStateMethodFamily.ID
		simple.SpinStateElectronicStateMethodFamilyID = &id
	}
	return simple
}

// ToIntermediate 由 Full 退化为 Intermediate，无需额外输入。
func (f FullMethodFull) ToIntermediate() FullMethodIntermediate {
	inter := FullMethodIntermediate{
		EntityMeta: f.EntityMeta,
		BaseMethod: f.BaseMethod.ToRecord(),
	}
	if f.SpinStateElectronicStateMethodFamily != nil {
		record := f.SpinStateElectronicStateMethodFamily.ToRecord()
		inter.SpinStateElectronicStateMethodFamily = &record
	}
	return inter
}

// Package model 定义了目录实体的各种表示形态及其相互转换。
package model

// ElectronicStateMethodFamilySimple 表示"电子态-方法族"组合的扁平形态。
// 电子态是必需关联；方法族在数据库中允许为空，对应的外键使用指针以接受 NULL。
type ElectronicStateMethodFamilySimple struct {
	EntityMeta        `gorm:"embedded"`
	ElectronicStateID uint  `gorm:"not null;index" json:"electronicStateId"`
	MethodFamilyID    *uint `gorm:"index" json:"methodFamilyId"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (ElectronicStateMethodFamilySimple) TableName() string {
	return "electronic_state_method_families"
}

// ElectronicStateMethodFamilyIntermediate 将关联实体内嵌为 Record 投影。
// 可选的方法族以指针表示，缺省时为 nil。
type ElectronicStateMethodFamilyIntermediate struct {
	EntityMeta
	ElectronicState Record  `json:"electronicState"`
	MethodFamily    *Record `json:"methodFamily,omitempty"`
}

// ElectronicStateMethodFamilyFull 内嵌完整的关联实体。
type ElectronicStateMethodFamilyFull struct {
	EntityMeta
	ElectronicState *ElectronicState `json:"electronicState"`
	MethodFamily    *MethodFamily    `json:"methodFamily,omitempty"`
}

// NewElectronicStateMethodFamilyFull 用 Simple 形态和关联实体构造 Full 形态。
// state 为 nil 时返回 ErrNilRelation；family 是可选关联，允许为 nil。
func NewElectronicStateMethodFamilyFull(
	simple ElectronicStateMethodFamilySimple,
	state *ElectronicState,
	family *MethodFamily,
) (*ElectronicStateMethodFamilyFull, error) {
	if state == nil {
		return nil, nilRelation("electronicState")
	}
	return &ElectronicStateMethodFamilyFull{
		EntityMeta:      simple.EntityMeta,
		ElectronicState: state,
		MethodFamily:    family,
	}, nil
}

// ToIntermediate 由 Simple 升级为 Intermediate。
// state 为必需参数；family 为可选参数，nil 表示组合未绑定方法族。
func (s ElectronicStateMethodFamilySimple) ToIntermediate(state, family *Record) (*ElectronicStateMethodFamilyIntermediate, error) {
	if state == nil {
		return nil, nilRelation("electronicState")
	}
	return &ElectronicStateMethodFamilyIntermediate{
		EntityMeta:      s.EntityMeta,
		ElectronicState: *state,
		MethodFamily:    family,
	}, nil
}

// ToFull 由 Simple 升级为 Full，等价于 NewElectronicStateMethodFamilyFull。
func (s ElectronicStateMethodFamilySimple) ToFull(state *ElectronicState, family *MethodFamily) (*ElectronicStateMethodFamilyFull, error) {
	return NewElectronicStateMethodFamilyFull(s, state, family)
}

// ToSimple 退化为 Simple 形态，可选关联通过空值传播收缩为可空外键。
func (i ElectronicStateMethodFamilyIntermediate) ToSimple() ElectronicStateMethodFamilySimple {
	simple := ElectronicStateMethodFamilySimple{
		EntityMeta:        i.EntityMeta,
		ElectronicStateID: i.ElectronicState.ID,
	}
	if i.MethodFamily != nil {
		id := i.MethodFamily.ID
		simple.MethodFamilyID = &id
	}
	return simple
}

// ToSimple 退化为 Simple 形态。
// Full 值只能经 NewElectronicStateMethodFamilyFull 构造，必需关联 ElectronicState 保证非空。
func (f ElectronicStateMethodFamilyFull) ToSimple() ElectronicStateMethodFamilySimple {
	simple := ElectronicStateMethodFamilySimple{
		EntityMeta:        f.EntityMeta,
		ElectronicStateID: f.ElectronicState.ID,
	}
	if f.MethodFamily != nil {
		id := f.MethodFamily.ID
		simple.MethodFamilyID = &id
	}
	return simple
}

// ToIntermediate 由 Full 退化为 Intermediate，无需额外输入。
func (f ElectronicStateMethodFamilyFull) ToIntermediate() ElectronicStateMethodFamilyIntermediate {
	inter := ElectronicStateMethodFamilyIntermediate{
		EntityMeta:      f.EntityMeta,
		ElectronicState: f.ElectronicState.ToRecord(),
	}
	if f.MethodFamily != nil {
		record := f.MethodFamily.ToRecord()
		inter.MethodFamily = &record
	}
	return inter
}

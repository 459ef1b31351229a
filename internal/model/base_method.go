// Package model 定义了目录实体的各种表示形态及其相互转换。
package model

// BaseMethodSimple 是基础方法的扁平表示，所属方法族仅以外键 id 引用。
// 它同时也是 base_methods 表的 ORM 模型，用于创建/更新负载和持久化传输。
type BaseMethodSimple struct {
	EntityMeta `gorm:"embedded"`
	// MethodFamilyID 指向所属的方法族。该关联在数据库中是必需的。
	MethodFamilyID uint `gorm:"not null;index" json:"methodFamilyId"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (BaseMethodSimple) TableName() string {
	return "base_methods"
}

// BaseMethodIntermediate 将所属方法族内嵌为 Record 投影，
// 供只需要可读标签、不必加载完整对象图的调用方使用。
type BaseMethodIntermediate struct {
	EntityMeta
	MethodFamily Record `json:"methodFamily"`
}

// BaseMethodFull 内嵌完整的方法族对象，构成完全展开的对象图，
// 用于详情/编辑视图。
type BaseMethodFull struct {
	EntityMeta
	MethodFamily *MethodFamily `json:"methodFamily"`
}

// NewBaseMethodFull 用 Simple 形态和完整的方法族构造 Full 形态。
// family 为 nil 时返回 ErrNilRelation，不会产生部分构造的对象。
func NewBaseMethodFull(simple BaseMethodSimple, family *MethodFamily) (*BaseMethodFull, error) {
	if family == nil {
		return nil, nilRelation("methodFamily")
	}
	return &BaseMethodFull{EntityMeta: simple.EntityMeta, MethodFamily: family}, nil
}

// ToIntermediate 由 Simple 升级为 Intermediate。
// 转换层不具备取数能力，方法族的 Record 必须由调用方提供。
func (s BaseMethodSimple) ToIntermediate(family *Record) (*BaseMethodIntermediate, error) {
	if family == nil {
		return nil, nilRelation("methodFamily")
	}
	return &BaseMethodIntermediate{EntityMeta: s.EntityMeta, MethodFamily: *family}, nil
}

// ToFull 由 Simple 升级为 Full，等价于 NewBaseMethodFull。
func (s BaseMethodSimple) ToFull(family *MethodFamily) (*BaseMethodFull, error) {
	return NewBaseMethodFull(s, family)
}

// ToSimple 丢弃关联细节，退化为 Simple 形态。降级转换无需任何额外输入。
func (i BaseMethodIntermediate) ToSimple() BaseMethodSimple {
	return BaseMethodSimple{EntityMeta: i.EntityMeta, MethodFamilyID: i.MethodFamily.ID}
}

// ToSimple 丢弃关联细节，退化为 Simple 形态。
// Full 值只能经 NewBaseMethodFull 构造，必需关联保证非空。
func (f BaseMethodFull) ToSimple() BaseMethodSimple {
	return BaseMethodSimple{EntityMeta: f.EntityMeta, MethodFamilyID: f.MethodFamily.ID}
}

// ToIntermediate 由 Full 退化为 Intermediate，内嵌对象收缩为各自的 Record。
func (f BaseMethodFull) ToIntermediate() BaseMethodIntermediate {
	return BaseMethodIntermediate{EntityMeta: f.EntityMeta, MethodFamily: f.MethodFamily.ToRecord()}
}

// Package model 定义了目录实体的各种表示形态及其相互转换。
package model

// Molecule 表示一个被计算的分子。无关联引用，只保留一个结构体。
type Molecule struct {
	EntityMeta `gorm:"embedded"`
	// Formula 是分子的化学式，例如 "H2O"。
	Formula string `gorm:"type:varchar(100)" json:"formula"`
	// Charge 是分子的净电荷。
	Charge int `gorm:"not null;default:0" json:"charge"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Molecule) TableName() string {
	return "molecules"
}

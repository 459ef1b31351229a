// Package model 定义了目录实体的各种表示形态及其相互转换。
package model

// SpinState 表示电子自旋态，例如单重态、双重态、三重态。
// 无关联引用，三种详细形态内容一致，只保留一个结构体。
type SpinState struct {
	EntityMeta `gorm:"embedded"`
	// Multiplicity 是自旋多重度 2S+1，例如双重态为 2。
	Multiplicity uint `gorm:"not null;default:1" json:"multiplicity"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (SpinState) TableName() string {
	return "spin_states"
}

// Package model 定义了目录实体的各种表示形态及其相互转换。
package model

// ElectronicState 表示电子态，Keyword 通常存放光谱项符号（如 "X 1Sg+"）。
// 无关联引用，三种详细形态内容一致，只保留一个结构体。
type ElectronicState struct {
	EntityMeta `gorm:"embedded"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (ElectronicState) TableName() string {
	return "electronic_states"
}

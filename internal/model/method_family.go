// Package model 定义了目录实体的各种表示形态及其相互转换。
package model

// MethodFamily 表示一族计算方法，例如 Hartree-Fock、DFT 或耦合簇。
// 该实体没有关联引用，Simple/Intermediate/Full 三种形态内容完全一致，
// 因此只保留一个结构体，外加共享的 Record 投影。
type MethodFamily struct {
	EntityMeta `gorm:"embedded"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (MethodFamily) TableName() string {
	return "method_families"
}

package model

// 目录实体类型标识，用于索引任务、搜索文档和变更事件中区分实体族。
const (
	EntityTypeMethodFamily                         = "method_family"
	EntityTypeSpinState                            = "spin_state"
	EntityTypeElectronicState                      = "electronic_state"
	EntityTypeMolecule                             = "molecule"
	EntityTypeBaseMethod                           = "base_method"
	EntityTypeElectronicStateMethodFamily          = "electronic_state_method_family"
	EntityTypeSpinStateElectronicStateMethodFamily = "spin_state_electronic_state_method_family"
	EntityTypeFullMethod                           = "full_method"
	EntityTypeExperiment                           = "experiment"
)

// AllEntityTypes 列出全部可索引的目录实体类型，供整库重建索引时遍历。
var AllEntityTypes = []string{
	EntityTypeMethodFamily,
	EntityTypeSpinState,
	EntityTypeElectronicState,
	EntityTypeMolecule,
	EntityTypeBaseMethod,
	EntityTypeElectronicStateMethodFamily,
	EntityTypeSpinStateElectronicStateMethodFamily,
	EntityTypeFullMethod,
	EntityTypeExperiment,
}

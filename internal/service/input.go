// Package service 包含了应用的业务逻辑层。
package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput 标记由调用方输入导致的错误，处理器据此返回 400。
var ErrInvalidInput = errors.New("invalid input")

// CatalogInput 承载所有目录实体共有的六个属性中可由客户端设置的部分。
// ID 与时间戳由服务端管理，Archived 只能通过归档接口翻转。
type CatalogInput struct {
	Keyword          string `json:"keyword"`
	Name             string `json:"name"`
	RichDescription  string `json:"richDescription"`
	PlainDescription string `json:"plainDescription"`
}

// Validate 要求 Keyword 与 Name 至少有一个非空，否则条目没有可展示的标签。
func (in CatalogInput) Validate() error {
	if strings.TrimSpace(in.Keyword) == "" && strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: keyword 和 name 不能同时为空", ErrInvalidInput)
	}
	return nil
}

// SpinStateInput 是创建/更新自旋态的请求体。
type SpinStateInput struct {
	CatalogInput
	Multiplicity uint `json:"multiplicity"`
}

// MoleculeInput 是创建/更新分子的请求体。
type MoleculeInput struct {
	CatalogInput
	Formula string `json:"formula"`
	Charge  int    `json:"charge"`
}

// BaseMethodInput 是创建/更新基础方法的请求体，方法族为必需关联。
type BaseMethodInput struct {
	CatalogInput
	MethodFamilyID uint `json:"methodFamilyId"`
}

// ElectronicStateMethodFamilyInput 是创建/更新"电子态-方法族"组合的请求体。
// MethodFamilyID 为 nil 表示组合不绑定方法族。
type ElectronicStateMethodFamilyInput struct {
	CatalogInput
	ElectronicStateID uint  `json:"electronicStateId"`
	MethodFamilyID    *uint `json:"methodFamilyId"`
}

// SpinStateElectronicStateMethodFamilyInput 是创建/更新三元组合的请求体，
// 两个关联都是必需的。
type SpinStateElectronicStateMethodFamilyInput struct {
	CatalogInput
	SpinStateID                   uint `json:"spinStateId"`
	ElectronicStateMethodFamilyID uint `json:"electronicStateMethodFamilyId"`
}

// FullMethodInput 是创建/更新完整方法的请求体，三元组合修饰为可选关联。
type FullMethodInput struct {
	CatalogInput
	BaseMethodID                           uint  `json:"baseMethodId"`
	SpinStateElectronicStateMethodFamilyID *uint `json:"spinStateElectronicStateMethodFamilyId"`
}

// ExperimentInput 是创建/更新实验记录的请求体。
type ExperimentInput struct {
	CatalogInput
	MoleculeID   uint     `json:"moleculeId"`
	FullMethodID uint     `json:"fullMethodId"`
	TotalEnergy  *float64 `json:"totalEnergy"`
	EnergyUnit   string   `json:"energyUnit"`
}

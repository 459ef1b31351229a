// Package model 定义了目录实体的四种表示形态（Record/Simple/Intermediate/Full）
// 及其相互转换。转换层本身不做任何 I/O，升级转换所需的关联数据一律由调用方提供。
package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrNilRelation 表示升级转换时缺少必需的关联实体参数。
// 调用方应使用 errors.Is 判断，并将其翻译为用户可见的错误信息。
var ErrNilRelation = errors.New("required related entity is nil")

// nilRelation 返回一个带参数名的 ErrNilRelation 包装错误。
func nilRelation(param string) error {
	return fmt.Errorf("%w: %s", ErrNilRelation, param)
}

// EntityMeta 包含了所有目录实体共有的六类属性：
// 主键、两个标签字段、富文本/纯文本描述对、两个时间戳和软删除标记。
// 任何形态之间的转换都必须原样保留这些字段，只改变关联引用的形态。
type EntityMeta struct {
	// ID 是实体的唯一标识符，作为主键。
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	// Keyword 是实体的简写标签，例如方法缩写 "HF"、自旋态缩写 "D"。
	Keyword string `gorm:"type:varchar(100);index" json:"keyword"`
	// Name 是实体的完整显示名称，例如 "Hartree-Fock"。
	Name string `gorm:"type:varchar(255)" json:"name"`
	// RichDescription 存放带格式的描述（HTML 片段），由前端富文本编辑器生成。
	RichDescription string `gorm:"type:text" json:"richDescription"`
	// PlainDescription 是与 RichDescription 对应的纯文本版本，用于全文索引。
	PlainDescription string `gorm:"type:text" json:"plainDescription"`
	// CreatedDate 记录实体的创建时间，默认为构造时刻。
	CreatedDate time.Time `json:"createdDate"`
	// LastUpdatedDate 记录实体最后一次修改的时间，默认为构造时刻。
	LastUpdatedDate time.Time `json:"lastUpdatedDate"`
	// Archived 是软删除标记。记录永远不会被物理删除，只会被打上此标记。
	Archived bool `gorm:"not null;default:false;index" json:"archived"`
}

// NewEntityMeta 构造一组新的公共属性，两个时间戳均默认为当前时间。
func NewEntityMeta(keyword, name string) EntityMeta {
	now := time.Now()
	return EntityMeta{
		Keyword:         keyword,
		Name:            name,
		CreatedDate:     now,
		LastUpdatedDate: now,
	}
}

// Touch 将 LastUpdatedDate 更新为当前时间，应在每次修改实体后调用。
func (m *EntityMeta) Touch() {
	m.LastUpdatedDate = time.Now()
}

// IsArchived 报告实体是否已被软删除。
func (m EntityMeta) IsArchived() bool {
	return m.Archived
}

// Meta 返回公共属性的副本，供泛型代码以统一方式读取嵌入的元信息。
func (m EntityMeta) Meta() EntityMeta {
	return m
}

// Label 按统一策略生成显示标签：Name 为空时返回 Keyword，
// Keyword 为空时返回 Name，二者都存在时返回 "Name/Keyword"。
func (m EntityMeta) Label() string {
	return displayLabel(m.Name, m.Keyword)
}

func (m EntityMeta) String() string {
	return m.Label()
}

// ToRecord 生成最小化的 id+标签 投影。任何形态都可以调用，永不失败，
// 也不会修改源对象。
func (m EntityMeta) ToRecord() Record {
	return Record{ID: m.ID, Keyword: m.Keyword, Name: m.Name}
}

// Record 是实体的最小投影，仅含主键与两个标签字段。
// 所有实体族共用这一个类型，用于下拉列表和外键展示等只需引用的场景。
type Record struct {
	ID      uint   `json:"id"`
	Keyword string `json:"keyword"`
	Name    string `json:"name"`
}

// Label 与 EntityMeta 使用同一套显示标签策略。
func (r Record) Label() string {
	return displayLabel(r.Name, r.Keyword)
}

func (r Record) String() string {
	return r.Label()
}

// displayLabel 实现所有实体共享的标签拼接策略。
func displayLabel(name, keyword string) string {
	switch {
	case name == "":
		return keyword
	case keyword == "":
		return name
	default:
		return name + "/" + keyword
	}
}

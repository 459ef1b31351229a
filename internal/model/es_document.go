// Package model 定义了与数据库表对应的 Go 结构体。
package model

// SearchResponseDTO 定义了返回给前端的目录搜索结果结构。
type SearchResponseDTO struct {
	EntityType  string  `json:"entityType"`
	EntityID    uint    `json:"entityId"`
	Keyword     string  `json:"keyword"`
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Score       float64 `json:"score"` // 搜索得分
}

// CatalogDocument 定义了存储在 Elasticsearch 中的目录条目结构。
// 每个可搜索的目录实体在索引里对应一个文档，DocID 形如 "base_method:42"。
type CatalogDocument struct {
	DocID       string    `json:"doc_id"`
	EntityType  string    `json:"entity_type"`
	EntityID    uint      `json:"entity_id"`
	Keyword     string    `json:"keyword"`
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Description string    `json:"description"` // 纯文本描述，参与全文检索
	Archived    bool      `json:"archived"`
	IndexedAt   LocalTime `json:"indexed_at"`
}

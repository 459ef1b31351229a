// Package tasks defines the structure for tasks that are sent to Kafka.
package tasks

import "strconv"

// 索引任务动作常量。
const (
	ActionIndex  = "index"
	ActionDelete = "delete"
)

// IndexTask represents a catalog entity (re)indexing job.
// 实体在 MySQL 中创建/更新后，由服务层投递到 Kafka，
// 消费端负责把对应的目录文档写入或移出 Elasticsearch。
type IndexTask struct {
	EntityType string `json:"entity_type"`
	EntityID   uint   `json:"entity_id"`
	Action     string `json:"action"` // index 或 delete
}

// Key 返回任务的去重/计数键，形如 "base_method:42"。
func (t IndexTask) Key() string {
	return t.EntityType + ":" + strconv.FormatUint(uint64(t.EntityID), 10)
}

// Package model 包含了应用的数据模型定义。
package model

// 变更动作常量，用于 ChangeEvent.Action 和索引任务。
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionArchived = "archived"
	ActionRestored = "restored"
)

// ChangeEvent 表示一次目录实体变更，通过 WebSocket 推送给已连接的客户端，
// 供桌面端实时刷新列表。
type ChangeEvent struct {
	EntityType string    `json:"entityType"`
	EntityID   uint      `json:"entityId"`
	Action     string    `json:"action"`
	Label      string    `json:"label"`
	At         LocalTime `json:"at"`
}

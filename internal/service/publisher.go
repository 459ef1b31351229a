package service

import (
	"qcmeta-go/internal/model"
	"qcmeta-go/pkg/kafka"
	"qcmeta-go/pkg/log"
	"qcmeta-go/pkg/tasks"
)

// IndexPublisher 把索引任务投递到消息队列。
// 用接口隔离出来是为了让服务层的测试不依赖真实的 Kafka。
type IndexPublisher interface {
	PublishIndexTask(task tasks.IndexTask)
}

// ChangeNotifier 把目录变更事件推送给在线客户端。
type ChangeNotifier interface {
	NotifyChange(event model.ChangeEvent)
}

// kafkaIndexPublisher 通过全局 Kafka 生产者投递索引任务。
// 投递失败只记录日志：搜索索引是最终一致的，丢失的任务可以通过
// 整库重建索引补回，不应让一次写操作因此失败。
type kafkaIndexPublisher struct{}

// NewKafkaIndexPublisher 创建基于 Kafka 的索引任务发布器。
func NewKafkaIndexPublisher() IndexPublisher {
	return kafkaIndexPublisher{}
}

func (kafkaIndexPublisher) PublishIndexTask(task tasks.IndexTask) {
	if err := kafka.ProduceIndexTask(task); err != nil {
		log.Errorf("投递索引任务失败: %s, error: %v", task.Key(), err)
	}
}

// NoopIndexPublisher 丢弃全部索引任务，供测试和 CLI 场景使用。
type NoopIndexPublisher struct{}

func (NoopIndexPublisher) PublishIndexTask(tasks.IndexTask) {}

// NoopChangeNotifier 丢弃全部变更事件，供测试和 CLI 场景使用。
type NoopChangeNotifier struct{}

func (NoopChangeNotifier) NotifyChange(model.ChangeEvent) {}

// announcer 把"发索引任务 + 发变更事件"这对总是同时出现的动作收拢到一处。
type announcer struct {
	publisher IndexPublisher
	notifier  ChangeNotifier
}

// announce 在实体变更后发布索引任务和变更事件。
// 归档的实体从搜索索引中移除，其余动作都重新索引。
func (a announcer) announce(entityType string, entityID uint, action, label string) {
	indexAction := tasks.ActionIndex
	if action == model.ActionArchived {
		indexAction = tasks.ActionDelete
	}
	a.publisher.PublishIndexTask(tasks.IndexTask{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     indexAction,
	})
	a.notifier.NotifyChange(model.ChangeEvent{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Label:      label,
		At:         model.NowLocalTime(),
	})
}

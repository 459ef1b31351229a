// Package kafka 提供了与 Kafka 消息队列交互的功能。
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"qcmeta-go/internal/config"
	"qcmeta-go/pkg/database"
	"qcmeta-go/pkg/log"
	"qcmeta-go/pkg/tasks"
)

// IndexTaskProcessor defines the interface for any service that can process
// an index task. This decouples the Kafka consumer from the concrete
// pipeline implementation.
type IndexTaskProcessor interface {
	Process(ctx context.Context, task tasks.IndexTask) error
}

var producer *kafka.Writer

// InitProducer 初始化 Kafka 生产者。
func InitProducer(cfg config.KafkaConfig) {
	producer = &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka 生产者初始化成功")
}

// ProduceIndexTask 发送一个目录索引任务到 Kafka。
// 使用任务键作为消息 key，保证同一实体的任务落入同一分区、按序消费。
func ProduceIndexTask(task tasks.IndexTask) error {
	taskBytes, err := json.Marshal(task)
	if err != nil {
		return err
	}

	return producer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(task.Key()),
			Value: taskBytes,
		},
	)
}

// StartConsumer 启动一个 Kafka 消费者来处理索引任务。
// 阻塞运行直到 ctx 被取消，取消后提交完当前进度并关闭 reader 返回。
func StartConsumer(ctx context.Context, cfg config.KafkaConfig, processor IndexTaskProcessor) {
	groupID := cfg.GroupID
	if groupID == "" {
		groupID = "qcmeta-go-indexer"
	}
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.Brokers},
		Topic:    cfg.Topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})

	log.Infof("Kafka 消费者已启动，正在监听主题 '%s'", cfg.Topic)

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Kafka 消费者收到停机信号，停止消费")
				break
			}
			log.Error("从 Kafka 读取消息失败", err)
			break // 退出循环，可能需要重启策略
		}

		var task tasks.IndexTask
		if err := json.Unmarshal(m.Value, &task); err != nil {
			log.Errorf("无法解析 Kafka 消息: %v, value: %s", err, string(m.Value))
			// 消息格式错误，直接提交，避免阻塞队列
			if err := r.CommitMessages(ctx, m); err != nil {
				log.Errorf("提交错误消息失败: %v", err)
			}
			continue
		}

		log.Infof("开始处理索引任务: %s, action=%s", task.Key(), task.Action)
		if err := processor.Process(ctx, task); err != nil {
			log.Errorf("处理索引任务失败: %s, Error: %v", task.Key(), err)
			// 使用 Redis 计数失败次数，达到阈值后提交 offset 终止重试
			attemptsKey := fmt.Sprintf("kafka:attempts:%s", task.Key())
			attempts, incErr := database.RDB.Incr(ctx, attemptsKey).Result()
			if incErr != nil {
				// Redis 异常时保守处理：不提交 offset，让 Kafka 重试
				continue
			}
			_ = database.RDB.Expire(ctx, attemptsKey, 24*time.Hour).Err()
			if attempts >= 3 {
				log.Errorf("索引任务多次失败(>=3)，提交 offset 终止重试: %s", task.Key())
				if err := r.CommitMessages(ctx, m); err != nil {
					log.Errorf("提交 Kafka 消息 offset 失败: %v", err)
				}
			}
			// attempts < 3 时不提交 offset，让 Kafka 自动重试
		} else {
			log.Infof("索引任务处理成功: %s", task.Key())
			// 清理失败计数，任务处理成功后手动提交 offset
			_ = database.RDB.Del(ctx, fmt.Sprintf("kafka:attempts:%s", task.Key())).Err()
			if err := r.CommitMessages(ctx, m); err != nil {
				log.Errorf("提交 Kafka 消息 offset 失败: %v", err)
			}
		}
	}

	if err := r.Close(); err != nil {
		log.Errorf("关闭 Kafka 消费者失败: %v", err)
	}
}

package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"qcmeta-go/internal/config"
	"qcmeta-go/pkg/log"
	"qcmeta-go/pkg/tasks"
)

type noopProcessor struct{}

func (noopProcessor) Process(ctx context.Context, task tasks.IndexTask) error { return nil }

// 消费者必须响应 context 取消并退出，否则服务无法优雅停机。
func TestStartConsumerStopsOnContextCancel(t *testing.T) {
	log.Init("error", "console", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		StartConsumer(ctx, config.KafkaConfig{
			Brokers: "127.0.0.1:1",
			Topic:   "catalog-index-tasks-test",
		}, noopProcessor{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		require.Fail(t, "consumer did not stop after context cancellation")
	}
}

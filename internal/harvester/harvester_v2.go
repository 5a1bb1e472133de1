// Harvester version 2
// Giống v1 nhưng không ghi trực tiếp vào database: kết quả được đẩy vào
// Kafka topic, consumer riêng (cmd/consumer) chịu trách nhiệm upsert.

package harvester

import (
	"context"
	"time"

	"github.com/thep200/github-harvester/cfg"
	githubapi "github.com/thep200/github-harvester/internal/github_api"
	kafkapkg "github.com/thep200/github-harvester/pkg/kafka"
	"github.com/thep200/github-harvester/pkg/log"
)

type HarvesterV2 struct {
	Logger   log.Logger
	Config   *cfg.Config
	producer *kafkapkg.Producer
	engine   *engine
}

func NewHarvesterV2(logger log.Logger, config *cfg.Config) (*HarvesterV2, error) {
	caller := githubapi.NewCaller(logger, config)
	fetcher := NewPageFetcher(logger, config, caller, RetryPolicyFromConfig(config))
	collector := NewChunkCollector(logger, config, fetcher)
	producer := kafkapkg.NewProducer(config, logger, config.Kafka.Producer.TopicRepo)

	return &HarvesterV2{
		Logger:   logger,
		Config:   config,
		producer: producer,
		engine: &engine{
			Logger:    logger,
			Config:    config,
			collector: collector,
		},
	}, nil
}

func (h *HarvesterV2) Harvest() bool {
	ctx := context.Background()
	startTime := time.Now()
	h.Logger.Info(ctx, "Bắt đầu harvest repository GitHub (publish qua Kafka) vào %s", startTime.Format(time.RFC3339))

	defer func() {
		if err := h.producer.Close(); err != nil {
			h.Logger.Warn(ctx, "Failed to close kafka producer: %v", err)
		}
	}()

	records := h.engine.run(ctx)
	if len(records) == 0 {
		h.Logger.Info(ctx, "No repositories to publish")
		return true
	}

	published := 0
	for _, msg := range records {
		if err := h.producer.Publish(ctx, "repo", msg); err != nil {
			h.Logger.Error(ctx, "Failed to publish repository %s after %d published: %v", msg.ID, published, err)
			return false
		}
		published++
	}

	h.Logger.Info(ctx, "==== KẾT QUẢ HARVEST V2 ====")
	h.Logger.Info(ctx, "Thời gian thực hiện: %v", time.Since(startTime))
	h.Logger.Info(ctx, "Tổng số repository đã publish: %d", published)
	return true
}

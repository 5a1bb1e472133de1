// Consumer đọc các repository đã harvest từ Kafka và upsert theo batch vào
// Postgres. Dùng cặp với harvester v2.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thep200/github-harvester/cfg"
	"github.com/thep200/github-harvester/internal/model"
	"github.com/thep200/github-harvester/pkg/db"
	"github.com/thep200/github-harvester/pkg/kafka"
	"github.com/thep200/github-harvester/pkg/log"
)

func main() {
	logger, _ := log.NewCslLogger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration: %v", err)
		os.Exit(1)
	}

	// Setup database
	pg, _ := db.NewPostgres(config)
	repoModel, _ := model.NewRepo(config, logger, pg)
	if err := pg.Migrate(repoModel); err != nil {
		logger.Error(ctx, "Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	startRepoConsumer(ctx, config, logger, repoModel)

	<-sigCh
	logger.Info(ctx, "Received shutdown signal, gracefully shutting down...")
	cancel()
}

func startRepoConsumer(ctx context.Context, config *cfg.Config, logger log.Logger, repoModel *model.Repo) {
	consumer := kafka.NewConsumer(config, logger, config.Kafka.Producer.TopicRepo, "repo-consumer-group")

	batchSize := 100
	batchTimeout := 5 * time.Second
	messages := make(chan model.RepoMessage, batchSize*2)

	// Batch processor
	go processBatchedRepos(ctx, messages, batchSize, batchTimeout, logger, repoModel)

	go func() {
		err := consumer.Start(ctx, func(data []byte) error {
			var repoMsg model.RepoMessage
			if err := json.Unmarshal(data, &repoMsg); err != nil {
				return fmt.Errorf("failed to unmarshal repo message: %w", err)
			}

			select {
			case messages <- repoMsg:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})
		if err != nil {
			logger.Error(ctx, "Repo consumer error: %v", err)
		}
	}()

	logger.Info(ctx, "Repository consumer started successfully")
}

// Gom message thành batch theo kích thước hoặc timeout rồi upsert một lần
func processBatchedRepos(ctx context.Context, messages <-chan model.RepoMessage, batchSize int,
	batchTimeout time.Duration, logger log.Logger, repoModel *model.Repo) {

	var batch []model.RepoMessage
	timer := time.NewTimer(batchTimeout)

	for {
		select {
		case <-ctx.Done():
			// Xử lý nốt các message còn lại trước khi thoát
			if len(batch) > 0 {
				processSingleBatch(ctx, batch, logger, repoModel)
			}
			return

		case msg := <-messages:
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processSingleBatch(ctx, batch, logger, repoModel)
				batch = nil
				timer.Reset(batchTimeout)
			}

		case <-timer.C:
			if len(batch) > 0 {
				processSingleBatch(ctx, batch, logger, repoModel)
				batch = nil
			}
			timer.Reset(batchTimeout)
		}
	}
}

func processSingleBatch(ctx context.Context, batch []model.RepoMessage, logger log.Logger, repoModel *model.Repo) {
	if len(batch) == 0 {
		return
	}

	logger.Info(ctx, "Processing batch of %d repositories", len(batch))

	if err := repoModel.UpsertBatch(ctx, batch); err != nil {
		logger.Error(ctx, "Failed to save batch of repositories: %v", err)
	}
}

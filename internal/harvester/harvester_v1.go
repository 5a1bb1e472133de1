// Harvester version 1
// Thu thập tuần tự từng chunk rồi ghi thẳng toàn bộ kết quả vào Postgres
// bằng một bulk upsert duy nhất.

package harvester

import (
	"context"
	"time"

	"github.com/thep200/github-harvester/cfg"
	githubapi "github.com/thep200/github-harvester/internal/github_api"
	"github.com/thep200/github-harvester/internal/model"
	"github.com/thep200/github-harvester/pkg/db"
	"github.com/thep200/github-harvester/pkg/log"
)

type HarvesterV1 struct {
	Logger   log.Logger
	Config   *cfg.Config
	Postgres *db.Postgres
	RepoMd   *model.Repo
	engine   *engine
}

func NewHarvesterV1(logger log.Logger, config *cfg.Config, pg *db.Postgres) (*HarvesterV1, error) {
	repoMd, err := model.NewRepo(config, logger, pg)
	if err != nil {
		return nil, err
	}

	caller := githubapi.NewCaller(logger, config)
	fetcher := NewPageFetcher(logger, config, caller, RetryPolicyFromConfig(config))
	collector := NewChunkCollector(logger, config, fetcher)

	return &HarvesterV1{
		Logger:   logger,
		Config:   config,
		Postgres: pg,
		RepoMd:   repoMd,
		engine: &engine{
			Logger:    logger,
			Config:    config,
			collector: collector,
		},
	}, nil
}

func (h *HarvesterV1) Harvest() bool {
	ctx := context.Background()
	startTime := time.Now()
	h.Logger.Info(ctx, "Bắt đầu harvest repository GitHub vào %s", startTime.Format(time.RFC3339))

	records := h.engine.run(ctx)

	// Lỗi ở tầng persistence là lỗi dừng-run: transaction đã rollback, không
	// còn dòng nào của batch hỏng nằm lại trong database, và dữ liệu trong
	// memory không được tự động thử ghi lại
	if err := h.RepoMd.UpsertBatch(ctx, records); err != nil {
		h.Logger.Error(ctx, "Database error, harvested data was not stored: %v", err)
		return false
	}

	h.Logger.Info(ctx, "==== KẾT QUẢ HARVEST ====")
	h.Logger.Info(ctx, "Thời gian thực hiện: %v", time.Since(startTime))
	h.Logger.Info(ctx, "Tổng số repository đã lưu: %d", len(records))
	return true
}

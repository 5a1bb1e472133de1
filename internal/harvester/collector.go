package harvester

import (
	"context"

	"github.com/thep200/github-harvester/cfg"
	githubapi "github.com/thep200/github-harvester/internal/github_api"
	"github.com/thep200/github-harvester/internal/model"
	"github.com/thep200/github-harvester/pkg/log"
)

// ChunkResult là kết quả đã dedup của một chunk. Order giữ thứ tự id theo lần
// gặp đầu tiên để tầng trên có thể cắt bớt mà vẫn ưu tiên record phát hiện
// sớm nhất.
type ChunkResult struct {
	Records map[string]model.RepoMessage
	Order   []string
	Budget  *githubapi.RateBudget
}

// ChunkCollector chạy PageFetcher với cursor tiến dần qua tất cả các trang
// của một chunk query, dedup theo id trong phạm vi chunk.
type ChunkCollector struct {
	Logger  log.Logger
	Config  *cfg.Config
	fetcher *PageFetcher
}

func NewChunkCollector(logger log.Logger, config *cfg.Config, fetcher *PageFetcher) *ChunkCollector {
	return &ChunkCollector{
		Logger:  logger,
		Config:  config,
		fetcher: fetcher,
	}
}

// Collect thu thập cho tới khi hết trang, đủ ChunkLimit id duy nhất, hoặc
// fetcher báo chunk không thể tiếp tục. Trong trường hợp cuối, những trang đã
// thu thập được vẫn giữ lại. Id trùng giữa các trang lấy giá trị của trang
// sau (thứ tự kết quả phía server không ổn định khi dữ liệu thay đổi giữa
// hai trang).
func (c *ChunkCollector) Collect(ctx context.Context, w Window) *ChunkResult {
	searchQuery := w.SearchQuery()
	limit := c.Config.Harvester.ChunkLimit
	if limit <= 0 {
		limit = 1000
	}

	result := &ChunkResult{
		Records: make(map[string]model.RepoMessage),
	}

	c.Logger.Info(ctx, "--- Starting new chunk for query: %q ---", searchQuery)

	var after *string
	hasNext := true

	for hasNext && len(result.Records) < limit {
		page, err := c.fetcher.Fetch(ctx, searchQuery, after)
		if err != nil {
			c.Logger.Warn(ctx, "Chunk %q stopped early: %v. Keeping %d collected records", searchQuery, err, len(result.Records))
			break
		}

		for _, node := range page.Nodes {
			if _, seen := result.Records[node.ID]; !seen {
				if len(result.Records) >= limit {
					break
				}
				result.Order = append(result.Order, node.ID)
			}
			result.Records[node.ID] = model.RepoMessage{
				ID:             node.ID,
				Name:           node.NameWithOwner,
				StargazerCount: node.StargazerCount,
			}
		}

		hasNext = page.HasNextPage
		after = page.EndCursor
		if hasNext && after == nil {
			// Server báo còn trang nhưng không đưa cursor, không có cách
			// nào đi tiếp
			hasNext = false
		}
		if page.Budget != nil {
			result.Budget = page.Budget
		}

		c.Logger.Debug(ctx, "Collected %d unique records for this chunk so far", len(result.Records))
	}

	if result.Budget != nil {
		c.Logger.Info(ctx, "--- Finished chunk. Collected %d unique repos. Rate limit at %d ---", len(result.Records), result.Budget.Remaining)
	} else {
		c.Logger.Info(ctx, "--- Finished chunk. Collected %d unique repos ---", len(result.Records))
	}

	return result
}

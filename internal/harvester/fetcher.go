package harvester

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thep200/github-harvester/cfg"
	githubapi "github.com/thep200/github-harvester/internal/github_api"
	"github.com/thep200/github-harvester/internal/limiter"
	"github.com/thep200/github-harvester/pkg/log"
)

// PageFetcher lấy một trang kết quả cho một chunk query, che đi lỗi mạng tạm
// thời bằng retry policy. Lỗi trả về từ Fetch luôn là lỗi dừng-chunk.
type PageFetcher struct {
	Logger      log.Logger
	Config      *cfg.Config
	caller      *githubapi.Caller
	rateLimiter *limiter.RateLimiter
	retry       RetryPolicy

	// sleep được tách ra để test không phải chờ thật
	sleep func(time.Duration)
}

func NewPageFetcher(logger log.Logger, config *cfg.Config, caller *githubapi.Caller, retry RetryPolicy) *PageFetcher {
	return &PageFetcher{
		Logger:      logger,
		Config:      config,
		caller:      caller,
		rateLimiter: limiter.NewRateLimiter(config.GithubApi.RequestsPerSecond),
		retry:       retry,
		sleep:       time.Sleep,
	}
}

// Fetch gửi một request phân trang cho searchQuery với cursor tùy chọn.
// Lỗi mạng, timeout, non-2xx được coi là tạm thời: ngủ theo policy rồi gửi
// lại đúng request đó. Response có danh sách lỗi nhưng vẫn còn data thì chỉ
// cảnh báo và dùng phần data có được.
func (f *PageFetcher) Fetch(ctx context.Context, searchQuery string, after *string) (*githubapi.SearchPage, error) {
	attempts := 0
	throttleDelay := time.Duration(f.Config.GithubApi.ThrottleDelay) * time.Millisecond

	for {
		f.rateLimiter.WaitUntilAllowed(throttleDelay)

		page, err := f.caller.Call(ctx, searchQuery, after)
		if err == nil {
			f.report(ctx, searchQuery, page)
			return page, nil
		}

		// Response không có data sử dụng được thì không retry, chunk phải
		// dừng và giữ lại những gì đã thu thập
		if errors.Is(err, githubapi.ErrNoUsableData) {
			return nil, err
		}

		attempts++
		if f.retry.Exhausted(attempts) {
			return nil, fmt.Errorf("gave up after %d attempts: %w", attempts, err)
		}

		f.Logger.Warn(ctx, "Error fetching data for query %q: %v. Retrying in %v...", searchQuery, err, f.retry.Delay)
		f.sleep(f.retry.Delay)
	}
}

func (f *PageFetcher) report(ctx context.Context, searchQuery string, page *githubapi.SearchPage) {
	for _, gqlErr := range page.PartialErrors {
		f.Logger.Warn(ctx, "GraphQL error for query %q: %s (continuing with partial data)", searchQuery, gqlErr.Message)
	}

	if page.Budget != nil && page.Budget.Remaining < f.Config.GithubApi.RateBudgetFloor {
		f.Logger.Warn(ctx, "Rate budget low: %d requests remaining, resets at %s",
			page.Budget.Remaining, page.Budget.ResetAt.Format(time.RFC3339))
	}
}

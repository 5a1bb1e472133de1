package harvester

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thep200/github-harvester/cfg"
	githubapi "github.com/thep200/github-harvester/internal/github_api"
	"github.com/thep200/github-harvester/internal/model"
)

func newTestEngine(t *testing.T, url string, mutate func(*cfg.Config)) *engine {
	t.Helper()
	config := testConfig(t, url)
	if mutate != nil {
		mutate(config)
	}
	logger := testLogger(t)
	caller := githubapi.NewCaller(logger, config)
	fetcher := NewPageFetcher(logger, config, caller, DefaultRetryPolicy())
	fetcher.sleep = func(time.Duration) {}
	return &engine{
		Logger:    logger,
		Config:    config,
		collector: NewChunkCollector(logger, config, fetcher),
	}
}

// Đạt mục tiêu sau chunk thứ hai: dừng lại dù planner còn cửa sổ
func TestEngineStopsAtTarget(t *testing.T) {
	server, calls := newStubServer(t,
		stubResponse{status: http.StatusOK, body: pageBody(t, idRange("A", 100), 1, "", false)},
		stubResponse{status: http.StatusOK, body: pageBody(t, idRange("B", 100), 1, "", false)},
	)

	eng := newTestEngine(t, server.URL, func(c *cfg.Config) {
		c.Harvester.TargetCount = 150
		c.Harvester.WindowCount = 120
	})

	records := eng.run(context.Background())

	require.Len(t, records, 150)
	// Chỉ hai chunk được chạy, mỗi chunk một trang
	require.Equal(t, 2, *calls)
}

// Chạm mục tiêu giữa chunk: chunk hiện tại vẫn được thu thập trọn vẹn để dữ
// liệu tươi nhất, sau đó cắt về đúng mục tiêu theo thứ tự phát hiện.
func TestEngineFinishesCurrentChunkThenTruncates(t *testing.T) {
	server, calls := newStubServer(t,
		stubResponse{status: http.StatusOK, body: pageBody(t, idRange("A", 100), 1, "", false)},
		stubResponse{status: http.StatusOK, body: pageBody(t, idRange("B", 100), 1, "b1", true)},
		stubResponse{status: http.StatusOK, body: pageBody(t, idRange("C", 100), 1, "", false)},
	)

	eng := newTestEngine(t, server.URL, func(c *cfg.Config) {
		c.Harvester.TargetCount = 150
	})

	records := eng.run(context.Background())

	// Chunk hai có hai trang và cả hai đều được lấy về
	require.Equal(t, 3, *calls)

	// Cắt về 150, giữ các record phát hiện sớm nhất
	require.Len(t, records, 150)
	require.Equal(t, "A000", records[0].ID)
	require.Equal(t, "B049", records[149].ID)
}

// Id trùng giữa hai chunk: giá trị của chunk sau thắng, tổng không đếm trùng
func TestEngineMergeFreshnessOverwrite(t *testing.T) {
	server, _ := newStubServer(t,
		stubResponse{status: http.StatusOK, body: pageBody(t, []string{"dup", "only-1"}, 10, "", false)},
		stubResponse{status: http.StatusOK, body: pageBody(t, []string{"dup", "only-2"}, 500, "", false)},
	)

	eng := newTestEngine(t, server.URL, func(c *cfg.Config) {
		c.Harvester.TargetCount = 3
		c.Harvester.WindowCount = 2
	})

	records := eng.run(context.Background())

	require.Len(t, records, 3)
	require.Equal(t, "dup", records[0].ID)
	require.NotNil(t, records[0].StargazerCount)
	require.Equal(t, 500, *records[0].StargazerCount, "later chunk must overwrite the star count")
	require.Equal(t, "only-1", records[1].ID)
	require.Equal(t, "only-2", records[2].ID)
}

// Planner cạn trước khi đạt mục tiêu: vẫn kết thúc với ít record hơn mục tiêu
func TestEngineTerminatesWhenPlannerExhausted(t *testing.T) {
	server, calls := newStubServer(t,
		stubResponse{status: http.StatusOK, body: pageBody(t, idRange("A", 20), 1, "", false)},
	)

	eng := newTestEngine(t, server.URL, func(c *cfg.Config) {
		c.Harvester.TargetCount = 100000
		c.Harvester.WindowCount = 3
	})

	records := eng.run(context.Background())

	require.Equal(t, 3, *calls)
	// 3 chunk trả về cùng 20 id, dedup toàn cục còn 20
	require.Len(t, records, 20)
}

func TestAccumulatorTakePreservesInsertionOrder(t *testing.T) {
	acc := newAccumulator()

	one := 1
	acc.merge(&ChunkResult{
		Records: map[string]model.RepoMessage{"x": {ID: "x", StargazerCount: &one}},
		Order:   []string{"x"},
	})
	two := 2
	acc.merge(&ChunkResult{
		Records: map[string]model.RepoMessage{"y": {ID: "y", StargazerCount: &two}},
		Order:   []string{"y"},
	})

	require.Equal(t, 2, acc.size())

	final := acc.take(1)
	require.Len(t, final, 1)
	require.Equal(t, "x", final[0].ID)

	// take với target lớn hơn kích thước trả về tất cả
	require.Len(t, acc.take(10), 2)
}

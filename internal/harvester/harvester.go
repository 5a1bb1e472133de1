// Gói harvester điều phối việc thu thập metadata repository công khai qua
// GitHub GraphQL search API. Search API chặn mỗi query ở ~1000 kết quả nên
// không gian kết quả được chia thành các chunk theo cửa sổ thời gian tạo
// repo, mỗi chunk được phân trang và dedup riêng rồi gộp vào một accumulator
// toàn cục theo id.

package harvester

import (
	"context"

	"github.com/thep200/github-harvester/cfg"
	"github.com/thep200/github-harvester/internal/model"
	"github.com/thep200/github-harvester/pkg/log"
)

type Harvester interface {
	Harvest() bool
}

// Trạng thái của vòng điều phối
type harvestState int

const (
	statePlanning harvestState = iota
	stateHarvesting
	stateDone
)

// accumulator gộp kết quả các chunk theo id, chỉ có một writer duy nhất là
// vòng điều phối. Chunk sau ghi đè chunk trước trên cùng id để giữ dữ liệu
// mới nhất, nhưng vị trí trong thứ tự chèn không đổi.
type accumulator struct {
	records map[string]model.RepoMessage
	order   []string
}

func newAccumulator() *accumulator {
	return &accumulator{
		records: make(map[string]model.RepoMessage),
	}
}

func (a *accumulator) merge(chunk *ChunkResult) {
	for _, id := range chunk.Order {
		if _, seen := a.records[id]; !seen {
			a.order = append(a.order, id)
		}
		a.records[id] = chunk.Records[id]
	}
}

func (a *accumulator) size() int {
	return len(a.records)
}

// take trả về tối đa target record theo thứ tự chèn: khi phải cắt bớt thì
// các record được phát hiện sớm nhất được giữ lại.
func (a *accumulator) take(target int) []model.RepoMessage {
	n := len(a.order)
	if target < n {
		n = target
	}
	final := make([]model.RepoMessage, 0, n)
	for _, id := range a.order[:n] {
		final = append(final, a.records[id])
	}
	return final
}

// engine là vòng điều phối dùng chung cho các phiên bản harvester: chạy máy
// trạng thái PLANNING -> HARVESTING -> DONE và trả về danh sách record cuối
// cùng. Việc ghi ra đâu (database hay Kafka) do từng phiên bản quyết định.
type engine struct {
	Logger    log.Logger
	Config    *cfg.Config
	collector *ChunkCollector
}

func (e *engine) run(ctx context.Context) []model.RepoMessage {
	target := e.Config.Harvester.TargetCount
	if target <= 0 {
		target = 100000
	}

	planner := NewPlanner(e.Config)
	acc := newAccumulator()

	state := statePlanning
	var window Window

	for state != stateDone {
		switch state {
		case statePlanning:
			w, ok := planner.Next()
			if !ok {
				// Hết chunk, chấp nhận kết quả dưới mục tiêu
				state = stateDone
				continue
			}
			window = w
			state = stateHarvesting

		case stateHarvesting:
			// Chunk đang chạy luôn được thu thập trọn vẹn kể cả khi đã
			// chạm mục tiêu giữa chừng, để dữ liệu của chunk đó tươi nhất
			// có thể trước khi cắt bớt
			chunk := e.collector.Collect(ctx, window)
			acc.merge(chunk)

			e.Logger.Info(ctx, ">>>> Total unique repos collected so far: %d / %d <<<<", acc.size(), target)

			if acc.size() >= target {
				e.Logger.Info(ctx, "Target of %d repositories reached. Stopping harvest", target)
				state = stateDone
			} else {
				state = statePlanning
			}
		}
	}

	final := acc.take(target)
	e.Logger.Info(ctx, "Harvest complete. Total unique repositories to be stored: %d", len(final))
	return final
}

package harvester

import (
	"fmt"
	"time"

	"github.com/thep200/github-harvester/cfg"
)

// Window là một cửa sổ thời gian tạo repo, giới hạn một sub-query để tổng số
// kết quả thật của nó nhiều khả năng nằm dưới mức trần ~1000 của search API.
type Window struct {
	Start time.Time
	End   time.Time
}

// SearchQuery render cửa sổ thành filter tìm kiếm của GitHub
func (w Window) SearchQuery() string {
	return fmt.Sprintf("is:public created:%s..%s", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}

// Planner sinh tuần tự các cửa sổ thời gian đi lùi từ hiện tại, mỗi cửa sổ
// rộng WindowDays ngày, liền kề nhau và không chồng lấn. Planner không có
// side effect nào, chỉ sinh query.
type Planner struct {
	windowDays  int
	windowCount int
	cursor      time.Time
	generated   int
}

func NewPlanner(config *cfg.Config) *Planner {
	windowDays := config.Harvester.WindowDays
	if windowDays <= 0 {
		windowDays = 30
	}
	windowCount := config.Harvester.WindowCount
	if windowCount <= 0 {
		windowCount = 120
	}
	return &Planner{
		windowDays:  windowDays,
		windowCount: windowCount,
		cursor:      time.Now().UTC().Truncate(24 * time.Hour),
	}
}

// Next trả về cửa sổ tiếp theo, ok=false khi đã sinh đủ số cửa sổ.
// Cửa sổ sau kết thúc đúng một ngày trước khi cửa sổ trước bắt đầu.
func (p *Planner) Next() (Window, bool) {
	if p.generated >= p.windowCount {
		return Window{}, false
	}

	end := p.cursor.AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -p.windowDays)
	p.cursor = start
	p.generated++

	return Window{Start: start, End: end}, true
}

// Remaining cho biết còn bao nhiêu cửa sổ chưa sinh
func (p *Planner) Remaining() int {
	return p.windowCount - p.generated
}

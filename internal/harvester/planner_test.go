package harvester

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thep200/github-harvester/cfg"
)

func plannerConfig(windowDays, windowCount int) *cfg.Config {
	loader, _ := cfg.NewMockLoader()
	config, _ := loader.Load()
	config.Harvester.WindowDays = windowDays
	config.Harvester.WindowCount = windowCount
	return config
}

func TestPlannerWindowCount(t *testing.T) {
	p := NewPlanner(plannerConfig(30, 120))

	count := 0
	for {
		_, ok := p.Next()
		if !ok {
			break
		}
		count++
	}

	require.Equal(t, 120, count)
	require.Equal(t, 0, p.Remaining())
}

// Các cửa sổ liên tiếp phải liền kề và không chồng lấn: cửa sổ sau kết thúc
// đúng một ngày trước khi cửa sổ trước bắt đầu.
func TestPlannerWindowsContiguousNonOverlapping(t *testing.T) {
	p := NewPlanner(plannerConfig(30, 24))

	prev, ok := p.Next()
	require.True(t, ok)

	for {
		w, ok := p.Next()
		if !ok {
			break
		}

		require.Equal(t, prev.Start.AddDate(0, 0, -1), w.End,
			"window must end exactly one day before the previous window starts")
		require.True(t, w.End.Before(prev.Start), "windows must not overlap")
		require.True(t, w.Start.Before(w.End))
		prev = w
	}
}

func TestPlannerWindowWidth(t *testing.T) {
	p := NewPlanner(plannerConfig(30, 5))

	for {
		w, ok := p.Next()
		if !ok {
			break
		}
		require.Equal(t, w.Start.AddDate(0, 0, 30), w.End)
	}
}

func TestWindowSearchQuery(t *testing.T) {
	p := NewPlanner(plannerConfig(30, 1))
	w, ok := p.Next()
	require.True(t, ok)

	query := w.SearchQuery()
	require.True(t, strings.HasPrefix(query, "is:public created:"), "query = %q", query)
	require.Contains(t, query, w.Start.Format("2006-01-02")+".."+w.End.Format("2006-01-02"))
}

func TestPlannerDefaults(t *testing.T) {
	loader, _ := cfg.NewMockLoader()
	config, _ := loader.Load()
	config.Harvester.WindowDays = 0
	config.Harvester.WindowCount = 0

	p := NewPlanner(config)
	require.Equal(t, 120, p.Remaining())

	w, ok := p.Next()
	require.True(t, ok)
	require.Equal(t, w.Start.AddDate(0, 0, 30), w.End)
}

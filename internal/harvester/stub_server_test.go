package harvester

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thep200/github-harvester/cfg"
	"github.com/thep200/github-harvester/pkg/log"
)

// stubResponse là một phản hồi được chuẩn bị sẵn cho server giả
type stubResponse struct {
	status int
	body   string
}

// newStubServer trả về server giả phục vụ lần lượt các response theo thứ tự
// request đến. Response cuối cùng được lặp lại nếu có request thừa.
func newStubServer(t *testing.T, responses ...stubResponse) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idx := calls
		if idx >= len(responses) {
			idx = len(responses) - 1
		}
		calls++
		resp := responses[idx]
		if resp.status != http.StatusOK {
			w.WriteHeader(resp.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, resp.body)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

// pageBody dựng body của một trang search hợp lệ. ids sinh các node với
// nameWithOwner "owner/<id>" và stargazerCount tăng dần từ stars.
func pageBody(t *testing.T, ids []string, stars int, endCursor string, hasNext bool, gqlErrors ...string) string {
	t.Helper()

	nodes := make([]map[string]interface{}, 0, len(ids))
	for i, id := range ids {
		nodes = append(nodes, map[string]interface{}{
			"id":             id,
			"nameWithOwner":  "owner/" + id,
			"stargazerCount": stars + i,
		})
	}

	pageInfo := map[string]interface{}{"hasNextPage": hasNext}
	if endCursor != "" {
		pageInfo["endCursor"] = endCursor
	}

	envelope := map[string]interface{}{
		"data": map[string]interface{}{
			"rateLimit": map[string]interface{}{
				"remaining": 4900,
				"resetAt":   "2025-01-01T00:00:00Z",
			},
			"search": map[string]interface{}{
				"nodes":    nodes,
				"pageInfo": pageInfo,
			},
		},
	}

	if len(gqlErrors) > 0 {
		errs := make([]map[string]interface{}, 0, len(gqlErrors))
		for _, msg := range gqlErrors {
			errs = append(errs, map[string]interface{}{"message": msg})
		}
		envelope["errors"] = errs
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("cannot marshal stub body: %v", err)
	}
	return string(body)
}

func idRange(prefix string, n int) []string {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, fmt.Sprintf("%s%03d", prefix, i))
	}
	return ids
}

// testConfig dựng config trỏ vào server giả, tắt mọi delay để test chạy nhanh
func testConfig(t *testing.T, url string) *cfg.Config {
	t.Helper()
	loader, _ := cfg.NewMockLoader()
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("cannot load mock config: %v", err)
	}
	config.GithubApi.GraphqlUrl = url
	config.GithubApi.AccessToken = "test-token"
	config.GithubApi.RequestsPerSecond = 10000
	config.GithubApi.ThrottleDelay = 1
	return config
}

func testLogger(t *testing.T) log.Logger {
	t.Helper()
	logger, _ := log.NewCslLogger()
	return logger
}

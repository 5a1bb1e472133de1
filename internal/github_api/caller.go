// Gói githubapi cung cấp caller cho GitHub GraphQL API.
// Caller chỉ chịu trách nhiệm thực hiện một request phân trang và chuẩn hóa
// response thành SearchPage; phân loại retry nằm ở tầng trên.

package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/thep200/github-harvester/cfg"
	"github.com/thep200/github-harvester/pkg/log"
)

// ErrNoUsableData báo hiệu response không có phần data sử dụng được.
// Với lỗi này thì không retry được, chunk hiện tại phải dừng lại.
var ErrNoUsableData = errors.New("github api response has no usable data")

// Template cho mọi request tìm kiếm. Placeholder thứ nhất là search query
// của chunk, placeholder thứ hai là số record mỗi trang.
const queryTemplate = `
query($after: String) {
  rateLimit {
    remaining
    resetAt
  }
  search(query: "%s", type: REPOSITORY, first: %d, after: $after) {
    nodes {
      ... on Repository {
        id
        nameWithOwner
        stargazerCount
      }
    }
    pageInfo {
      endCursor
      hasNextPage
    }
  }
}
`

type Caller struct {
	Logger log.Logger
	Config *cfg.Config
	client *http.Client
}

func NewCaller(logger log.Logger, config *cfg.Config) *Caller {
	return &Caller{
		Logger: logger,
		Config: config,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Call thực hiện một request phân trang cho searchQuery với cursor tùy chọn.
// Cursor là token mờ do server cấp, chỉ có ý nghĩa trong cùng một query.
func (c *Caller) Call(ctx context.Context, searchQuery string, after *string) (*SearchPage, error) {
	perPage := c.Config.Harvester.PageSize
	if perPage <= 0 {
		perPage = 100
	}

	formattedQuery := fmt.Sprintf(queryTemplate, searchQuery, perPage)
	variables := map[string]interface{}{"after": after}

	body, err := json.Marshal(graphqlRequest{Query: formattedQuery, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("cannot marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Config.GithubApi.GraphqlUrl, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("cannot build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.Config.GithubApi.AccessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("bearer %s", c.Config.GithubApi.AccessToken))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot received response: %v", resp.Status)
	}

	// Giải mã response
	envelope := &searchEnvelope{}
	if err := json.NewDecoder(resp.Body).Decode(envelope); err != nil {
		return nil, fmt.Errorf("cannot decode response: %w", err)
	}

	// Không có data hoặc thiếu container search thì chunk này không thể
	// tiếp tục được nữa
	if envelope.Data == nil || envelope.Data.Search == nil {
		if len(envelope.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoUsableData, envelope.Errors[0].Message)
		}
		return nil, ErrNoUsableData
	}

	page := &SearchPage{
		EndCursor:     envelope.Data.Search.PageInfo.EndCursor,
		HasNextPage:   envelope.Data.Search.PageInfo.HasNextPage,
		PartialErrors: envelope.Errors,
	}

	// Node thiếu id bị loại bỏ: không đếm được và cũng không có cách nào
	// retry riêng từng node
	for _, node := range envelope.Data.Search.Nodes {
		if node == nil || node.ID == "" {
			continue
		}
		page.Nodes = append(page.Nodes, *node)
	}

	if rl := envelope.Data.RateLimit; rl != nil && rl.Remaining != nil {
		budget := &RateBudget{Remaining: *rl.Remaining}
		if resetAt, err := time.Parse(time.RFC3339, rl.ResetAt); err == nil {
			budget.ResetAt = resetAt
		}
		page.Budget = budget
	}

	return page, nil
}

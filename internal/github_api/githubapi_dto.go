// Các cấu trúc ánh xạ response GraphQL của GitHub search.
// Mọi trường có thể vắng mặt đều là con trỏ, kèm giá trị fallback rõ ràng
// khi decode (hasNextPage mặc định false, endCursor mặc định vắng mặt).

package githubapi

import "time"

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type GraphqlError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type RepoNode struct {
	ID             string  `json:"id"`
	NameWithOwner  *string `json:"nameWithOwner"`
	StargazerCount *int    `json:"stargazerCount"`
}

type PageInfo struct {
	EndCursor   *string `json:"endCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

type searchResult struct {
	Nodes    []*RepoNode `json:"nodes"`
	PageInfo PageInfo    `json:"pageInfo"`
}

type rateLimitResult struct {
	Remaining *int   `json:"remaining"`
	ResetAt   string `json:"resetAt"`
}

type searchData struct {
	RateLimit *rateLimitResult `json:"rateLimit"`
	Search    *searchResult    `json:"search"`
}

type searchEnvelope struct {
	Data   *searchData    `json:"data"`
	Errors []GraphqlError `json:"errors"`
}

// RateBudget là snapshot quota còn lại do server báo về, chỉ mang tính
// quan sát, không dùng để chặn request.
type RateBudget struct {
	Remaining int
	ResetAt   time.Time
}

// SearchPage là một trang kết quả đã được chuẩn hóa cho harvester
type SearchPage struct {
	Nodes         []RepoNode
	EndCursor     *string
	HasNextPage   bool
	Budget        *RateBudget
	PartialErrors []GraphqlError
}

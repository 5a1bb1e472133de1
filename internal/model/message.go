package model

// RepoMessage là một repository đã thu thập, dạng trung gian giữa GraphQL
// response, Kafka và database. Name và StargazerCount có thể null vì API
// không đảm bảo trả về đủ trường.
type RepoMessage struct {
	ID             string  `json:"id"`
	Name           *string `json:"name"`
	StargazerCount *int    `json:"stargazer_count"`
}

package cfg

import "errors"

type (
	App struct {
		Name    string
		Version string
	}

	Postgres struct {
		Host                  string
		Port                  string
		Username              string
		Password              string
		Database              string
		SslMode               string
		MaxIdleConnection     int
		MaxOpenConnection     int
		MaxLifeTimeConnection int
	}

	GithubApi struct {
		AccessToken       string
		GraphqlUrl        string
		RequestsPerSecond int
		ThrottleDelay     int
		RetryDelaySecond  int
		MaxRetries        int
		RateBudgetFloor   int
	}

	Kafka struct {
		Brokers  []string
		Producer struct {
			TopicRepo string
		}
	}

	Harvester struct {
		TargetCount int
		ChunkLimit  int
		WindowDays  int
		WindowCount int
		PageSize    int
		BatchSize   int
	}
)

type Config struct {
	App       App
	Postgres  Postgres
	GithubApi GithubApi
	Kafka     Kafka
	Harvester Harvester
}

// Validate kiểm tra các cấu hình bắt buộc trước khi thực hiện bất kỳ hoạt động
// mạng nào. Thiếu token hoặc thông tin kết nối database là lỗi nghiêm trọng
// ngay khi khởi động.
func (c *Config) Validate() error {
	if c.GithubApi.AccessToken == "" {
		return errors.New("github access token is not set, check config file or GITHUB_TOKEN env")
	}
	if c.GithubApi.GraphqlUrl == "" {
		return errors.New("github graphql url is not set")
	}
	if c.Postgres.Host == "" || c.Postgres.Database == "" || c.Postgres.Username == "" {
		return errors.New("postgres connection is not configured")
	}
	return nil
}

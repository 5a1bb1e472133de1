package cfg

type MockLoader struct{}

func NewMockLoader() (*MockLoader, error) {
	return &MockLoader{}, nil
}

func (ml *MockLoader) Load() (*Config, error) {
	return &Config{
		// App
		App: App{
			Name:    "github-harvester",
			Version: "0.0.1",
		},

		// Postgres
		Postgres: Postgres{
			Host:                  "127.0.0.1",
			Port:                  "5432",
			Username:              "postgres",
			Password:              "postgres",
			Database:              "postgres",
			SslMode:               "disable",
			MaxIdleConnection:     10,
			MaxOpenConnection:     100,
			MaxLifeTimeConnection: 3600,
		},

		// GithubApi
		GithubApi: GithubApi{
			AccessToken:       "",
			GraphqlUrl:        "https://api.github.com/graphql",
			RequestsPerSecond: 5,
			ThrottleDelay:     200,
			RetryDelaySecond:  15,
			MaxRetries:        0,
			RateBudgetFloor:   50,
		},

		// Kafka
		Kafka: Kafka{
			Brokers: []string{"127.0.0.1:9092"},
			Producer: struct {
				TopicRepo string
			}{
				TopicRepo: "harvested-repositories",
			},
		},

		// Harvester
		Harvester: Harvester{
			TargetCount: 100000,
			ChunkLimit:  1000,
			WindowDays:  30,
			WindowCount: 120,
			PageSize:    100,
			BatchSize:   500,
		},
	}, nil
}

package cfg

// Loader trừu tượng hóa nguồn cấu hình để có thể thay bằng mock trong test.
type Loader interface {
	Load() (*Config, error)
}

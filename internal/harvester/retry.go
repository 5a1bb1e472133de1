package harvester

import (
	"time"

	"github.com/thep200/github-harvester/cfg"
)

// RetryPolicy mô tả cách xử lý lỗi mạng tạm thời: ngủ Delay rồi gửi lại đúng
// request đó. MaxAttempts = 0 nghĩa là retry vô hạn, chỉ dừng khi process bị
// kill từ bên ngoài.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 0,
		Delay:       15 * time.Second,
	}
}

// RetryPolicyFromConfig đọc policy từ cấu hình, fallback về mặc định khi
// không được cấu hình.
func RetryPolicyFromConfig(config *cfg.Config) RetryPolicy {
	policy := DefaultRetryPolicy()
	if config.GithubApi.RetryDelaySecond > 0 {
		policy.Delay = time.Duration(config.GithubApi.RetryDelaySecond) * time.Second
	}
	if config.GithubApi.MaxRetries > 0 {
		policy.MaxAttempts = config.GithubApi.MaxRetries
	}
	return policy
}

// Exhausted kiểm tra xem đã hết số lần thử cho phép chưa
func (p RetryPolicy) Exhausted(attempts int) bool {
	return p.MaxAttempts > 0 && attempts >= p.MaxAttempts
}

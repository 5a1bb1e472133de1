package limiter

import (
	"sync"
	"time"
)

// RateLimiter giới hạn số lượng request phía client trong 1 giây, độc lập
// với quota do server báo về (quota đó chỉ mang tính quan sát).
type RateLimiter struct {
	requestTimes []time.Time
	maxRequests  int
	mu           sync.Mutex
}

func NewRateLimiter(maxRequests int) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	return &RateLimiter{
		requestTimes: make([]time.Time, 0, maxRequests),
		maxRequests:  maxRequests,
	}
}

// Allow kiểm tra xem có thể thực hiện request mới hay không
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	oneSecondAgo := now.Add(-1 * time.Second)

	// Xóa các request cũ hơn 1 giây
	validTimes := make([]time.Time, 0, len(r.requestTimes))
	for _, t := range r.requestTimes {
		if t.After(oneSecondAgo) {
			validTimes = append(validTimes, t)
		}
	}
	r.requestTimes = validTimes

	// Nếu số lượng request trong 1 giây vừa qua nhỏ hơn giới hạn thì add
	// request mới và cho phép thực hiện
	if len(r.requestTimes) < r.maxRequests {
		r.requestTimes = append(r.requestTimes, now)
		return true
	}

	return false
}

// WaitUntilAllowed chặn cho tới khi limiter cho phép request tiếp theo,
// ngủ throttleDelay giữa mỗi lần kiểm tra.
func (r *RateLimiter) WaitUntilAllowed(throttleDelay time.Duration) {
	for !r.Allow() {
		time.Sleep(throttleDelay)
	}
}

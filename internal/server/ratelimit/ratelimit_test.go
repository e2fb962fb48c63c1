package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func testConfig(limit int) *Config {
	return &Config{
		Enabled: true,
		Default: EndpointConfig{Limit: limit, Window: time.Minute, Burst: limit},
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(testConfig(10))
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/sessions", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", info.Limit)
		}
		if info.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, info.Remaining)
		}
	}

	allowed, info := limiter.Allow("127.0.0.1", "/sessions", "GET")
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if info.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", info.Remaining)
	}
	if info.RetryAfter <= 0 {
		t.Error("Expected retry after to be positive")
	}
	if !info.ResetTime.After(time.Now()) {
		t.Error("Reset time should be in the future")
	}
}

func TestLimiter_SeparateClients(t *testing.T) {
	limiter := NewLimiter(testConfig(1))
	defer limiter.Stop()

	if ok, _ := limiter.Allow("10.0.0.1", "/x", "GET"); !ok {
		t.Error("Expected first client to be allowed")
	}
	if ok, _ := limiter.Allow("10.0.0.2", "/x", "GET"); !ok {
		t.Error("Expected second client to have its own bucket")
	}
	if ok, _ := limiter.Allow("10.0.0.1", "/y", "GET"); ok {
		t.Error("Expected default bucket to be shared across unmatched paths")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	config := testConfig(1)
	config.Whitelist = map[string]bool{"127.0.0.1": true}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/sessions", "GET"); !allowed {
			t.Fatalf("Expected whitelisted request %d to be allowed", i+1)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	config := testConfig(100)
	config.Blacklist = map[string]bool{"192.168.1.1": true}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("192.168.1.1", "/sessions", "GET"); allowed {
		t.Error("Expected blacklisted IP to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/sessions", "POST"); !allowed {
			t.Fatal("Expected all requests to be allowed when disabled")
		}
	}
	if limiter.Len() != 0 {
		t.Errorf("Expected no buckets, got %d", limiter.Len())
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	config := testConfig(100)
	config.EndpointConfigs = DefaultEndpointConfigs()
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Runs on different sessions share one bucket.
	for i := 0; i < 3; i++ {
		path := fmt.Sprintf("/sessions/s%d/runs", i)
		if allowed, _ := limiter.Allow("127.0.0.1", path, "POST"); !allowed {
			t.Errorf("Expected run %d to be allowed within burst", i+1)
		}
	}
	allowed, info := limiter.Allow("127.0.0.1", "/sessions/s9/runs/stream", "POST")
	if allowed {
		t.Error("Expected run beyond burst to be denied")
	}
	if info.Limit != 30 {
		t.Errorf("Expected run limit 30, got %d", info.Limit)
	}

	if allowed, _ := limiter.Allow("127.0.0.1", "/sessions/s1", "GET"); !allowed {
		t.Error("Expected reads to use the default bucket")
	}
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	config := testConfig(1)
	config.EndpointConfigs = DefaultEndpointConfigs()
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET"); !allowed {
			t.Fatal("Expected health checks to be unlimited")
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(testConfig(100))
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/sessions", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount < 100 || allowedCount > 101 {
		t.Errorf("Expected about 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	limiter := NewLimiter(testConfig(10))
	defer limiter.Stop()

	limiter.Allow("10.0.0.1", "/a", "GET")
	limiter.Allow("10.0.0.2", "/a", "GET")
	if limiter.Len() != 2 {
		t.Fatalf("Expected 2 buckets, got %d", limiter.Len())
	}

	limiter.evictIdle(time.Now().Add(time.Second))
	if limiter.Len() != 0 {
		t.Errorf("Expected idle buckets to be evicted, got %d", limiter.Len())
	}
}

func TestLimiter_StopTwice(t *testing.T) {
	config := DefaultConfig()
	config.CleanupInterval = 10 * time.Millisecond
	limiter := NewLimiter(config)
	limiter.Stop()
	limiter.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	if allowed, info := limiter.Allow("127.0.0.1", "/sessions", "GET"); !allowed || info.Limit != 300 {
		t.Errorf("Expected default limit 300, got allowed=%v limit=%d", allowed, info.Limit)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path, method, want string
	}{
		{"/health", "GET", "/health"},
		{"/sessions/abc/runs", "POST", "/sessions/"},
		{"/batch", "POST", "/batch"},
		{"/sessions", "POST", ""},
		{"/sessions/abc", "GET", ""},
	}
	for _, tt := range tests {
		got := MatchEndpoint(tt.path, tt.method, configs)
		switch {
		case tt.want == "" && got != nil:
			t.Errorf("%s %s: expected no match, got %s", tt.method, tt.path, got.Path)
		case tt.want != "" && (got == nil || got.Path != tt.want):
			t.Errorf("%s %s: expected %s", tt.method, tt.path, tt.want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_WHITELIST", " 10.0.0.1, ,10.0.0.2")

	config := LoadConfig(5, 10)
	if config.Enabled {
		t.Error("Expected RATE_LIMIT_ENABLED=false to disable limiting")
	}
	if config.Default.Limit != 300 || config.Default.Burst != 10 {
		t.Errorf("Expected 300/min burst 10, got %d burst %d", config.Default.Limit, config.Default.Burst)
	}
	if len(config.Whitelist) != 2 || !config.Whitelist["10.0.0.2"] {
		t.Errorf("Unexpected whitelist %v", config.Whitelist)
	}
}

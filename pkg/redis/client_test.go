package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestFixedWindowAllow(t *testing.T) {
	client := &Client{store: newMockCmdable()}
	ctx := context.Background()

	allowed, count, err := client.FixedWindowAllow(ctx, "test-scope", 2, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Fatal("first call should be allowed")
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	allowed, count, err = client.FixedWindowAllow(ctx, "test-scope", 2, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Fatal("second call should be allowed")
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}

	allowed, _, err = client.FixedWindowAllow(ctx, "test-scope", 2, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("third call should be rejected")
	}
}

func TestIncrWithTTLSetsExpiryOnce(t *testing.T) {
	store := newMockCmdable()
	client := &Client{store: store}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := client.IncrWithTTL(ctx, "counter-key", time.Minute); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(store.expireCalls) != 1 {
		t.Fatalf("expected one expire call, got %d", len(store.expireCalls))
	}
	if store.expireCalls[0].ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %s", store.expireCalls[0].ttl)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{store: newMockCmdable()}

	if got := client.RateLimitKey("login"); got != "cc:rate_limit:login" {
		t.Fatalf("unexpected rate limit key: %s", got)
	}
	if got := client.CounterKey("hits"); got != "cc:counter:hits" {
		t.Fatalf("unexpected counter key: %s", got)
	}
}

type mockCmdable struct {
	data        map[string]string
	incr        map[string]int64
	expireCalls []expireCall
}

type expireCall struct {
	key string
	ttl time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		incr: make(map[string]int64),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, expireCall{key: key, ttl: expiration})
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

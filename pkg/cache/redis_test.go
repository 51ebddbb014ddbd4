package cache

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis is an in-memory stand-in for *redis.Client.
type fakeRedis struct {
	data   map[string]string
	ttls   map[string]time.Duration
	closed bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Scan(_ context.Context, _ uint64, match string, _ int64) *redis.ScanCmd {
	prefix := strings.TrimSuffix(match, "*")
	var keys []string
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return redis.NewScanCmdResult(keys, 0, nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := newRedisCache(fake, "")

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get on empty = hit %v, err %v; want miss", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), TTLMatch); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, ok := fake.data[DefaultRedisPrefix+"k"]; !ok {
		t.Errorf("key not stored under prefix: %v", fake.data)
	}
	if fake.ttls[DefaultRedisPrefix+"k"] != TTLMatch {
		t.Errorf("TTL = %v, want %v", fake.ttls[DefaultRedisPrefix+"k"], TTLMatch)
	}

	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v; want v, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}

	if err := c.Close(); err != nil || !fake.closed {
		t.Errorf("Close = %v, closed %v", err, fake.closed)
	}
}

func TestRedisCacheClearKeepsOtherPrefixes(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	fake.data["other:x"] = "keep"
	c := newRedisCache(fake, "mine:")

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if len(fake.data) != 1 || fake.data["other:x"] != "keep" {
		t.Errorf("after Clear data = %v, want only other:x", fake.data)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "::not a url", ""); err == nil {
		t.Error("NewRedisCache(bad url) expected error")
	}
}

// scriptedPinger answers Ping with the queued errors, then nil.
type scriptedPinger struct {
	errs  []error
	calls int
}

func (p *scriptedPinger) Ping(context.Context) *redis.StatusCmd {
	p.calls++
	if len(p.errs) == 0 {
		return redis.NewStatusResult("PONG", nil)
	}
	err := p.errs[0]
	p.errs = p.errs[1:]
	return redis.NewStatusResult("", err)
}

func TestPingWithRetry(t *testing.T) {
	pingDelay = time.Millisecond
	t.Cleanup(func() { pingDelay = 200 * time.Millisecond })

	refused := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	auth := errors.New("NOAUTH Authentication required")

	tests := []struct {
		name      string
		errs      []error
		wantErr   bool
		wantCalls int
	}{
		{"answers at once", nil, false, 1},
		{"recovers after refused dial", []error{refused}, false, 2},
		{"gives up after attempts", []error{refused, refused, refused}, true, 3},
		{"auth error is final", []error{auth}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedPinger{errs: tt.errs}
			err := pingWithRetry(context.Background(), p)
			if (err != nil) != tt.wantErr {
				t.Errorf("pingWithRetry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if p.calls != tt.wantCalls {
				t.Errorf("Ping called %d times, want %d", p.calls, tt.wantCalls)
			}
		})
	}
}

func TestPingWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	p := &scriptedPinger{errs: []error{refused, refused}}
	if err := pingWithRetry(ctx, p); !errors.Is(err, context.Canceled) {
		t.Errorf("pingWithRetry() = %v, want context.Canceled", err)
	}
}

package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	m := NoopMatchHooks{}
	m.OnLoadComplete(ctx, "g0.json", 10, 9, time.Millisecond, nil)
	m.OnMatchStart(ctx, 10)
	m.OnMatchComplete(ctx, 10, true, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "match")
	c.OnCacheMiss(ctx, "match")
	c.OnCacheSet(ctx, "profile", 1024)

	p := NoopProofHooks{}
	p.OnRound(ctx, 1, true)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Match().(NoopMatchHooks); !ok {
		t.Error("Match() should return NoopMatchHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Proof().(NoopProofHooks); !ok {
		t.Error("Proof() should return NoopProofHooks by default")
	}

	customMatch := &testMatchHooks{}
	SetMatchHooks(customMatch)
	if Match() != customMatch {
		t.Error("SetMatchHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customProof := &testProofHooks{}
	SetProofHooks(customProof)
	if Proof() != customProof {
		t.Error("SetProofHooks should set custom hooks")
	}

	Reset()
	if _, ok := Match().(NoopMatchHooks); !ok {
		t.Error("Reset() should restore NoopMatchHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testMatchHooks{}
	SetMatchHooks(custom)
	SetMatchHooks(nil)

	if Match() != custom {
		t.Error("SetMatchHooks(nil) should be ignored")
	}

	Reset()
}

func TestMatchResult(t *testing.T) {
	tests := []struct {
		isomorphic bool
		err        error
		want       string
	}{
		{true, nil, "isomorphic"},
		{false, nil, "distinct"},
		{true, errors.New("x"), "error"},
	}
	for _, tt := range tests {
		if got := matchResult(tt.isomorphic, tt.err); got != tt.want {
			t.Errorf("matchResult(%v, %v) = %q, want %q", tt.isomorphic, tt.err, got, tt.want)
		}
	}
}

// Test implementations
type testMatchHooks struct{ NoopMatchHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testProofHooks struct{ NoopProofHooks }

package cache

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := New(true)
	etag := c.Set("k", []byte(`{"a":1}`), time.Minute)

	data, gotTag, ok := c.Get("k")
	if !ok || string(data) != `{"a":1}` || gotTag != etag {
		t.Errorf("Get = %q %q %v", data, gotTag, ok)
	}
	if _, _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("v"), -time.Second)
	if _, _, ok := c.Get("k"); ok {
		t.Error("expected expired entry to miss")
	}
	c.evict()
	if n := c.Stats()["total_keys"]; n != 0 {
		t.Errorf("expected evict to drop expired entry, total_keys=%v", n)
	}
}

func TestCache_Disabled(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), time.Minute)
	if etag == "" {
		t.Error("disabled cache should still compute ETags")
	}
	if _, _, ok := c.Get("k"); ok {
		t.Error("disabled cache must never hit")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New(true)
	c.Set("a", []byte("1"), time.Minute)
	c.Set("b", []byte("2"), time.Minute)
	c.Clear()

	if _, _, ok := c.Get("a"); ok {
		t.Error("expected cleared entry to miss")
	}
	stats := c.Stats()
	if stats["total_keys"] != 0 || stats["clears"] != 1 {
		t.Errorf("stats after clear = %v", stats)
	}
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("body"))
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"*", true},
		{etag, true},
		{`W/"other", ` + etag, true},
		{`W/"other"`, false},
	}
	for _, tt := range tests {
		if got := CheckETagMatch(tt.header, etag); got != tt.want {
			t.Errorf("CheckETagMatch(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

package state

import (
	"sync"
	"testing"
)

// --- テスト ---

// TestRegistry_BucketReturnsSameInstance は同一クライアントIDに対して
// 常に同じBucketが返ることを検証する。
func TestRegistry_BucketReturnsSameInstance(t *testing.T) {
	registry := NewRegistry()

	first := registry.Bucket("client-1")
	second := registry.Bucket("client-1")

	if first != second {
		t.Error("expected same bucket instance for same client ID")
	}
	if registry.Len() != 1 {
		t.Errorf("expected 1 bucket, got %d", registry.Len())
	}
}

// TestRegistry_BucketsAreIsolated はクライアントごとにBucketが分離されることを検証する。
func TestRegistry_BucketsAreIsolated(t *testing.T) {
	registry := NewRegistry()

	registry.Bucket("client-1").Set("k", "v1")
	registry.Bucket("client-2").Set("k", "v2")

	if v, _ := registry.Bucket("client-1").GetString("k"); v != "v1" {
		t.Errorf("expected v1, got %q", v)
	}
	if v, _ := registry.Bucket("client-2").GetString("k"); v != "v2" {
		t.Errorf("expected v2, got %q", v)
	}
}

// TestRegistry_Drop はBucketの破棄と、破棄後の新規作成を検証する。
func TestRegistry_Drop(t *testing.T) {
	registry := NewRegistry()
	registry.Bucket("client-1").Set("k", "v")

	registry.Drop("client-1")

	if registry.Len() != 0 {
		t.Errorf("expected 0 buckets after drop, got %d", registry.Len())
	}
	if _, ok := registry.Bucket("client-1").Get("k"); ok {
		t.Error("expected fresh bucket after drop")
	}
}

// TestRegistry_ConcurrentAccess は並行アクセスでBucketが重複生成されないことを検証する。
// -raceフラグ付きで実行することを想定している。
func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	buckets := make([]*Bucket, 32)

	var wg sync.WaitGroup
	for i := range buckets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			buckets[i] = registry.Bucket("client-1")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(buckets); i++ {
		if buckets[i] != buckets[0] {
			t.Fatal("expected all goroutines to observe the same bucket")
		}
	}
}

// TestBucket_GetString は文字列取得の型判定を検証する。
func TestBucket_GetString(t *testing.T) {
	registry := NewRegistry()
	bucket := registry.Bucket("client-1")

	bucket.Set("str", "hello")
	bucket.Set("num", 42)

	if v, ok := bucket.GetString("str"); !ok || v != "hello" {
		t.Errorf("expected hello, got %q (ok=%v)", v, ok)
	}
	if _, ok := bucket.GetString("num"); ok {
		t.Error("expected false for non-string value")
	}
	if _, ok := bucket.GetString("absent"); ok {
		t.Error("expected false for absent key")
	}
}

// TestBucket_Delete は削除と、存在しないキーの削除が無害であることを検証する。
func TestBucket_Delete(t *testing.T) {
	registry := NewRegistry()
	bucket := registry.Bucket("client-1")
	bucket.Set("k", "v")

	bucket.Delete("k")
	bucket.Delete("absent")

	if _, ok := bucket.Get("k"); ok {
		t.Error("expected key removed")
	}
}

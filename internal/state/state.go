// Package state はプロセス全体で共有するリアクティブ状態コンテナを提供する。
//
// Registryはアプリケーション起動時に1つだけ生成し、参照で引き回す。
// パッケージレベルのシングルトンは持たない。
// 同一プロセス内のすべてのコンポーネントは同じRegistryを観測するため、
// ページ（リクエスト）をまたいだ状態の共有はここを経由する。
package state

import "sync"

// Registry はクライアントごとの状態Bucketを保持するレジストリ。
type Registry struct {
	mu      sync.RWMutex
	buckets map[string]*Bucket
}

// NewRegistry は空のRegistryを生成する。
func NewRegistry() *Registry {
	return &Registry{
		buckets: make(map[string]*Bucket),
	}
}

// Bucket は指定クライアントのBucketを取得する。存在しない場合は新規作成する。
func (r *Registry) Bucket(clientID string) *Bucket {
	r.mu.RLock()
	b, ok := r.buckets[clientID]
	r.mu.RUnlock()
	if ok {
		return b
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// ダブルチェック
	if b, ok := r.buckets[clientID]; ok {
		return b
	}

	b = &Bucket{values: make(map[string]any)}
	r.buckets[clientID] = b
	return b
}

// Drop は指定クライアントのBucketを破棄する。存在しない場合は何もしない。
func (r *Registry) Drop(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.buckets, clientID)
}

// Len は現在保持しているBucket数を返す。テストおよびメトリクス用。
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.buckets)
}

// Bucket は1クライアント分の名前付き状態値を保持する。
// 値の型には制約を設けない。呼び出し側はドキュメント化された
// ストア操作のみを通してアクセスすることが期待される。
type Bucket struct {
	mu     sync.RWMutex
	values map[string]any
}

// Get は指定キーの値を返す。存在しない場合はfalseを返す。
func (b *Bucket) Get(key string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.values[key]
	return v, ok
}

// GetString は指定キーの文字列値を返す。
// 存在しない、または文字列でない場合はfalseを返す。
func (b *Bucket) GetString(key string) (string, bool) {
	v, ok := b.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Set は指定キーに値を格納する。
func (b *Bucket) Set(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
}

// Delete は指定キーの値を削除する。存在しない場合は何もしない。
func (b *Bucket) Delete(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, key)
}

package storage

import (
	"context"

	"github.com/hitoshi/comanda/internal/state"
)

// BucketTier はプロセス内のstate.BucketをTierとして扱うアダプタ。
// 永続ティアと同じ優先順位リストに載せて初期化時の照合に使うための層で、
// プロセス生存中のみ値を保持する。書き込みは失敗しない。
type BucketTier struct {
	bucket *state.Bucket
}

// NewBucketTier はBucketTierを生成する。
func NewBucketTier(bucket *state.Bucket) *BucketTier {
	return &BucketTier{bucket: bucket}
}

// Read は指定キーの文字列値を返す。文字列以外の値は「値なし」として扱う。
func (t *BucketTier) Read(_ context.Context, key string) (string, bool) {
	v, ok := t.bucket.GetString(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Write は指定キーに値を格納する。常に成功する。
func (t *BucketTier) Write(_ context.Context, key, value string) error {
	t.bucket.Set(key, value)
	return nil
}

// Delete は指定キーの値を削除する。
func (t *BucketTier) Delete(_ context.Context, key string) error {
	t.bucket.Delete(key)
	return nil
}

// compile-time interface check
var _ Tier = (*BucketTier)(nil)

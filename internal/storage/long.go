package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/comanda/internal/repository"
)

// LongTier はクライアントIDにスコープされた長期キー/バリューストレージティア。
// プロセス再起動をまたいで値が生存する。リポジトリのエラーは
// 読み取りでは「値なし」に畳み込み、書き込みではそのまま返す
// （握りつぶすかどうかは呼び出し側の契約に委ねる）。
type LongTier struct {
	repo     repository.StorageRepository
	clientID string
}

// NewLongTier は指定クライアントにスコープされたLongTierを生成する。
func NewLongTier(repo repository.StorageRepository, clientID string) *LongTier {
	return &LongTier{repo: repo, clientID: clientID}
}

// Read は指定キーの値を返す。見つからない、または取得に失敗した場合はfalseを返す。
func (t *LongTier) Read(ctx context.Context, key string) (string, bool) {
	value, found, err := t.repo.Get(ctx, t.clientID, key)
	if err != nil {
		slog.Warn("long-term storage read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return "", false
	}
	return value, found
}

// Write は指定キーに値を保存する。
func (t *LongTier) Write(ctx context.Context, key, value string) error {
	if err := t.repo.Put(ctx, t.clientID, key, value); err != nil {
		return fmt.Errorf("failed to write long-term storage: %w", err)
	}
	return nil
}

// Delete は指定キーの値を削除する。
func (t *LongTier) Delete(ctx context.Context, key string) error {
	if err := t.repo.Delete(ctx, t.clientID, key); err != nil {
		return fmt.Errorf("failed to delete long-term storage: %w", err)
	}
	return nil
}

// compile-time interface check
var _ Tier = (*LongTier)(nil)

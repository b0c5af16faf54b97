// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"
)

// StorageRepository はクライアントごとの長期キー/バリュー保存のインターフェース。
// ブラウザのlocalStorageに相当する層をサーバー側で提供する。
type StorageRepository interface {
	// Get は指定クライアント・キーの値を取得する。
	// 見つからない場合はfoundにfalseを返し、エラーにはしない。
	Get(ctx context.Context, clientID, key string) (value string, found bool, err error)

	// Put は指定クライアント・キーの値を冪等にUPSERTする。
	Put(ctx context.Context, clientID, key, value string) error

	// Delete は指定クライアント・キーの値を削除する。キーが存在しない場合は何もしない。
	Delete(ctx context.Context, clientID, key string) error

	// DeleteByClientID は指定クライアントの全エントリを削除する。
	DeleteByClientID(ctx context.Context, clientID string) error

	// DeleteOlderThan は最終更新がcutoffより古いエントリを削除し、削除件数を返す。
	// クリーンアップジョブ用。
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

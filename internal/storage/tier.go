// Package storage はセッションの永続ティアを抽象化する。
//
// ティアは初期化時の読み取りでのみ正となるソースであり、
// 書き込みはベストエフォートのシンクとして扱う。
// 書き込み失敗は呼び出し側が握りつぶしてよく、
// インメモリ状態の一貫性には影響しない。
package storage

import "context"

// Tier は読み書き可能な1つの永続層を表す。
type Tier interface {
	// Read は指定キーの値を返す。値が存在しない場合はfalseを返す。
	// 読み取り失敗は「値なし」として扱われ、エラーは表出しない。
	Read(ctx context.Context, key string) (string, bool)

	// Write は指定キーに値を保存する。
	// エラーを返した場合でも、呼び出し側のインメモリ状態は有効なままでよい。
	Write(ctx context.Context, key, value string) error

	// Delete は指定キーの値を削除する。キーが存在しない場合は何もしない。
	Delete(ctx context.Context, key string) error
}

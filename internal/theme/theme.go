// Package theme はUIテーマ設定の保存と切り替えを提供する。
package theme

import (
	"context"
	"log/slog"

	"github.com/hitoshi/comanda/internal/storage"
)

// storageKey は長期ストレージ内のテーマ設定キー。
const storageKey = "bembos-theme"

// Theme はUIテーマ値を表す。
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Valid はテーマ値がサポート対象かを返す。
func (t Theme) Valid() bool {
	return t == Light || t == Dark
}

// BodyClass はレガシーCSSフック用のbodyクラス名を返す。
func (t Theme) BodyClass() string {
	return "theme-" + string(t)
}

// Store はテーマ設定を長期ストレージに保存するストア。
type Store struct {
	tier storage.Tier
	def  Theme
}

// New はStoreを生成する。defが無効な場合はlightをデフォルトとする。
func New(tier storage.Tier, def Theme) *Store {
	if !def.Valid() {
		def = Light
	}
	return &Store{tier: tier, def: def}
}

// Current は保存済みのテーマを返す。
// 未保存、または無効な値が保存されている場合はデフォルトを返す。
func (s *Store) Current(ctx context.Context) Theme {
	value, ok := s.tier.Read(ctx, storageKey)
	if !ok {
		return s.def
	}
	t := Theme(value)
	if !t.Valid() {
		return s.def
	}
	return t
}

// Set はテーマを保存して返す。無効な値は無視して現在値を返す。
// 保存失敗は握りつぶす（次回起動時にデフォルトへ戻るだけで、表示には影響しない）。
func (s *Store) Set(ctx context.Context, t Theme) Theme {
	if !t.Valid() {
		return s.Current(ctx)
	}
	if err := s.tier.Write(ctx, storageKey, string(t)); err != nil {
		slog.Warn("theme persist failed", slog.String("error", err.Error()))
	}
	return t
}

// Toggle はlight/darkを反転して保存し、適用後の値を返す。
func (s *Store) Toggle(ctx context.Context) Theme {
	next := Light
	if s.Current(ctx) == Light {
		next = Dark
	}
	return s.Set(ctx, next)
}

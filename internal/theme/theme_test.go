package theme

import (
	"context"
	"errors"
	"testing"
)

// --- モック ---

type fakeTier struct {
	values   map[string]string
	writeErr error
}

func newFakeTier() *fakeTier {
	return &fakeTier{values: make(map[string]string)}
}

func (t *fakeTier) Read(ctx context.Context, key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

func (t *fakeTier) Write(ctx context.Context, key, value string) error {
	if t.writeErr != nil {
		return t.writeErr
	}
	t.values[key] = value
	return nil
}

func (t *fakeTier) Delete(ctx context.Context, key string) error {
	delete(t.values, key)
	return nil
}

// --- テスト ---

// TestStore_CurrentDefaults は未保存・無効値でデフォルトが返ることを検証する。
func TestStore_CurrentDefaults(t *testing.T) {
	tier := newFakeTier()
	store := New(tier, Dark)
	ctx := context.Background()

	if got := store.Current(ctx); got != Dark {
		t.Errorf("expected default dark, got %q", got)
	}

	tier.values["bembos-theme"] = "neon"
	if got := store.Current(ctx); got != Dark {
		t.Errorf("expected default for invalid stored value, got %q", got)
	}
}

// TestStore_SetPersists は保存とストレージキーを検証する。
func TestStore_SetPersists(t *testing.T) {
	tier := newFakeTier()
	store := New(tier, Light)
	ctx := context.Background()

	if got := store.Set(ctx, Dark); got != Dark {
		t.Errorf("expected dark applied, got %q", got)
	}
	if tier.values["bembos-theme"] != "dark" {
		t.Errorf("expected persisted under bembos-theme, got %v", tier.values)
	}
}

// TestStore_SetInvalidIsNoop は無効値の設定が現在値を返すだけであることを検証する。
func TestStore_SetInvalidIsNoop(t *testing.T) {
	tier := newFakeTier()
	store := New(tier, Light)
	ctx := context.Background()

	store.Set(ctx, Dark)
	if got := store.Set(ctx, Theme("neon")); got != Dark {
		t.Errorf("expected current value returned for invalid theme, got %q", got)
	}
	if tier.values["bembos-theme"] != "dark" {
		t.Errorf("expected stored value unchanged, got %v", tier.values)
	}
}

// TestStore_SetSwallowsWriteError は保存失敗が表出しないことを検証する。
func TestStore_SetSwallowsWriteError(t *testing.T) {
	tier := newFakeTier()
	tier.writeErr = errors.New("db down")
	store := New(tier, Light)

	if got := store.Set(context.Background(), Dark); got != Dark {
		t.Errorf("expected dark applied despite write error, got %q", got)
	}
}

// TestStore_Toggle は反転の往復を検証する。
func TestStore_Toggle(t *testing.T) {
	store := New(newFakeTier(), Light)
	ctx := context.Background()

	if got := store.Toggle(ctx); got != Dark {
		t.Errorf("expected light→dark, got %q", got)
	}
	if got := store.Toggle(ctx); got != Light {
		t.Errorf("expected dark→light, got %q", got)
	}
}

// TestNew_InvalidDefaultFallsBackToLight は無効なデフォルトがlightに倒れることを検証する。
func TestNew_InvalidDefaultFallsBackToLight(t *testing.T) {
	store := New(newFakeTier(), Theme("neon"))
	if got := store.Current(context.Background()); got != Light {
		t.Errorf("expected light fallback, got %q", got)
	}
}

// TestTheme_BodyClass はレガシーCSSフック用のクラス名を検証する。
func TestTheme_BodyClass(t *testing.T) {
	if got := Light.BodyClass(); got != "theme-light" {
		t.Errorf("expected theme-light, got %q", got)
	}
	if got := Dark.BodyClass(); got != "theme-dark" {
		t.Errorf("expected theme-dark, got %q", got)
	}
}

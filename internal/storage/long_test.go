package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- モック ---

type mockStorageRepo struct {
	getFn    func(ctx context.Context, clientID, key string) (string, bool, error)
	putFn    func(ctx context.Context, clientID, key, value string) error
	deleteFn func(ctx context.Context, clientID, key string) error
}

func (m *mockStorageRepo) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	return m.getFn(ctx, clientID, key)
}
func (m *mockStorageRepo) Put(ctx context.Context, clientID, key, value string) error {
	return m.putFn(ctx, clientID, key, value)
}
func (m *mockStorageRepo) Delete(ctx context.Context, clientID, key string) error {
	return m.deleteFn(ctx, clientID, key)
}
func (m *mockStorageRepo) DeleteByClientID(ctx context.Context, clientID string) error {
	return nil
}
func (m *mockStorageRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

// --- テスト ---

// TestLongTier_ScopedByClientID は読み書きがクライアントIDにスコープされることを検証する。
func TestLongTier_ScopedByClientID(t *testing.T) {
	var gotClientID string
	repo := &mockStorageRepo{
		getFn: func(ctx context.Context, clientID, key string) (string, bool, error) {
			gotClientID = clientID
			return "v", true, nil
		},
	}
	tier := NewLongTier(repo, "client-42")

	value, ok := tier.Read(context.Background(), "k")
	if !ok || value != "v" {
		t.Errorf("expected v, got %q (ok=%v)", value, ok)
	}
	if gotClientID != "client-42" {
		t.Errorf("expected read scoped to client-42, got %q", gotClientID)
	}
}

// TestLongTier_ReadErrorFoldsToAbsent は取得エラーが「値なし」に畳み込まれることを検証する。
func TestLongTier_ReadErrorFoldsToAbsent(t *testing.T) {
	repo := &mockStorageRepo{
		getFn: func(ctx context.Context, clientID, key string) (string, bool, error) {
			return "", false, errors.New("connection refused")
		},
	}
	tier := NewLongTier(repo, "client-1")

	if _, ok := tier.Read(context.Background(), "k"); ok {
		t.Error("expected read error folded to absent")
	}
}

// TestLongTier_WriteErrorPropagates は書き込みエラーがそのまま返ることを検証する。
func TestLongTier_WriteErrorPropagates(t *testing.T) {
	repo := &mockStorageRepo{
		putFn: func(ctx context.Context, clientID, key, value string) error {
			return errors.New("constraint violation")
		},
		deleteFn: func(ctx context.Context, clientID, key string) error {
			return errors.New("timeout")
		},
	}
	tier := NewLongTier(repo, "client-1")

	if err := tier.Write(context.Background(), "k", "v"); err == nil {
		t.Error("expected write error propagated")
	}
	if err := tier.Delete(context.Background(), "k"); err == nil {
		t.Error("expected delete error propagated")
	}
}

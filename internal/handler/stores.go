// Package handler はHTTPハンドラーを提供する。
//
// セッション/カートのストアはリクエストごとに生成する。Cookieティアが
// 現在のリクエスト/レスポンスに束縛されるためで、プロセス内状態と
// 長期ストレージは全リクエストで共有される。
package handler

import (
	"fmt"
	"net/http"

	"github.com/hitoshi/comanda/internal/auth"
	"github.com/hitoshi/comanda/internal/cart"
	"github.com/hitoshi/comanda/internal/metrics"
	"github.com/hitoshi/comanda/internal/middleware"
	"github.com/hitoshi/comanda/internal/repository"
	"github.com/hitoshi/comanda/internal/session"
	"github.com/hitoshi/comanda/internal/state"
	"github.com/hitoshi/comanda/internal/storage"
)

// StoreFactory はリクエストごとのストア生成に必要な共有依存をまとめる。
type StoreFactory struct {
	Registry  *state.Registry
	Repo      repository.StorageRepository
	Auth      auth.Authenticator
	Sanitizer session.NameSanitizer
	Metrics   metrics.MetricsCollector // nil可

	CookieDomain      string
	CookieSecure      bool
	TokenCookieMaxAge int
	UserCookieMaxAge  int
}

// cookieConfig はセッションCookie用のティア設定を返す。
func (f *StoreFactory) cookieConfig() storage.CookieConfig {
	return storage.CookieConfig{
		Domain: f.CookieDomain,
		Secure: f.CookieSecure,
		MaxAges: map[string]int{
			session.TokenKey: f.TokenCookieMaxAge,
			session.UserKey:  f.UserCookieMaxAge,
		},
		DefaultMaxAge: f.TokenCookieMaxAge,
	}
}

// SessionFor は現在のリクエストに束縛されたSessionStoreを生成する。
// 生成時にティア照合（長期ストレージ → プロセス内状態 → Cookie）が走る。
func (f *StoreFactory) SessionFor(w http.ResponseWriter, r *http.Request, notifier session.Notifier) (*session.Store, error) {
	clientID, err := middleware.ClientIDFromContext(r.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client: %w", err)
	}

	bucket := f.Registry.Bucket(clientID)

	var rec session.Recorder
	if f.Metrics != nil {
		rec = f.Metrics
	}

	return session.New(session.Deps{
		Auth:      f.Auth,
		Memory:    storage.NewBucketTier(bucket),
		Cookie:    storage.NewCookieTier(r, w, f.cookieConfig()),
		Long:      storage.NewLongTier(f.Repo, clientID),
		Notifier:  notifier,
		Sanitizer: f.Sanitizer,
		Metrics:   rec,
	}), nil
}

// CartFor は現在のクライアントのCartStoreを生成する。
func (f *StoreFactory) CartFor(r *http.Request) (*cart.Store, error) {
	clientID, err := middleware.ClientIDFromContext(r.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client: %w", err)
	}

	var rec cart.Recorder
	if f.Metrics != nil {
		rec = f.Metrics
	}

	return cart.New(f.Registry.Bucket(clientID), rec), nil
}

// LongTierFor は現在のクライアントの長期ストレージティアを返す。
func (f *StoreFactory) LongTierFor(r *http.Request) (storage.Tier, error) {
	clientID, err := middleware.ClientIDFromContext(r.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client: %w", err)
	}
	return storage.NewLongTier(f.Repo, clientID), nil
}

// Package session は多層ストレージで裏付けられたログインセッション状態を提供する。
//
// セッション（Identity + Token）の正はインメモリ状態であり、永続ティアは
// 初期化時の復元ソースとベストエフォートの書き込み先としてのみ機能する。
// ティアの優先順位は 長期ストレージ → プロセス内状態 → 短命Cookie の順で、
// 初期化時に1回だけ照合される。
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hitoshi/comanda/internal/auth"
	"github.com/hitoshi/comanda/internal/model"
	"github.com/hitoshi/comanda/internal/storage"
)

// ティア横断で使用するストレージキー
const (
	TokenKey = "auth_token"
	UserKey  = "auth_user"
)

// Recorder はセッション関連メトリクスの記録インターフェース。
type Recorder interface {
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordStorageWriteFailure(tier string)
}

// NameSanitizer は表示名のサニタイズインターフェース。
// security.NameSanitizerServiceの部分集合として定義する。
type NameSanitizer interface {
	Sanitize(name string) string
}

// Deps はStoreの依存関係をまとめた構造体。
type Deps struct {
	Auth      auth.Authenticator
	Memory    storage.Tier // プロセス内リアクティブ状態（必須）
	Cookie    storage.Tier // 短命Cookieティア（必須）
	Long      storage.Tier // 長期ストレージティア（必須）
	Notifier  Notifier     // nilの場合はSlogNotifier
	Sanitizer NameSanitizer
	Metrics   Recorder // nil可
}

// Snapshot はUIコラボレーターに公開するセッション状態のスナップショット。
type Snapshot struct {
	User        model.Profile `json:"user"`
	Token       string        `json:"token,omitempty"`
	DisplayName string        `json:"display_name,omitempty"`
	Greeting    string        `json:"greeting,omitempty"`
	Loading     bool          `json:"loading"`
	LastError   string        `json:"error,omitempty"`
}

// Store は1クライアント分の論理セッションを保持する。
// 生成時にティアの照合を1回行い、以降はインメモリ状態のみを正とする。
// LoginとLogoutはストア単位で直列化される。
type Store struct {
	deps Deps

	// opMu はLogin/Logoutの読み取り-変更-書き込みを直列化する。
	// 認証コール中はmuを保持しないため、他の読み取りはブロックされない。
	opMu sync.Mutex

	mu      sync.RWMutex
	user    model.Profile
	token   string
	loading bool
	lastErr string
}

// New はStoreを生成し、ティアの照合を実行する。
// 照合の優先順位: 長期ストレージ → プロセス内状態 → Cookie。
// 各ティアは上位ティアで値が埋まらなかった場合のみ参照される。
// パース失敗は握りつぶし、次のティアへフォールスルーする。
func New(deps Deps) *Store {
	if deps.Notifier == nil {
		deps.Notifier = SlogNotifier{}
	}
	s := &Store{deps: deps}
	s.reconcile(context.Background())
	return s
}

// reconcile は永続ティアからインメモリ状態を復元する。
func (s *Store) reconcile(ctx context.Context) {
	tiers := []storage.Tier{s.deps.Long, s.deps.Memory, s.deps.Cookie}

	for _, tier := range tiers {
		if s.token != "" {
			break
		}
		if value, ok := tier.Read(ctx, TokenKey); ok {
			s.token = value
		}
	}

	for _, tier := range tiers {
		if s.user != nil {
			break
		}
		value, ok := tier.Read(ctx, UserKey)
		if !ok {
			continue
		}
		var profile model.Profile
		if err := json.Unmarshal([]byte(value), &profile); err != nil {
			// 破損エントリは「値なし」として次のティアへフォールスルー
			continue
		}
		s.user = profile
	}

	// 復元結果をプロセス内状態へ反映し、同一プロセス内の後続ストアが
	// ティア2で観測できるようにする。
	s.mirrorToMemory(ctx)
}

// mirrorToMemory は現在のセッションをプロセス内状態ティアへ書き込む。
func (s *Store) mirrorToMemory(ctx context.Context) {
	if s.token != "" {
		_ = s.deps.Memory.Write(ctx, TokenKey, s.token)
	}
	if s.user != nil {
		if serialized, err := json.Marshal(s.user); err == nil {
			_ = s.deps.Memory.Write(ctx, UserKey, string(serialized))
		}
	}
}

// Login は認証コラボレーターを呼び出し、セッションを確立する。
//
// レスポンスの解釈は優先順位付きの形状マッチャーに委ねる。トークンもユーザーも
// 抽出できないレスポンスは退化した成功として扱い、対応するフィールドを未設定の
// まま残して成功通知を出す（現行バックエンドの挙動に合わせた仕様。失敗として
// 扱うべきかは未解決のまま）。
//
// rememberフラグが真の場合は両フィールドを長期ストレージへ、偽の場合は
// Cookieティアへ書き込む。もう一方のティアには触れない。
// 永続書き込みの失敗は握りつぶし、インメモリ状態のみを保証する。
// 認証コール自体の失敗はエラーとして伝播し、状態は変更しない。
func (s *Store) Login(ctx context.Context, payload map[string]any) (map[string]any, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	res, err := s.deps.Auth.Authenticate(ctx, payload)
	if err != nil {
		apiErr := model.NewAuthFailedError()

		s.mu.Lock()
		s.lastErr = apiErr.Message
		s.mu.Unlock()

		s.deps.Notifier.Notify(Notification{
			Level:       LevelError,
			Title:       "Error de autenticación",
			Description: apiErr.Message,
		})
		if s.deps.Metrics != nil {
			s.deps.Metrics.RecordLoginFailure()
		}
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	remember := truthy(payload["remember"])

	s.mu.Lock()
	if token, ok := auth.ExtractToken(res); ok {
		s.token = token
		_ = s.deps.Memory.Write(ctx, TokenKey, token)
		s.persist(ctx, TokenKey, token, remember)
	}
	if user, ok := auth.ExtractUser(res); ok {
		s.user = user
		if serialized, err := json.Marshal(user); err == nil {
			_ = s.deps.Memory.Write(ctx, UserKey, string(serialized))
			s.persist(ctx, UserKey, string(serialized), remember)
		}
	}
	greeting, _ := s.greetingLocked()
	s.mu.Unlock()

	description := greeting
	if description == "" {
		description = "Bienvenido"
	}
	s.deps.Notifier.Notify(Notification{
		Level:       LevelSuccess,
		Title:       "Login exitoso",
		Description: description,
	})
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordLoginSuccess()
	}

	return res, nil
}

// persist は値をrememberフラグに応じた永続ティアへベストエフォートで書き込む。
// 失敗はログとメトリクスに記録するだけで表出しない。
func (s *Store) persist(ctx context.Context, key, value string, remember bool) {
	tier, tierName := s.deps.Cookie, "cookie"
	if remember {
		tier, tierName = s.deps.Long, "long"
	}

	if err := tier.Write(ctx, key, value); err != nil {
		slog.Warn("durable session write failed",
			slog.String("tier", tierName),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		if s.deps.Metrics != nil {
			s.deps.Metrics.RecordStorageWriteFailure(tierName)
		}
	}
}

// Logout はセッションを無条件に破棄する。
// インメモリ状態、Cookieティア、長期ストレージの両フィールドを全てクリアする。
// 冪等であり、未ログイン状態で呼んでも安全。エラーは返さない。
func (s *Store) Logout(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	for _, key := range []string{UserKey, TokenKey} {
		_ = s.deps.Memory.Delete(ctx, key)
		if err := s.deps.Cookie.Delete(ctx, key); err != nil {
			slog.Warn("cookie tier clear failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		if err := s.deps.Long.Delete(ctx, key); err != nil {
			slog.Warn("long tier clear failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	s.deps.Notifier.Notify(Notification{
		Level:       LevelInfo,
		Title:       "Sesión cerrada",
		Description: "Has cerrado sesión",
	})
}

// User は現在のIdentityの防御的コピーを返す。匿名の場合はnil。
func (s *Store) User() model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// Token は現在のトークンを返す。匿名の場合は空文字。
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Loading はログイン処理中かどうかを返す。
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError は直近のログイン失敗のユーザー向けメッセージを返す。
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// DisplayName は表示名を返す。
// Identityのusernameが文字列でない場合はfalseを返す。
// 表示名はHTML除去のサニタイズを通してから返す。
func (s *Store) DisplayName() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displayNameLocked()
}

func (s *Store) displayNameLocked() (string, bool) {
	name, ok := s.user.Username()
	if !ok {
		return "", false
	}
	if s.deps.Sanitizer != nil {
		name = s.deps.Sanitizer.Sanitize(name)
		if name == "" {
			return "", false
		}
	}
	return name, true
}

// Greeting は表示名を組み込んだ挨拶文を返す。表示名がない場合はfalse。
// 純粋な導出値であり、Identityの変更のたびに再計算される。
func (s *Store) Greeting() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.greetingLocked()
}

func (s *Store) greetingLocked() (string, bool) {
	name, ok := s.displayNameLocked()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("Hola %s", name), true
}

// Snapshot は現在のセッション状態のスナップショットを返す。
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		User:      s.user.Clone(),
		Token:     s.token,
		Loading:   s.loading,
		LastError: s.lastErr,
	}
	snap.DisplayName, _ = s.displayNameLocked()
	snap.Greeting, _ = s.greetingLocked()
	return snap
}

// truthy はrememberフラグの緩い真偽値解釈を行う。
// JSONペイロード由来のbool、文字列、数値を受け付ける。
func truthy(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value != "" && value != "false" && value != "0"
	case float64:
		return value != 0
	default:
		return false
	}
}

package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CookieConfig はCookieティアの属性設定。
type CookieConfig struct {
	Domain string
	Secure bool

	// MaxAges はキーごとのCookie有効期間（秒）。
	// 未指定のキーにはDefaultMaxAgeが適用される。
	MaxAges       map[string]int
	DefaultMaxAge int
}

// CookieTier は現在のHTTPリクエスト/レスポンスに束縛された短命Cookieティア。
// 読み取りはリクエストのCookieヘッダーから、書き込みはレスポンスの
// Set-Cookieヘッダーへ行う。リクエストごとに生成して使い捨てる。
type CookieTier struct {
	r      *http.Request
	w      http.ResponseWriter
	config CookieConfig
}

// NewCookieTier はCookieTierを生成する。
func NewCookieTier(r *http.Request, w http.ResponseWriter, config CookieConfig) *CookieTier {
	if config.DefaultMaxAge <= 0 {
		config.DefaultMaxAge = 3600
	}
	return &CookieTier{r: r, w: w, config: config}
}

// Read は指定キーのCookie値を返す。
// JSONシリアライズ値がCookieの禁止文字を含むため、値はURLエンコードで往復させる。
// デコードに失敗した値は「値なし」として扱う。
func (t *CookieTier) Read(_ context.Context, key string) (string, bool) {
	cookie, err := t.r.Cookie(key)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Write は指定キーのCookieをレスポンスに設定する。
// Path=/、SameSite=Laxで、有効期間はキーごとの設定に従う。
func (t *CookieTier) Write(_ context.Context, key, value string) error {
	if t.w == nil {
		return fmt.Errorf("cookie tier is read-only: no response writer bound")
	}
	http.SetCookie(t.w, &http.Cookie{
		Name:     key,
		Value:    url.QueryEscape(value),
		Path:     "/",
		Domain:   t.config.Domain,
		MaxAge:   t.maxAge(key),
		HttpOnly: true,
		Secure:   t.config.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Delete は指定キーのCookieを失効させる。
func (t *CookieTier) Delete(_ context.Context, key string) error {
	if t.w == nil {
		return fmt.Errorf("cookie tier is read-only: no response writer bound")
	}
	http.SetCookie(t.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		Domain:   t.config.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.config.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (t *CookieTier) maxAge(key string) int {
	if age, ok := t.config.MaxAges[key]; ok {
		return age
	}
	return t.config.DefaultMaxAge
}

// compile-time interface check
var _ Tier = (*CookieTier)(nil)

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hitoshi/comanda/internal/security"
)

// maxAuthResponseSize は認証レスポンスボディの最大読み取りサイズ。
const maxAuthResponseSize = 1 << 20 // 1MB

// APIClientConfig はAPIAuthenticatorの設定。
type APIClientConfig struct {
	BaseURL string
	Timeout time.Duration

	// テスト用にオーバーライド可能なHTTPクライアント。
	// nilの場合はSSRFガード付きクライアントを生成する。
	HTTPClient *http.Client
}

// APIAuthenticator はバックエンドの資格情報APIに対して認証を行う。
type APIAuthenticator struct {
	client  *http.Client
	baseURL string
}

// NewAPIAuthenticator はAPIAuthenticatorを生成する。
// ベースURLは事前にSSRFガードで静的検証する。
func NewAPIAuthenticator(guard security.SSRFGuardService, config APIClientConfig) (*APIAuthenticator, error) {
	if err := guard.ValidateURL(config.BaseURL); err != nil {
		return nil, fmt.Errorf("failed to validate auth api url: %w", err)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := config.HTTPClient
	if client == nil {
		client = guard.NewSafeClient(timeout)
	}

	return &APIAuthenticator{
		client:  client,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
	}, nil
}

// Authenticate は資格情報ペイロードをPOSTし、レスポンスボディの生マップを返す。
// ステータスコードが2xx以外の場合はエラーを返す。
// ボディがJSONオブジェクトでない場合もエラーを返す。
func (a *APIAuthenticator) Authenticate(ctx context.Context, payload map[string]any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call auth api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("auth api returned status %d", resp.StatusCode)
	}

	var res map[string]any
	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxAuthResponseSize))
	if err := decoder.Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to decode auth response: %w", err)
	}

	return res, nil
}

// compile-time interface check
var _ Authenticator = (*APIAuthenticator)(nil)

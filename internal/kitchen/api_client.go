package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hitoshi/comanda/internal/security"
)

// maxListResponseSize は一覧レスポンスボディの最大読み取りサイズ。
const maxListResponseSize = 4 << 20 // 4MB

// APIClientConfig はAPIListerの設定。
type APIClientConfig struct {
	BaseURL string
	Timeout time.Duration

	// テスト用にオーバーライド可能なHTTPクライアント。
	HTTPClient *http.Client
}

// APILister はバックエンドの店舗一覧APIを呼び出すLister実装。
type APILister struct {
	client  *http.Client
	baseURL string
}

// NewAPILister はAPIListerを生成する。ベースURLはSSRFガードで静的検証する。
func NewAPILister(guard security.SSRFGuardService, config APIClientConfig) (*APILister, error) {
	if err := guard.ValidateURL(config.BaseURL); err != nil {
		return nil, fmt.Errorf("failed to validate kitchen api url: %w", err)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := config.HTTPClient
	if client == nil {
		client = guard.NewSafeClient(timeout)
	}

	return &APILister{
		client:  client,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
	}, nil
}

// listResponse は店舗一覧APIのレスポンス形状。
type listResponse struct {
	Kitchens []Kitchen `json:"kitchens"`
	NextKey  string    `json:"nextKey"`
}

// ListKitchens は指定テナントの店舗一覧を取得する。
func (l *APILister) ListKitchens(ctx context.Context, tenantID string, limit int, cursor string) (*Page, error) {
	params := url.Values{
		"tenantId": {tenantID},
		"limit":    {strconv.Itoa(limit)},
	}
	if cursor != "" {
		params.Set("nextKey", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/kitchens?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build kitchens request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call kitchens api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kitchens api returned status %d", resp.StatusCode)
	}

	var body listResponse
	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxListResponseSize))
	if err := decoder.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode kitchens response: %w", err)
	}

	return &Page{Kitchens: body.Kitchens, NextKey: body.NextKey}, nil
}

// compile-time interface check
var _ Lister = (*APILister)(nil)

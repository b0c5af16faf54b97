// Package kitchen は店舗（キッチン）一覧の取得とフィルタリングを提供する。
package kitchen

import (
	"context"
	"fmt"
	"strings"

	"github.com/hitoshi/comanda/internal/model"
)

// defaultLimit は一覧取得の1回あたりのデフォルト件数。
const defaultLimit = 20

// Kitchen は店舗レコード。バックエンドの形状をそのまま受け取る。
type Kitchen map[string]any

// Page はカーソルベースページネーションの1ページ分の結果。
type Page struct {
	Kitchens []Kitchen
	NextKey  string
}

// Lister は店舗一覧取得コラボレーターのインターフェース。
type Lister interface {
	// ListKitchens は指定テナントの店舗一覧を取得する。
	// cursorが空の場合は先頭から取得する。
	ListKitchens(ctx context.Context, tenantID string, limit int, cursor string) (*Page, error)
}

// ListParams は一覧取得の入力パラメータ。
type ListParams struct {
	// TenantID はリクエストで明示されたテナント。空の場合はセッションとデフォルトから解決する。
	TenantID string
	// User はセッションのIdentity。tenantIdフィールドが最優先で使われる。
	User model.Profile
	// Limit は取得件数。0以下の場合はデフォルト値。
	Limit int
	// Cursor は前ページのNextKey。空の場合は先頭から。
	Cursor string
	// Query は取得結果への絞り込みクエリ。空の場合は絞り込まない。
	Query string
}

// Service は店舗一覧のビジネスロジックを提供する。
type Service struct {
	lister          Lister
	defaultTenantID string
}

// NewService はServiceを生成する。
func NewService(lister Lister, defaultTenantID string) *Service {
	return &Service{
		lister:          lister,
		defaultTenantID: defaultTenantID,
	}
}

// List はテナントを解決して店舗一覧を取得し、クエリで絞り込んで返す。
// 絞り込みは取得済みページに対して行うため、NextKeyはそのまま透過する。
func (s *Service) List(ctx context.Context, params ListParams) (*Page, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	tenantID := s.ResolveTenant(params.User, params.TenantID)

	page, err := s.lister.ListKitchens(ctx, tenantID, limit, params.Cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to list kitchens: %w", err)
	}

	if params.Query != "" {
		page.Kitchens = Filter(page.Kitchens, params.Query)
	}
	return page, nil
}

// ResolveTenant はテナントIDを解決する。
// 優先順位: セッションIdentityのtenantId → リクエストの明示値 → デフォルト。
func (s *Service) ResolveTenant(user model.Profile, explicit string) string {
	if id, ok := user.TenantID(); ok {
		return id
	}
	if explicit != "" {
		return explicit
	}
	return s.defaultTenantID
}

// Filter は店舗名と所在地に対する大文字小文字を無視した部分一致で絞り込む。
// 所在地はlocationフィールドを優先し、なければaddressを参照する。
func Filter(kitchens []Kitchen, query string) []Kitchen {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return kitchens
	}

	var out []Kitchen
	for _, k := range kitchens {
		name, _ := k["name"].(string)
		location, _ := k["location"].(string)
		if location == "" {
			location, _ = k["address"].(string)
		}
		haystack := strings.ToLower(name + " " + location)
		if strings.Contains(haystack, q) {
			out = append(out, k)
		}
	}
	return out
}

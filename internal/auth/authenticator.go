// Package auth はバックエンド認証APIとの連携とレスポンス解釈を提供する。
package auth

import "context"

// Authenticator は認証コールのインターフェース。
// レスポンスはバックエンドの形状差異を吸収するため生のマップで返す。
// 形状の解釈（トークン・ユーザーの抽出）はこのパッケージのマッチャーが担う。
type Authenticator interface {
	// Authenticate は資格情報ペイロードを送信し、レスポンスボディを返す。
	// 失敗は任意のエラーとして返り、呼び出し側で認証失敗として再通知される。
	Authenticate(ctx context.Context, payload map[string]any) (map[string]any, error)
}

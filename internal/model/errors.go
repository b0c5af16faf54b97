// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
// ユーザー向けメッセージはアプリの表示言語（スペイン語）で保持する。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, cart, kitchen, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeAuthFailed     = "AUTH_FAILED"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeKitchenFetch   = "KITCHEN_FETCH_FAILED"
	ErrCodeInvalidTheme   = "INVALID_THEME"
)

// NewAuthFailedError は認証失敗エラーを生成する。
// 認証コラボレーターの失敗のみがセッション状態を壊しうるため、
// エラー分類の中でこのカテゴリだけが呼び出し側へ伝播する。
func NewAuthFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeAuthFailed,
		Message:  "Error desconocido durante el inicio de sesión.",
		Category: "auth",
		Action:   "Verifica tus credenciales e inténtalo de nuevo.",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "Necesitas iniciar sesión.",
		Category: "auth",
		Action:   "Inicia sesión e inténtalo de nuevo.",
	}
}

// NewInvalidRequestError はリクエスト形式エラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("Solicitud inválida: %s", reason),
		Category: "validation",
		Action:   "Revisa los datos enviados e inténtalo de nuevo.",
	}
}

// NewKitchenFetchError は店舗一覧取得失敗エラーを生成する。
func NewKitchenFetchError() *APIError {
	return &APIError{
		Code:     ErrCodeKitchenFetch,
		Message:  "No se pudieron cargar los restaurantes.",
		Category: "kitchen",
		Action:   "Espera un momento e inténtalo de nuevo.",
	}
}

// NewInvalidThemeError は無効なテーマ値エラーを生成する。
func NewInvalidThemeError(value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidTheme,
		Message:  fmt.Sprintf("Tema no soportado: %s", value),
		Category: "validation",
		Action:   "Usa \"light\" o \"dark\".",
	}
}

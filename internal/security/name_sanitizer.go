package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// NameSanitizerService は表示名サニタイズ機能のインターフェースを定義する。
// プロフィールのusernameはバックエンド由来の非信頼値であり、
// 挨拶文としてUIに埋め込まれる前にHTMLを全て除去する。
type NameSanitizerService interface {
	// Sanitize は表示名からHTMLタグと属性を全て除去したプレーンテキストを返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(name string) string
}

// nameSanitizer はNameSanitizerServiceの実装。
// bluemondayのStrictPolicy（全タグ除去）を保持し、スレッドセーフに動作する。
type nameSanitizer struct {
	policy *bluemonday.Policy
}

// NewNameSanitizer はNameSanitizerServiceの新しいインスタンスを生成する。
func NewNameSanitizer() *nameSanitizer {
	return &nameSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は表示名からHTMLを全て除去したプレーンテキストを返す。
// StrictPolicyはエンティティをエスケープして返すため、
// プレーンテキストとして扱えるようアンエスケープし、前後の空白を落とす。
func (s *nameSanitizer) Sanitize(name string) string {
	cleaned := s.policy.Sanitize(name)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// compile-time interface check
var _ NameSanitizerService = (*nameSanitizer)(nil)

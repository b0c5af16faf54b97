package security

import "testing"

// --- テスト ---

// TestNameSanitizer_RemovesHTML は表示名からHTMLが全て除去されることを検証する。
func TestNameSanitizer_RemovesHTML(t *testing.T) {
	s := NewNameSanitizer()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"プレーンテキスト", "ana", "ana"},
		{"scriptタグ", `<script>alert("xss")</script>ana`, "ana"},
		{"imgタグのイベント属性", `ana<img src=x onerror=alert(1)>`, "ana"},
		{"太字タグは本文のみ残す", "<b>ana</b>", "ana"},
		{"アクセント付き文字は保持", "José María", "José María"},
		{"前後の空白を落とす", "  ana  ", "ana"},
		{"タグのみ", "<div></div>", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := s.Sanitize(c.in); got != c.want {
				t.Errorf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

// TestNameSanitizer_Idempotent は同一入力に対して常に同一出力を返すことを検証する。
func TestNameSanitizer_Idempotent(t *testing.T) {
	s := NewNameSanitizer()
	in := `<b>ana</b> & luz`

	first := s.Sanitize(in)
	second := s.Sanitize(first)
	if first != second {
		t.Errorf("expected idempotent sanitization, got %q then %q", first, second)
	}
}

// Package model はドメインモデルを定義する。
package model

// Profile は認証済みユーザーのプロフィールレコードを表す。
// バックエンドのレスポンス形状に合わせたスキーマレスなマップで、
// 表示用途のusernameフィールドのみを規約として期待する。
// IdentityとTokenは独立に存在しうるため、Profileがnilでも
// トークンだけのセッションは有効として扱う。
type Profile map[string]any

// Username は表示名を返す。
// usernameフィールドが文字列でない、または空の場合はfalseを返す。
func (p Profile) Username() (string, bool) {
	if p == nil {
		return "", false
	}
	name, ok := p["username"].(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// TenantID はマルチテナント識別子を返す。
// tenantIdフィールドが文字列でない、または空の場合はfalseを返す。
func (p Profile) TenantID() (string, bool) {
	if p == nil {
		return "", false
	}
	id, ok := p["tenantId"].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Clone はプロフィールの浅いコピーを返す。
// 呼び出し側がストア内部の状態を書き換えられないようにするための防御的コピー。
func (p Profile) Clone() Profile {
	if p == nil {
		return nil
	}
	c := make(Profile, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

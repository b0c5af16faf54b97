package auth

import "github.com/hitoshi/comanda/internal/model"

// tokenMatcher はレスポンスからトークンを取り出す1つの形状マッチャー。
type tokenMatcher func(res map[string]any) (string, bool)

// userMatcher はレスポンスからユーザーレコードを取り出す1つの形状マッチャー。
type userMatcher func(res map[string]any) (model.Profile, bool)

// tokenMatchers はトークン抽出の優先順位リスト。
// 先頭から順に試行し、最初にマッチした結果を採用する。
var tokenMatchers = []tokenMatcher{
	matchTopLevelToken,
	matchNestedToken,
}

// userMatchers はユーザー抽出の優先順位リスト。
var userMatchers = []userMatcher{
	matchTopLevelUser,
	matchNestedUser,
	matchDataAsUser,
}

// ExtractToken はレスポンスからトークン文字列を抽出する。
// 優先順位: トップレベルのtoken → data.token。
// どの形状にもマッチしない場合はfalseを返す（エラーにはしない）。
func ExtractToken(res map[string]any) (string, bool) {
	for _, match := range tokenMatchers {
		if token, ok := match(res); ok {
			return token, true
		}
	}
	return "", false
}

// ExtractUser はレスポンスからユーザーレコードを抽出する。
// 優先順位: トップレベルのuser → data.user → dataオブジェクト全体。
// どの形状にもマッチしない場合はfalseを返す（エラーにはしない）。
func ExtractUser(res map[string]any) (model.Profile, bool) {
	for _, match := range userMatchers {
		if user, ok := match(res); ok {
			return user, true
		}
	}
	return nil, false
}

func matchTopLevelToken(res map[string]any) (string, bool) {
	token, ok := res["token"].(string)
	return token, ok && token != ""
}

func matchNestedToken(res map[string]any) (string, bool) {
	data, ok := res["data"].(map[string]any)
	if !ok {
		return "", false
	}
	token, ok := data["token"].(string)
	return token, ok && token != ""
}

func matchTopLevelUser(res map[string]any) (model.Profile, bool) {
	user, ok := res["user"].(map[string]any)
	if !ok {
		return nil, false
	}
	return model.Profile(user), true
}

func matchNestedUser(res map[string]any) (model.Profile, bool) {
	data, ok := res["data"].(map[string]any)
	if !ok {
		return nil, false
	}
	user, ok := data["user"].(map[string]any)
	if !ok {
		return nil, false
	}
	return model.Profile(user), true
}

// matchDataAsUser はdataオブジェクト全体をユーザーレコードとして採用する最終手段。
// data.userが存在しない形状のバックエンドに対応する。
func matchDataAsUser(res map[string]any) (model.Profile, bool) {
	data, ok := res["data"].(map[string]any)
	if !ok {
		return nil, false
	}
	return model.Profile(data), true
}

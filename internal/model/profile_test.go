package model

import "testing"

// --- テスト ---

// TestProfile_Username はusernameフィールドの型・空判定を検証する。
func TestProfile_Username(t *testing.T) {
	cases := []struct {
		name    string
		profile Profile
		want    string
		wantOK  bool
	}{
		{"文字列", Profile{"username": "ana"}, "ana", true},
		{"空文字列", Profile{"username": ""}, "", false},
		{"数値", Profile{"username": 42}, "", false},
		{"フィールドなし", Profile{}, "", false},
		{"nilプロフィール", nil, "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := c.profile.Username()
			if got != c.want || ok != c.wantOK {
				t.Errorf("Username() = %q, %v; want %q, %v", got, ok, c.want, c.wantOK)
			}
		})
	}
}

// TestProfile_TenantID はtenantIdフィールドの型・空判定を検証する。
func TestProfile_TenantID(t *testing.T) {
	if id, ok := (Profile{"tenantId": "TENANT#BEMBOS"}).TenantID(); !ok || id != "TENANT#BEMBOS" {
		t.Errorf("expected TENANT#BEMBOS, got %q (ok=%v)", id, ok)
	}
	if _, ok := (Profile{"tenantId": 7}).TenantID(); ok {
		t.Error("expected false for non-string tenantId")
	}
	if _, ok := (Profile(nil)).TenantID(); ok {
		t.Error("expected false for nil profile")
	}
}

// TestProfile_Clone は防御的コピーを検証する。
func TestProfile_Clone(t *testing.T) {
	original := Profile{"username": "ana"}
	clone := original.Clone()
	clone["username"] = "mallory"

	if name, _ := original.Username(); name != "ana" {
		t.Errorf("expected original unaffected, got %q", name)
	}

	if (Profile(nil)).Clone() != nil {
		t.Error("expected nil clone for nil profile")
	}
}

// TestCartItem_Subtotal は小計計算と負値の畳み込みを検証する。
func TestCartItem_Subtotal(t *testing.T) {
	cases := []struct {
		item CartItem
		want float64
	}{
		{CartItem{Price: 15.5, Qty: 3}, 46.5},
		{CartItem{Price: 10, Qty: 0}, 0},
		{CartItem{Price: -10, Qty: 2}, 0},
		{CartItem{Price: 10, Qty: -2}, 0},
	}
	for _, c := range cases {
		if got := c.item.Subtotal(); got != c.want {
			t.Errorf("Subtotal(%+v) = %v, want %v", c.item, got, c.want)
		}
	}
}

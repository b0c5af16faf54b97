package kitchen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// --- モック ---

type mockGuard struct {
	validateErr error
}

func (m *mockGuard) NewSafeClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func (m *mockGuard) ValidateURL(rawURL string) error {
	return m.validateErr
}

// --- テスト ---

// TestNewAPILister_RejectsUnsafeURL はベースURLの事前検証を検証する。
func TestNewAPILister_RejectsUnsafeURL(t *testing.T) {
	guard := &mockGuard{validateErr: errors.New("blocked network")}

	if _, err := NewAPILister(guard, APIClientConfig{BaseURL: "http://10.0.0.1"}); err == nil {
		t.Error("expected constructor to reject unsafe base URL")
	}
}

// TestAPILister_ListKitchens はクエリパラメータ組み立てとレスポンス復号を検証する。
func TestAPILister_ListKitchens(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"kitchens": []map[string]any{
				{"name": "Bembos Miraflores"},
			},
			"nextKey": "next-1",
		})
	}))
	defer server.Close()

	lister, err := NewAPILister(&mockGuard{}, APIClientConfig{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}

	page, err := lister.ListKitchens(context.Background(), "TENANT#BEMBOS", 20, "cursor-0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := gotQuery["tenantId"]; len(got) != 1 || got[0] != "TENANT#BEMBOS" {
		t.Errorf("expected tenantId param, got %v", gotQuery)
	}
	if got := gotQuery["limit"]; len(got) != 1 || got[0] != "20" {
		t.Errorf("expected limit param, got %v", gotQuery)
	}
	if got := gotQuery["nextKey"]; len(got) != 1 || got[0] != "cursor-0" {
		t.Errorf("expected nextKey param, got %v", gotQuery)
	}

	if len(page.Kitchens) != 1 || page.NextKey != "next-1" {
		t.Errorf("unexpected page: %+v", page)
	}
}

// TestAPILister_OmitsEmptyCursor は空カーソルでnextKeyパラメータが付かないことを検証する。
func TestAPILister_OmitsEmptyCursor(t *testing.T) {
	var hadNextKey bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadNextKey = r.URL.Query()["nextKey"]
		json.NewEncoder(w).Encode(map[string]any{"kitchens": []map[string]any{}})
	}))
	defer server.Close()

	lister, err := NewAPILister(&mockGuard{}, APIClientConfig{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}

	if _, err := lister.ListKitchens(context.Background(), "TENANT#BEMBOS", 20, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hadNextKey {
		t.Error("expected nextKey omitted for empty cursor")
	}
}

// TestAPILister_ErrorStatus は200以外のステータスがエラーになることを検証する。
func TestAPILister_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	lister, err := NewAPILister(&mockGuard{}, APIClientConfig{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}

	if _, err := lister.ListKitchens(context.Background(), "TENANT#BEMBOS", 20, ""); err == nil {
		t.Error("expected error for 502 response")
	}
}

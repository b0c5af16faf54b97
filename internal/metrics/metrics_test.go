package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// --- テスト ---

// TestCollector_Counters はカウンター系メトリクスの記録を検証する。
func TestCollector_Counters(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordLoginSuccess()
	c.RecordLoginSuccess()
	c.RecordLoginFailure()
	c.RecordStorageWriteFailure("cookie")
	c.RecordCartOp("add")
	c.RecordCartOp("add")
	c.RecordHTTPStatus(200)

	if got := testutil.ToFloat64(c.loginSuccess); got != 2 {
		t.Errorf("expected 2 login successes, got %v", got)
	}
	if got := testutil.ToFloat64(c.loginFail); got != 1 {
		t.Errorf("expected 1 login failure, got %v", got)
	}
	if got := testutil.ToFloat64(c.storageWriteFail.WithLabelValues("cookie")); got != 1 {
		t.Errorf("expected 1 cookie write failure, got %v", got)
	}
	if got := testutil.ToFloat64(c.cartOps.WithLabelValues("add")); got != 2 {
		t.Errorf("expected 2 add ops, got %v", got)
	}
	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("200")); got != 1 {
		t.Errorf("expected 1 status 200, got %v", got)
	}
}

// TestHandler_ExposesMetrics はスクレイプエンドポイントの出力を検証する。
func TestHandler_ExposesMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector(registry)
	c.RecordLoginSuccess()
	c.RecordRequestLatency(50 * time.Millisecond)

	w := httptest.NewRecorder()
	Handler(registry).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "comanda_login_success_total 1") {
		t.Errorf("expected login counter in scrape output, got:\n%s", body)
	}
	if !strings.Contains(body, "comanda_request_latency_seconds") {
		t.Errorf("expected latency histogram in scrape output")
	}
}

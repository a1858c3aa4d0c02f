package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/zaibaitech/asrar-sub001/internal/app/calculator"
	"github.com/zaibaitech/asrar-sub001/internal/infra/observability"
)

// ─── Helpers ────────────────────────────────────────────────────────────────

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	calc, err := calculator.New(calculator.DefaultConfig(), nil,
		observability.NewTracer(observability.DefaultTracerConfig()), zap.NewNop())
	if err != nil {
		t.Fatalf("calculator.New: %v", err)
	}
	srv := NewServer(calc, zap.NewNop())
	srv.EnableMetrics()
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return w, resp
}

func errorMessage(resp map[string]interface{}) string {
	e, _ := resp["error"].(map[string]interface{})
	msg, _ := e["message"].(string)
	return msg
}

// ─── Basics ─────────────────────────────────────────────────────────────────

func TestHealthAndVersion(t *testing.T) {
	h := setupServer(t)

	w, resp := do(t, h, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || resp["status"] != "ok" {
		t.Errorf("GET /health = %d %v", w.Code, resp)
	}
	w, resp = do(t, h, http.MethodGet, "/api/version", "")
	if w.Code != http.StatusOK || resp["version"] != Version {
		t.Errorf("GET /api/version = %d %v", w.Code, resp)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := setupServer(t)
	w, _ := do(t, h, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Errorf("GET /metrics = %d, want 200", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := setupServer(t)
	w, _ := do(t, h, http.MethodOptions, "/v1/profile", "")
	if w.Code != http.StatusOK {
		t.Errorf("OPTIONS = %d, want 200", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing Access-Control-Allow-Origin")
	}
}

func TestVariants(t *testing.T) {
	h := setupServer(t)
	w, resp := do(t, h, http.MethodGet, "/v1/variants", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	vs, _ := resp["variants"].([]interface{})
	if len(vs) != 3 {
		t.Errorf("expected 3 variants, got %d", len(vs))
	}
}

// ─── Profiles ───────────────────────────────────────────────────────────────

func TestProfile(t *testing.T) {
	h := setupServer(t)
	w, resp := do(t, h, http.MethodPost, "/v1/profile",
		`{"text":"علي","mother":"فاطمة","birth":"2000-01-01"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}

	prof := resp["profile"].(map[string]interface{})
	if prof["raw_total"] != float64(110) || prof["element"] != "earth" {
		t.Errorf("profile = %v", prof)
	}
	numbers := prof["numbers"].(map[string]interface{})
	lp, _ := numbers["life_path"].(map[string]interface{})
	if lp["number"] != float64(4) {
		t.Errorf("life_path = %v, want 4", lp)
	}
	comb := resp["combined"].(map[string]interface{})
	if comb["raw_total"] != float64(245) {
		t.Errorf("combined raw_total = %v, want 245", comb["raw_total"])
	}
}

func TestProfile_Errors(t *testing.T) {
	h := setupServer(t)
	tests := []struct {
		name string
		body string
		want string
	}{
		{"non-arabic", `{"text":"Ali"}`, "non-alphabetic"},
		{"empty", `{"text":"   "}`, "empty name"},
		{"variant", `{"text":"علي","variant":"kufic"}`, "kufic"},
		{"birth", `{"text":"علي","birth":"01/01/2000"}`, "YYYY-MM-DD"},
		{"unknown field", `{"name":"علي"}`, "invalid request body"},
		{"malformed", `{`, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := do(t, h, http.MethodPost, "/v1/profile", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			if msg := errorMessage(resp); !strings.Contains(msg, tt.want) {
				t.Errorf("error message %q does not mention %q", msg, tt.want)
			}
		})
	}
}

func TestProfileBatch(t *testing.T) {
	h := setupServer(t)
	w, resp := do(t, h, http.MethodPost, "/v1/profile/batch", `{"texts":["محمد","Ali","علي"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	results := resp["results"].([]interface{})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if resp["failed"] != float64(1) {
		t.Errorf("failed = %v, want 1", resp["failed"])
	}
	second := results[1].(map[string]interface{})
	if second["error"] == nil || second["profile"] != nil {
		t.Errorf("results[1] = %v, want an error entry", second)
	}

	w, _ = do(t, h, http.MethodPost, "/v1/profile/batch", `{"texts":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty batch = %d, want 400", w.Code)
	}
}

func TestElement(t *testing.T) {
	h := setupServer(t)
	w, resp := do(t, h, http.MethodGet, "/v1/element?total=92", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp["element"] != "water" || resp["remainder"] != float64(4) {
		t.Errorf("element(92) = %v", resp)
	}

	for _, q := range []string{"", "?total=abc"} {
		if w, _ := do(t, h, http.MethodGet, "/v1/element"+q, ""); w.Code != http.StatusBadRequest {
			t.Errorf("GET /v1/element%s = %d, want 400", q, w.Code)
		}
	}
}

// ─── Planetary ──────────────────────────────────────────────────────────────

func TestPlanetaryHour(t *testing.T) {
	h := setupServer(t)
	w, resp := do(t, h, http.MethodGet, "/v1/planetary-hour?weekday=0&hour=3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp["ruler"] != "moon" || resp["day_ruler"] != "sun" || resp["element"] != "water" {
		t.Errorf("hour(0,3) = %v", resp)
	}

	w, resp = do(t, h, http.MethodGet, "/v1/planetary-hour?weekday=0&hour=24", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("hour 24 = %d, want 400", w.Code)
	}
	if !strings.Contains(errorMessage(resp), "hour") {
		t.Errorf("error message %q does not name the field", errorMessage(resp))
	}
}

func TestPlanetaryHourAt(t *testing.T) {
	h := setupServer(t)
	// Monday 03:15 UTC, hours counted from midnight.
	w, resp := do(t, h, http.MethodPost, "/v1/planetary-hour/at", `{"at":"2024-03-11T03:15:00Z"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	if resp["ruler"] != "mars" || resp["weekday"] != float64(1) {
		t.Errorf("hour at = %v, want mars on Monday", resp)
	}
}

func TestPlanetaryDay(t *testing.T) {
	h := setupServer(t)
	w, resp := do(t, h, http.MethodGet, "/v1/planetary-day?weekday=6", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	hours := resp["hours"].([]interface{})
	if len(hours) != 24 {
		t.Fatalf("expected 24 hours, got %d", len(hours))
	}
	if first := hours[0].(map[string]interface{}); first["ruler"] != "saturn" {
		t.Errorf("first hour ruler = %v, want saturn", first["ruler"])
	}

	if w, _ := do(t, h, http.MethodGet, "/v1/planetary-day?weekday=7", ""); w.Code != http.StatusBadRequest {
		t.Errorf("weekday 7 = %d, want 400", w.Code)
	}
}

// ─── Compatibility & Balance ────────────────────────────────────────────────

func TestCompatibility(t *testing.T) {
	h := setupServer(t)
	w, resp := do(t, h, http.MethodPost, "/v1/compatibility",
		`{"person1":{"name":"علي","mother":"فاطمة"},"person2":{"name":"محمد"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	res := resp["result"].(map[string]interface{})
	if res["confidence"] != "partial" {
		t.Errorf("confidence = %v, want partial", res["confidence"])
	}
	if layers := res["layers"].([]interface{}); len(layers) != 4 {
		t.Errorf("expected 4 layers, got %d", len(layers))
	}
	score := res["overall_score"].(float64)
	if score < 0 || score > 100 {
		t.Errorf("overall_score = %v", score)
	}

	w, _ = do(t, h, http.MethodPost, "/v1/compatibility", `{"person1":{"name":"علي"},"person2":{"name":""}}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty second name = %d, want 400", w.Code)
	}
}

func TestBalance(t *testing.T) {
	h := setupServer(t)
	tests := []struct {
		query    string
		score    float64
		severity string
	}{
		{"user=fire&context=water", 30, "severe"},
		{"user=fire&context=air", 90, "balanced"},
		{"user=water&weekday=0", 30, "severe"},         // Sunday, the Sun's fire
		{"user=water&weekday=0&hour=3", 50, "moderate"}, // the Moon's hour
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w, resp := do(t, h, http.MethodGet, "/v1/balance?"+tt.query, "")
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
			}
			if resp["score"] != tt.score || resp["severity"] != tt.severity {
				t.Errorf("balance = %v, want %v/%s", resp, tt.score, tt.severity)
			}
		})
	}

	for _, q := range []string{"user=fire", "user=metal&context=fire", "user=fire&context=aether", "user=fire&weekday=9"} {
		if w, _ := do(t, h, http.MethodGet, "/v1/balance?"+q, ""); w.Code != http.StatusBadRequest {
			t.Errorf("GET /v1/balance?%s = %d, want 400", q, w.Code)
		}
	}
}

// ─── Reading & Tracing ──────────────────────────────────────────────────────

func TestReading_TracedByHeader(t *testing.T) {
	h := setupServer(t)
	w, resp := do(t, h, http.MethodPost, "/v1/reading",
		`{"name":"علي","mother":"فاطمة","birth":"2000-01-01","at":"2024-03-10T03:15:00Z"}`,
		"X-Trace-Id", "api-reading")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	if w.Header().Get("X-Trace-Id") != "api-reading" {
		t.Errorf("X-Trace-Id = %q, want api-reading", w.Header().Get("X-Trace-Id"))
	}
	if resp["id"] == "" {
		t.Error("reading id is empty")
	}
	hour := resp["hour"].(map[string]interface{})
	if hour["ruler"] != "moon" {
		t.Errorf("hour ruler = %v, want moon", hour["ruler"])
	}

	w, resp = do(t, h, http.MethodGet, "/api/debug/spans?trace=api-reading", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	spans := resp["spans"].([]interface{})
	if len(spans) < 4 {
		t.Errorf("expected the reading and its child spans, got %d", len(spans))
	}
}

func TestSpans_WithoutTracer(t *testing.T) {
	calc, err := calculator.New(calculator.DefaultConfig(), nil, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("calculator.New: %v", err)
	}
	h := NewServer(calc, zap.NewNop()).Handler()

	w, resp := do(t, h, http.MethodGet, "/api/debug/spans", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp["total"] != float64(0) {
		t.Errorf("total = %v, want 0", resp["total"])
	}
	if w, _ := do(t, h, http.MethodGet, "/api/debug/spans?trace=x", ""); w.Code != http.StatusOK {
		t.Errorf("trace lookup = %d, want 200", w.Code)
	}
}

func TestSpans_Limit(t *testing.T) {
	h := setupServer(t)
	for i := 0; i < 3; i++ {
		do(t, h, http.MethodGet, "/v1/planetary-hour?weekday=1&hour=1", "")
	}
	w, resp := do(t, h, http.MethodGet, "/api/debug/spans?limit=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if spans := resp["spans"].([]interface{}); len(spans) != 2 {
		t.Errorf("expected 2 spans, got %d", len(spans))
	}
	if resp["total"] != float64(3) {
		t.Errorf("total = %v, want 3", resp["total"])
	}
}

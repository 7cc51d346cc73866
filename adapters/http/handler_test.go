package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/stonefield/jiraSOAP/adapters/metrics"
	apihttp "github.com/stonefield/jiraSOAP/adapters/http"
)

type fakeChecker struct {
	err error
}

func (f fakeChecker) HealthCheck(ctx context.Context) error {
	return f.err
}

func serve(t *testing.T, h http.Handler, path string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	resp := rec.Result()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestHealth_Liveness(t *testing.T) {
	r := apihttp.NewRouter(apihttp.NewHealthHandler(nil, 0), zerolog.Nop(), apihttp.RouterConfig{})

	for _, path := range []string{"/health", "/health/live"} {
		resp, body := serve(t, r, path)
		if resp.StatusCode != 200 {
			t.Errorf("%s status = %d, want 200", path, resp.StatusCode)
		}
		if !strings.Contains(body, `"ok"`) {
			t.Errorf("%s body = %s", path, body)
		}
	}
}

func TestHealth_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		checker    apihttp.HealthChecker
		wantStatus int
		wantBody   string
	}{
		{"no checker", nil, 200, "ok"},
		{"healthy", fakeChecker{}, 200, "ok"},
		{"unhealthy", fakeChecker{err: errors.New("connection refused")}, 503, "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := apihttp.NewRouter(apihttp.NewHealthHandler(tt.checker, 0), zerolog.Nop(), apihttp.RouterConfig{})
			resp, body := serve(t, r, "/health/ready")
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if !strings.Contains(body, tt.wantBody) {
				t.Errorf("body = %s, want it to contain %q", body, tt.wantBody)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	r := apihttp.NewRouter(apihttp.NewHealthHandler(nil, 0), zerolog.Nop(), apihttp.RouterConfig{Version: "1.2.3"})

	_, body := serve(t, r, "/version")
	var v apihttp.VersionResponse
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if v.Version != "1.2.3" || v.Service != "jirasoap" {
		t.Errorf("version = %+v", v)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)
	m.ObserveCall("getProjectsNoSchemes", 0, nil)

	r := apihttp.NewRouter(apihttp.NewHealthHandler(nil, 0), zerolog.Nop(), apihttp.RouterConfig{
		Gatherer:    reg,
		MetricsPath: "/custom-metrics",
	})

	resp, body := serve(t, r, "/custom-metrics")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(body, "jirasoap_calls_total") || !strings.Contains(body, "getProjectsNoSchemes") {
		t.Errorf("metrics body missing call counter:\n%s", body)
	}

	if resp, _ := serve(t, r, "/metrics"); resp.StatusCode != 404 {
		t.Errorf("/metrics status = %d, want 404 when path is customized", resp.StatusCode)
	}
}

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stonefield/jiraSOAP/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	return writeNamed(t, "config.yaml", content)
}

func writeNamed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func validConfig() string {
	return `
endpoint:
  url: "https://jira.example.com"
  timeout: 10s
  headers:
    X-Team: "platform"

auth:
  username: "alice"

session:
  store: "memory"

logging:
  level: "info"
  format: "json"
`
}

func TestLoad_ValidConfig(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, validConfig()))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Endpoint.URL != "https://jira.example.com" {
		t.Errorf("Endpoint.URL = %s, want https://jira.example.com", cfg.Endpoint.URL)
	}
	if cfg.Endpoint.Timeout != 10*time.Second {
		t.Errorf("Endpoint.Timeout = %v, want 10s", cfg.Endpoint.Timeout)
	}
	if cfg.Endpoint.Headers["X-Team"] != "platform" {
		t.Errorf("Endpoint.Headers = %v", cfg.Endpoint.Headers)
	}
	if cfg.Auth.Username != "alice" {
		t.Errorf("Auth.Username = %s, want alice", cfg.Auth.Username)
	}
	if cfg.Session.Store != "memory" {
		t.Errorf("Session.Store = %s, want memory", cfg.Session.Store)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %s, want json", cfg.Logging.Format)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeNamed(t, "config.toml", `
[endpoint]
url = "http://localhost:8080/jira"
timeout = "5s"

[session]
store = "sqlite"
dsn = "/tmp/sessions.db"

[output]
format = "yaml"
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Endpoint.URL != "http://localhost:8080/jira" {
		t.Errorf("Endpoint.URL = %s", cfg.Endpoint.URL)
	}
	if cfg.Endpoint.Timeout != 5*time.Second {
		t.Errorf("Endpoint.Timeout = %v, want 5s", cfg.Endpoint.Timeout)
	}
	if cfg.Session.DSN != "/tmp/sessions.db" {
		t.Errorf("Session.DSN = %s", cfg.Session.DSN)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("Output.Format = %s, want yaml", cfg.Output.Format)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
endpoint:
  url: "https://jira.example.com"
`))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"endpoint.path", cfg.Endpoint.Path, "/rpc/soap/jirasoapservice-v2"},
		{"endpoint.namespace", cfg.Endpoint.Namespace, "http://soap.rpc.jira.atlassian.com"},
		{"endpoint.timeout", cfg.Endpoint.Timeout, 30 * time.Second},
		{"session.store", cfg.Session.Store, "sqlite"},
		{"session.dsn", cfg.Session.DSN, config.DefaultSessionDSN()},
		{"logging.level", cfg.Logging.Level, "warn"},
		{"logging.format", cfg.Logging.Format, "console"},
		{"metrics.addr", cfg.Metrics.Addr, "127.0.0.1:9464"},
		{"metrics.path", cfg.Metrics.Path, "/metrics"},
		{"output.format", cfg.Output.Format, "table"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics should be disabled by default")
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_JIRA_PASSWORD", "s3cret")

	cfg, err := config.Load(writeConfig(t, `
endpoint:
  url: "https://jira.example.com"
auth:
  password: "${TEST_JIRA_PASSWORD}"
`))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Auth.Password != "s3cret" {
		t.Errorf("Auth.Password = %q, want s3cret", cfg.Auth.Password)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing url",
			content: "logging:\n  level: info\n",
			wantErr: "endpoint.url is required",
		},
		{
			name:    "url without scheme",
			content: "endpoint:\n  url: jira.example.com\n",
			wantErr: "endpoint.url must start with",
		},
		{
			name:    "bad session store",
			content: "endpoint:\n  url: https://a\nsession:\n  store: redis\n",
			wantErr: "session.store",
		},
		{
			name:    "bad log level",
			content: "endpoint:\n  url: https://a\nlogging:\n  level: loud\n",
			wantErr: "logging.level",
		},
		{
			name:    "bad log format",
			content: "endpoint:\n  url: https://a\nlogging:\n  format: xml\n",
			wantErr: "logging.format",
		},
		{
			name:    "bad output format",
			content: "endpoint:\n  url: https://a\noutput:\n  format: csv\n",
			wantErr: "output.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := config.Load(writeConfig(t, "endpoint: [unclosed")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := config.Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("JIRASOAP_ENDPOINT_URL", "https://override.example.com")
	t.Setenv("JIRASOAP_ENDPOINT_TIMEOUT", "45s")
	t.Setenv("JIRASOAP_ENDPOINT_HEADERS", "X-A:1,X-B:2")
	t.Setenv("JIRASOAP_LOG_LEVEL", "debug")
	t.Setenv("JIRASOAP_METRICS_ENABLED", "true")

	cfg, err := config.Load(writeConfig(t, validConfig()))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Endpoint.URL != "https://override.example.com" {
		t.Errorf("Endpoint.URL = %s, want override", cfg.Endpoint.URL)
	}
	if cfg.Endpoint.Timeout != 45*time.Second {
		t.Errorf("Endpoint.Timeout = %v, want 45s", cfg.Endpoint.Timeout)
	}
	if cfg.Endpoint.Headers["X-B"] != "2" {
		t.Errorf("Endpoint.Headers = %v", cfg.Endpoint.Headers)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be true")
	}
	// untouched by env
	if cfg.Auth.Username != "alice" {
		t.Errorf("Auth.Username = %s, want alice", cfg.Auth.Username)
	}
}

func TestEnvOverrides_InvalidDuration(t *testing.T) {
	t.Setenv("JIRASOAP_ENDPOINT_TIMEOUT", "soon")

	if _, err := config.Load(writeConfig(t, validConfig())); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JIRASOAP_ENDPOINT_URL", "https://env.example.com")
	t.Setenv("JIRASOAP_AUTH_USERNAME", "bob")
	t.Setenv("JIRASOAP_SESSION_STORE", "memory")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv error: %v", err)
	}
	if cfg.Endpoint.URL != "https://env.example.com" {
		t.Errorf("Endpoint.URL = %s", cfg.Endpoint.URL)
	}
	if cfg.Auth.Username != "bob" {
		t.Errorf("Auth.Username = %s, want bob", cfg.Auth.Username)
	}
	if cfg.Session.Store != "memory" {
		t.Errorf("Session.Store = %s, want memory", cfg.Session.Store)
	}
}

func TestLoadFromEnv_MissingRequired(t *testing.T) {
	t.Setenv("JIRASOAP_ENDPOINT_URL", "")

	if _, err := config.LoadFromEnv(); err == nil {
		t.Error("expected error without JIRASOAP_ENDPOINT_URL")
	}
}

func TestLoadWithFallback(t *testing.T) {
	t.Run("file exists", func(t *testing.T) {
		cfg, err := config.LoadWithFallback(writeConfig(t, validConfig()))
		if err != nil {
			t.Fatalf("LoadWithFallback error: %v", err)
		}
		if cfg.Auth.Username != "alice" {
			t.Errorf("Auth.Username = %s, want alice", cfg.Auth.Username)
		}
	})

	t.Run("env only", func(t *testing.T) {
		t.Setenv("JIRASOAP_ENDPOINT_URL", "https://env.example.com")
		cfg, err := config.LoadWithFallback("/nonexistent/config.yaml")
		if err != nil {
			t.Fatalf("LoadWithFallback error: %v", err)
		}
		if cfg.Endpoint.URL != "https://env.example.com" {
			t.Errorf("Endpoint.URL = %s", cfg.Endpoint.URL)
		}
	})

	t.Run("nothing", func(t *testing.T) {
		t.Setenv("JIRASOAP_ENDPOINT_URL", "")
		if _, err := config.LoadWithFallback(""); err == nil {
			t.Error("expected error with no config")
		}
	})
}

func TestHasEnvConfig(t *testing.T) {
	t.Setenv("JIRASOAP_ENDPOINT_URL", "")
	if config.HasEnvConfig() {
		t.Error("HasEnvConfig should be false")
	}

	t.Setenv("JIRASOAP_ENDPOINT_URL", "https://a")
	if !config.HasEnvConfig() {
		t.Error("HasEnvConfig should be true")
	}
}

func TestDefaultPaths(t *testing.T) {
	if filepath.Base(config.DefaultPath()) != "config.yaml" {
		t.Errorf("DefaultPath() = %s", config.DefaultPath())
	}
	if filepath.Base(config.DefaultSessionDSN()) != "sessions.db" {
		t.Errorf("DefaultSessionDSN() = %s", config.DefaultSessionDSN())
	}
}

package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func testView() View {
	return View{
		Name:    "project",
		Columns: []string{"id", "name", "key", "lead"},
		Hidden:  []string{"description"},
	}
}

func testRecords() []map[string]any {
	return []map[string]any{
		{"id": "10000", "name": "Alpha", "key": "ABC", "lead": "alice", "description": "first"},
		{"id": "10001", "name": "Zulu", "key": "XYZ"},
	}
}

// ===========================================
// Registry Tests
// ===========================================

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.defaultFmt != "table" {
		t.Errorf("default format should be 'table', got %q", r.defaultFmt)
	}
	if r.Default() != nil {
		t.Error("empty registry should have no default formatter")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(NewTableFormatter()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	err := r.Register(NewTableFormatter())
	if err == nil {
		t.Fatal("expected error when registering duplicate formatter")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Errorf("error message should mention 'already registered', got: %v", err)
	}
}

func TestRegistry_SetDefault(t *testing.T) {
	r := NewRegistry()
	r.Register(NewJSONFormatter())

	if err := r.SetDefault("xml"); err == nil {
		t.Error("SetDefault should fail for unknown formatter")
	}
	if err := r.SetDefault("json"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if r.Default().Name() != "json" {
		t.Errorf("Default() = %s, want json", r.Default().Name())
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	r.Register(NewTableFormatter())
	r.Register(NewYAMLFormatter())

	f, err := r.Lookup("")
	if err != nil || f.Name() != "table" {
		t.Errorf("Lookup(\"\") = %v, %v; want table", f, err)
	}

	f, err = r.Lookup("yaml")
	if err != nil || f.Name() != "yaml" {
		t.Errorf("Lookup(yaml) = %v, %v", f, err)
	}

	_, err = r.Lookup("csv")
	if err == nil {
		t.Fatal("Lookup(csv) should fail")
	}
	if !strings.Contains(err.Error(), "table") {
		t.Errorf("error should list available formats, got: %v", err)
	}
}

func TestDefaultRegistry(t *testing.T) {
	got := List()
	want := []string{"json", "table", "yaml"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

// ===========================================
// View Tests
// ===========================================

func TestView_Columns(t *testing.T) {
	v := testView()

	tests := []struct {
		name      string
		requested []string
		records   []map[string]any
		want      []string
	}{
		{
			name: "declared order",
			want: []string{"id", "name", "key", "lead"},
		},
		{
			name:      "requested wins",
			requested: []string{"key", "description"},
			want:      []string{"key", "description"},
		},
		{
			name:    "extra keys sorted after declared",
			records: []map[string]any{{"zeta": 1, "alpha": 2, "description": "x"}},
			want:    []string{"id", "name", "key", "lead", "alpha", "zeta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.columns(tt.requested, tt.records...)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("columns = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestView_ProjectDropsHidden(t *testing.T) {
	got := testView().project(testRecords()[0], nil)
	if _, ok := got["description"]; ok {
		t.Error("hidden column should be dropped")
	}
	if got["key"] != "ABC" {
		t.Errorf("key = %v, want ABC", got["key"])
	}
}

// ===========================================
// Table Tests
// ===========================================

func TestTable_FormatList(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableFormatter().FormatList(&buf, testView(), testRecords(), FormatOptions{}); err != nil {
		t.Fatalf("FormatList failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if fields := strings.Fields(lines[0]); strings.Join(fields, " ") != "ID NAME KEY LEAD" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "XYZ") || !strings.HasSuffix(strings.TrimSpace(lines[2]), "-") {
		t.Errorf("absent lead should print as '-': %q", lines[2])
	}
	if strings.Contains(buf.String(), "first") {
		t.Error("hidden description should not be printed")
	}
}

func TestTable_FormatListNoHeader(t *testing.T) {
	var buf bytes.Buffer
	NewTableFormatter().FormatList(&buf, testView(), testRecords(), FormatOptions{NoHeader: true})
	if strings.Contains(buf.String(), "NAME") {
		t.Error("header should be omitted")
	}
}

func TestTable_FormatListEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewTableFormatter().FormatList(&buf, testView(), nil, FormatOptions{})
	if buf.String() != "No project records found.\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestTable_FormatRecord(t *testing.T) {
	var buf bytes.Buffer
	record := map[string]any{
		"key":              "ABC",
		"permissionScheme": map[string]any{"id": "0", "name": "Default Permission Scheme"},
	}
	view := View{Name: "project", Columns: []string{"key", "permissionScheme"}}
	if err := NewTableFormatter().FormatRecord(&buf, view, record, FormatOptions{}); err != nil {
		t.Fatalf("FormatRecord failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Key:") {
		t.Errorf("missing Key label:\n%s", out)
	}
	if !strings.Contains(out, "Permission Scheme:") || !strings.Contains(out, "Default Permission Scheme") {
		t.Errorf("nested entity should be summarized by name:\n%s", out)
	}
}

func TestTable_FormatRecordNil(t *testing.T) {
	var buf bytes.Buffer
	NewTableFormatter().FormatRecord(&buf, testView(), nil, FormatOptions{})
	if buf.String() != "No project found.\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		val      any
		maxWidth int
		want     string
	}{
		{"nil", nil, 0, "-"},
		{"string", "hello", 0, "hello"},
		{"true", true, 0, "yes"},
		{"false", false, 0, "no"},
		{"int64", int64(42), 0, "42"},
		{"list", []any{"a", "b"}, 0, "a, b"},
		{"nested without name", map[string]any{"id": "7"}, 0, "7"},
		{"truncated", "abcdefghij", 6, "abc..."},
		{"short enough", "abc", 6, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.val, tt.maxWidth); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.val, got, tt.want)
			}
		})
	}
}

func TestFormatLabel(t *testing.T) {
	tests := map[string]string{
		"key":                        "Key",
		"projectUrl":                 "Project Url",
		"allowExternalUserManagment": "Allow External User Managment",
	}
	for in, want := range tests {
		if got := formatLabel(in); got != want {
			t.Errorf("formatLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

// ===========================================
// JSON / YAML Tests
// ===========================================

func TestJSON_FormatList(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter().FormatList(&buf, testView(), testRecords(), FormatOptions{}); err != nil {
		t.Fatalf("FormatList failed: %v", err)
	}

	var out struct {
		Entity string           `json:"entity"`
		Count  int              `json:"count"`
		Data   []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Entity != "project" || out.Count != 2 {
		t.Errorf("entity = %s, count = %d", out.Entity, out.Count)
	}
	if _, ok := out.Data[1]["lead"]; ok {
		t.Error("absent attribute should stay absent")
	}
}

func TestJSON_Compact(t *testing.T) {
	var buf bytes.Buffer
	NewJSONFormatter().FormatRecord(&buf, testView(), testRecords()[1], FormatOptions{Compact: true})
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("compact output should be one line: %q", buf.String())
	}
}

func TestJSON_FormatError(t *testing.T) {
	var buf bytes.Buffer
	NewJSONFormatter().FormatError(&buf, errors.New("boom"))

	var out map[string]string
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out["error"] != "boom" {
		t.Errorf("error = %q, want boom", out["error"])
	}
}

func TestYAML_FormatRecord(t *testing.T) {
	var buf bytes.Buffer
	opts := FormatOptions{Columns: []string{"key", "description"}}
	if err := NewYAMLFormatter().FormatRecord(&buf, testView(), testRecords()[0], opts); err != nil {
		t.Fatalf("FormatRecord failed: %v", err)
	}

	var out struct {
		Entity string         `yaml:"entity"`
		Data   map[string]any `yaml:"data"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(out.Data) != 2 || out.Data["description"] != "first" {
		t.Errorf("data = %v", out.Data)
	}
}

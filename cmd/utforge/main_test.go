package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/utkit/utforge/pkg/forge"
	"github.com/utkit/utforge/pkg/forge/forgetest"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root, _ := newRootCommand(&out)
	missing := filepath.Join(t.TempDir(), "missing.toml")
	root.SetArgs(append([]string{"--config", missing}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestBuildCommand_JSON(t *testing.T) {
	out, err := runCLI(t,
		"--persona", "mobile", "--platform", "xbox", "--sid", "abc",
		"build", "post", "/ut/game/fifa/item",
		"--override", "delete",
		"--field", "itemId=123",
		"--header", "X-Trace=1",
		"--remove-header", "Accept",
		"-o", "json",
	)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if got := gjson.Get(out, "method").String(); got != "DELETE" {
		t.Errorf("method = %q, want DELETE", got)
	}
	if got := gjson.Get(out, "url").String(); got != "https://utas.fut.ea.com/ut/game/fifa/item" {
		t.Errorf("url = %q", got)
	}
	if got := gjson.Get(out, "form.itemId").String(); got != "123" {
		t.Errorf("form.itemId = %q, want 123", got)
	}

	var names []string
	gjson.Get(out, "header").ForEach(func(k, _ gjson.Result) bool {
		names = append(names, k.String())
		return true
	})
	want := []string{"User-Agent", "Content-Type", "x-wap-profile", "X-Trace", "X-UT-SID"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("header order = %v, want %v", names, want)
	}
}

func TestBuildCommand_YAMLQuery(t *testing.T) {
	out, err := runCLI(t, "build", "GET", "/ut/game/fifa/transfermarket",
		"--data", `{"type":"player"}`, "--field", "maxb=1000")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	var v struct {
		Method string            `yaml:"method"`
		URL    string            `yaml:"url"`
		Header map[string]string `yaml:"header"`
	}
	if err := yaml.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if v.URL != "https://utas.s2.fut.ea.com/ut/game/fifa/transfermarket?type=player&maxb=1000" {
		t.Errorf("url = %q", v.URL)
	}
	if v.Header["X-UT-Embed-Error"] != "true" {
		t.Errorf("X-UT-Embed-Error = %q, want true", v.Header["X-UT-Embed-Error"])
	}
}

func TestBuildCommand_InvalidPersona(t *testing.T) {
	if _, err := runCLI(t, "--persona", "desktop", "build", "GET", "/"); err == nil {
		t.Error("expected error for unknown persona")
	}
}

func TestProfilesCommand(t *testing.T) {
	out, err := runCLI(t, "profiles", "-o", "json")
	if err != nil {
		t.Fatalf("profiles failed: %v", err)
	}
	if got := gjson.Get(out, "hosts.ps").String(); got != "https://utas.s2.fut.ea.com" {
		t.Errorf("hosts.ps = %q", got)
	}
	if got := gjson.Get(out, "hosts.xbox").String(); got != "https://utas.fut.ea.com" {
		t.Errorf("hosts.xbox = %q", got)
	}
	if got := gjson.Get(out, "profiles.1.persona").String(); got != "Mobile" {
		t.Errorf("profiles.1.persona = %q, want Mobile", got)
	}
	if got := gjson.Get(out, "protocol.X-UT-SID").String(); got != "{sid}" {
		t.Errorf("protocol X-UT-SID = %q, want {sid}", got)
	}
}

func TestSendCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"credits":500,"sid":"` + r.Header.Get("X-UT-SID") + `"}`))
	}))
	defer srv.Close()

	for _, transport := range []string{"nethttp", "fasthttp"} {
		t.Run(transport, func(t *testing.T) {
			out, err := runCLI(t, "--transport", transport, "--sid", "s-1",
				"send", "GET", srv.URL+"/ut/game/fifa/user/credits", "--select", "credits")
			if err != nil {
				t.Fatalf("send failed: %v", err)
			}
			if strings.TrimSpace(out) != "500" {
				t.Errorf("output = %q, want 500", out)
			}
		})
	}
}

func TestRequestFlags_Body(t *testing.T) {
	tests := []struct {
		name    string
		flags   requestFlags
		want    string
		wantErr bool
	}{
		{"nothing", requestFlags{}, "", false},
		{"fields only", requestFlags{fields: []string{"a=1", "b=x"}}, `{"a":1,"b":"x"}`, false},
		{"nested path", requestFlags{fields: []string{"item.id=7"}}, `{"item":{"id":7}}`, false},
		{"data and field", requestFlags{data: `{"a":true}`, fields: []string{"b=[1,2]"}}, `{"a":true,"b":[1,2]}`, false},
		{"empty value", requestFlags{fields: []string{"a="}}, `{"a":""}`, false},
		{"invalid data", requestFlags{data: `{`}, "", true},
		{"missing equals", requestFlags{fields: []string{"a"}}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.body()
			if (err != nil) != tt.wantErr {
				t.Fatalf("body() error = %v, wantErr %v", err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("body() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSplitPair(t *testing.T) {
	name, value, err := splitPair("X-Route=https://h:443?a=b")
	if err != nil || name != "X-Route" || value != "https://h:443?a=b" {
		t.Errorf("splitPair() = %q, %q, %v", name, value, err)
	}
	if _, _, err := splitPair("=value"); err == nil {
		t.Error("splitPair(=value) expected error")
	}
}

func TestPrintResponse(t *testing.T) {
	ex := &forge.Exchange{Response: forgetest.NewStringResponse(200, `{"items":[{"id":1}],"name":"x"}`)}

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"", `{"items":[{"id":1}],"name":"x"}`, false},
		{"name", "x", false},
		{"items", `[{"id":1}]`, false},
		{"missing", "", true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		err := printResponse(&buf, ex, tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("printResponse(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got := strings.TrimSpace(buf.String()); got != tt.want {
			t.Errorf("printResponse(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

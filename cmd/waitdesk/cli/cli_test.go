package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestRootSubcommands(t *testing.T) {
	root := newRootCmd("1.0.0", "abc", "today")

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	sort.Strings(names)

	want := []string{"admin", "config", "db", "mcp", "openapi", "serve", "version", "waitlist"}
	for _, w := range want {
		i := sort.SearchStrings(names, w)
		if i >= len(names) || names[i] != w {
			t.Errorf("missing subcommand %q in %v", w, names)
		}
	}
}

func TestExportFlagsValues(t *testing.T) {
	f := exportFlags{
		search:        "gmail",
		tier:          2,
		sendToCountry: "Ghana",
		dateFrom:      "2024-01-01",
	}
	v := f.values()

	if got := v.Get("search"); got != "gmail" {
		t.Errorf("search = %q", got)
	}
	if got := v.Get("tier"); got != "2" {
		t.Errorf("tier = %q", got)
	}
	if got := v.Get("sendToCountry"); got != "Ghana" {
		t.Errorf("sendToCountry = %q", got)
	}
	if got := v.Get("dateFrom"); got != "2024-01-01" {
		t.Errorf("dateFrom = %q", got)
	}
	for _, key := range []string{"currentApp", "researchFollowUp", "dateTo"} {
		if v.Has(key) {
			t.Errorf("unset flag %q should be omitted", key)
		}
	}

	if got := (exportFlags{}).values(); len(got) != 0 {
		t.Errorf("empty flags produced %v", got)
	}
}

func TestVersionString(t *testing.T) {
	defer func(old string) { appVersion = old }(appVersion)

	tests := []struct {
		in, want string
	}{
		{"", "dev"},
		{"dev", "dev"},
		{"1.2.3", "v1.2.3"},
		{"v1.2.3", "v1.2.3"},
	}
	for _, tt := range tests {
		appVersion = tt.in
		if got := versionString(); got != tt.want {
			t.Errorf("versionString() with %q = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waitdesk.yaml")

	if err := runConfigInit(path, false); err != nil {
		t.Fatalf("init: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "jwt_secret") {
		t.Errorf("config file missing auth section:\n%s", data)
	}

	if err := runConfigInit(path, false); err == nil {
		t.Error("expected error when file exists without --force")
	}
	if err := runConfigInit(path, true); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

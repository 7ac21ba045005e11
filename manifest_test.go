package wdfsdk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadManifest(t *testing.T) {
	dir := writeManifest(t, `
[driver]
id = "com.notrix.virtualdisplay"
name = "Virtual Display"
version = "0.3.1"

[framework]
min-version = "1.15"
max-version = "2.33"

[meta]
channel = "stable"
`)

	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Driver.ID != "com.notrix.virtualdisplay" {
		t.Errorf("ID = %q", m.Driver.ID)
	}
	if m.Driver.Name != "Virtual Display" || m.Driver.Version != "0.3.1" {
		t.Errorf("driver info = %+v", m.Driver)
	}
	if m.Framework.MinVersion != "1.15" || m.Framework.MaxVersion != "2.33" {
		t.Errorf("framework requirement = %+v", m.Framework)
	}
	if m.Meta["channel"] != "stable" {
		t.Errorf("meta = %v", m.Meta)
	}
	if !filepath.IsAbs(m.Dir) {
		t.Errorf("Dir = %q is not absolute", m.Dir)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadManifest(t.TempDir()); err == nil {
			t.Error("expected error for missing driver.toml")
		}
	})
	t.Run("missing driver id", func(t *testing.T) {
		dir := writeManifest(t, "[driver]\nname = \"anonymous\"\n")
		_, err := LoadManifest(dir)
		if err == nil || !strings.Contains(err.Error(), "driver.id is required") {
			t.Errorf("err = %v", err)
		}
	})
	t.Run("malformed toml", func(t *testing.T) {
		dir := writeManifest(t, "[driver\nid =")
		if _, err := LoadManifest(dir); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestCheckFramework(t *testing.T) {
	table := func(version string) *FuncTable {
		v, err := ParseFrameworkVersion(version)
		if err != nil {
			t.Fatal(err)
		}
		return NewFuncTable(v, make([]RawFunc, funcIndexCount))
	}

	tests := []struct {
		name    string
		req     FrameworkRequirement
		loaded  string
		wantErr string
	}{
		{name: "in range", req: FrameworkRequirement{MinVersion: "1.15", MaxVersion: "2.33"}, loaded: "2.0"},
		{name: "at min", req: FrameworkRequirement{MinVersion: "1.15"}, loaded: "1.15"},
		{name: "at max", req: FrameworkRequirement{MinVersion: "1.15", MaxVersion: "2.33"}, loaded: "2.33"},
		{name: "no bounds", req: FrameworkRequirement{}, loaded: "1.0"},
		{
			name: "too old", req: FrameworkRequirement{MinVersion: "2.0"},
			loaded: "1.33", wantErr: "older than required",
		},
		{
			name: "too new", req: FrameworkRequirement{MinVersion: "1.0", MaxVersion: "1.15"},
			loaded: "2.0", wantErr: "newer than supported",
		},
		{
			name: "bad min", req: FrameworkRequirement{MinVersion: "one.two"},
			loaded: "2.0", wantErr: "min-version",
		},
		{
			name: "bad max", req: FrameworkRequirement{MaxVersion: "3"},
			loaded: "2.0", wantErr: "max-version",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Manifest{Driver: DriverInfo{ID: "com.example.x"}, Framework: tt.req}
			err := m.CheckFramework(table(tt.loaded))
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("CheckFramework: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want substring %q", err, tt.wantErr)
			}
		})
	}

	t.Run("nil table", func(t *testing.T) {
		m := &Manifest{}
		if err := m.CheckFramework(nil); err == nil {
			t.Error("expected error for nil table")
		}
	})
}

package hints

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestForStructure(t *testing.T) {
	t.Parallel()

	hint := ForStructure()
	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint should start with hint prefix, got %q", hint)
	}
	if !strings.Contains(hint, "[]()") {
		t.Errorf("hint should mention the end marker, got %q", hint)
	}
}

func TestForTagFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "index.xml")
	tagPath := filepath.Join(dir, "api.tag")
	for _, p := range []string{xmlPath, tagPath} {
		if err := os.WriteFile(p, []byte("<tagfile/>"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	tests := []struct {
		name         string
		path         string
		wantContains string
		wantEmpty    bool
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.tag"), wantContains: "GENERATE_TAGFILE"},
		{name: "xml output instead of tag file", path: xmlPath, wantContains: "XML output"},
		{name: "existing tag file", path: tagPath, wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForTagFile(tt.path)
			if tt.wantEmpty {
				if hint != "" {
					t.Errorf("ForTagFile(%q) = %q, want empty", tt.path, hint)
				}
				return
			}
			if !strings.Contains(hint, tt.wantContains) {
				t.Errorf("ForTagFile(%q) = %q, want containing %q", tt.path, hint, tt.wantContains)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		paths        []string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "suggests user config path",
			paths:        []string{"release.yaml", "/home/u/.config/go-docprep/release.yaml"},
			wantContains: []string{"--config", "or create /home/u/.config/go-docprep/release.yaml"},
		},
		{
			name:         "no user config path",
			paths:        []string{"release.yaml"},
			wantContains: []string{"--config"},
			wantExcludes: []string{"or create"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			for _, want := range tt.wantContains {
				if !strings.Contains(hint, want) {
					t.Errorf("hint %q missing %q", hint, want)
				}
			}
			for _, unwanted := range tt.wantExcludes {
				if strings.Contains(hint, unwanted) {
					t.Errorf("hint %q should not contain %q", hint, unwanted)
				}
			}
		})
	}
}

func TestFormatHints(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints = %q, want %q", got, "\n  hint: a; b")
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}

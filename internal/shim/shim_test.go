package shim

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestTranslatePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`C:\Users\x\v.mpg`, "/mnt/c/Users/x/v.mpg"},
		{`d:\Videos\DVD_OUTPUT_1`, "/mnt/d/Videos/DVD_OUTPUT_1"},
		{`E:/mixed\sep/file.mpg`, "/mnt/e/mixed/sep/file.mpg"},
		{`C:`, "/mnt/c"},
		{"/already/posix", "/already/posix"},
		{`rel\path`, "rel/path"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TranslatePath(tt.in); got != tt.want {
			t.Fatalf("TranslatePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrapQuotesEveryArgument(t *testing.T) {
	s := New("wsl", "")
	got := s.Wrap([]string{"dvdauthor", "-o", "/mnt/c/My Videos/DVD_OUTPUT_1", "-t", `a"b$c.mpg`})
	want := []string{"wsl", "sh", "-lc", `"dvdauthor" "-o" "/mnt/c/My Videos/DVD_OUTPUT_1" "-t" "a\"b\$c.mpg"`}
	if !slices.Equal(got, want) {
		t.Fatalf("Wrap = %q, want %q", got, want)
	}
}

func TestToolName(t *testing.T) {
	tests := map[string]string{
		"dvdauthor":                        "dvdauthor",
		"/usr/local/bin/dvdauthor":         "dvdauthor",
		`C:\Tools\dvdauthor\dvdauthor.exe`: "dvdauthor",
	}
	for in, want := range tests {
		if got := ToolName(in); got != want {
			t.Fatalf("ToolName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAvailable(t *testing.T) {
	binDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(binDir, "fakewsl"), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", binDir)

	if !New("fakewsl", "").Available() {
		t.Fatal("expected stub launcher to be available")
	}
	if New("missing-launcher", "").Available() {
		t.Fatal("expected missing launcher to be unavailable")
	}
	if New("", "").Available() {
		t.Fatal("expected empty launcher to be unavailable")
	}
}

package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// StubBinaries writes one /bin/sh script per entry (name -> script body) into
// binDir and replaces PATH with binDir alone, so host installs of the same
// tools stay invisible. Scripts must call external programs by absolute path.
func StubBinaries(t testing.TB, binDir string, stubs map[string]string) string {
	t.Helper()

	if binDir == "" {
		binDir = t.TempDir()
	}
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	for name, body := range stubs {
		WriteScript(t, filepath.Join(binDir, name), body)
	}
	setenv(t, "PATH", binDir)
	return binDir
}

// WriteScript writes an executable /bin/sh script with the given body.
func WriteScript(t testing.TB, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", path, err)
	}
}

func setenv(t testing.TB, key, value string) {
	t.Helper()
	if tt, ok := t.(*testing.T); ok {
		tt.Setenv(key, value)
		return
	}
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("set %s: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

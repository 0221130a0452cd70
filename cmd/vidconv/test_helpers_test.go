package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"vidconv/internal/testsupport"
)

// ffmpegStub writes a placeholder to the destination (last argument) and
// fails for sources whose name contains "broken".
const ffmpegStub = `for last; do :; done
case "$3" in
*broken*) echo "Invalid data found when processing input" >&2; exit 1;;
esac
printf 'converted' > "$last"
exit 0`

const dvdauthorStub = `for last; do :; done
if [ "$last" = "-T" ]; then /bin/mkdir -p "$2/VIDEO_TS"; fi
exit 0`

type cliTestEnv struct {
	baseDir    string
	configPath string
	stateDir   string
	outputDir  string
	sourceDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("VIDCONV_FFMPEG", "")
	t.Setenv("VIDCONV_DVDAUTHOR", "")
	testsupport.StubBinaries(t, filepath.Join(base, "bin"), map[string]string{
		"ffmpeg":    ffmpegStub,
		"dvdauthor": dvdauthorStub,
	})

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(homeDir, ".config", "vidconv", "config.toml"),
		stateDir:   filepath.Join(base, "state"),
		outputDir:  filepath.Join(base, "out"),
		sourceDir:  filepath.Join(base, "videos"),
	}
	for _, dir := range []string{env.outputDir, env.sourceDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	writeTestConfig(t, env)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
state_dir = %q
log_dir = %q
output_dir = %q

[tools]
shim = ""
shim_workdir = %q
kill_grace_seconds = 1
`,
		env.stateDir,
		filepath.Join(env.stateDir, "logs"),
		env.outputDir,
		env.baseDir,
	)
	if err := os.MkdirAll(filepath.Dir(env.configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func (env *cliTestEnv) videos(t *testing.T, names ...string) []string {
	t.Helper()
	return testsupport.WriteVideos(t, env.sourceDir, names...)
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

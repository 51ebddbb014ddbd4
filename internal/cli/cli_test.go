package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/observability"
)

const (
	testForestA = `[[1, 2, 3, 4, 5], [[1, 2], [2, 3], [4, 5]]]`
	testForestB = `[[10, 20, 30, 40, 50], [[40, 50], [50, 10], [20, 30]]]`
	testStar    = `[[1, 2, 3, 4, 5], [[1, 2], [1, 3], [1, 4]]]`
)

// runCLI executes the root command with args in an isolated environment and
// returns what the command printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCLIWithLogs(t, args...)
	return out, err
}

// runCLIWithLogs is runCLI that also returns the log output.
func runCLIWithLogs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	var out, logs bytes.Buffer
	prev := stdout
	stdout = &out
	t.Cleanup(func() { stdout = prev })

	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	if cerr := c.Close(); cerr != nil {
		t.Fatalf("Close() error: %v", cerr)
	}
	return out.String(), logs.String(), err
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMatchCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.json", testForestA)
	b := writeTestFile(t, dir, "b.json", testForestB)
	mapping := filepath.Join(dir, "map.json")

	out, err := runCLI(t, "match", a, b, "-o", mapping)
	if err != nil {
		t.Fatalf("match error: %v", err)
	}
	if !strings.Contains(out, "isomorphic") {
		t.Errorf("match output = %q", out)
	}

	out, err = runCLI(t, "check", a, b, mapping)
	if err != nil {
		t.Fatalf("check error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "valid isomorphism") {
		t.Errorf("check output = %q", out)
	}
}

func TestMatchCommandNotIsomorphic(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.json", testForestA)
	star := writeTestFile(t, dir, "star.json", testStar)

	_, err := runCLI(t, "match", a, star)
	if got := errors.ExitCode(err); got != 1 {
		t.Errorf("exit code = %d, want 1 (err: %v)", got, err)
	}
}

func TestMatchCommandMissingFile(t *testing.T) {
	_, err := runCLI(t, "match", "absent-a.json", "absent-b.json")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
	if got := errors.ExitCode(err); got != 2 {
		t.Errorf("exit code = %d, want 2", got)
	}
}

func TestTreesCommand(t *testing.T) {
	a := writeTestFile(t, t.TempDir(), "a.json", testForestA)

	out, err := runCLI(t, "trees", a, "--json")
	if err != nil {
		t.Fatalf("trees error: %v", err)
	}
	if !strings.Contains(out, `"trees"`) || !strings.Contains(out, `"center"`) {
		t.Errorf("trees --json output = %q", out)
	}
}

func TestProveVerifyCommands(t *testing.T) {
	dir := t.TempDir()
	forest := writeTestFile(t, dir, "forest.json", testForestA)
	keys := filepath.Join(dir, "keys.json")
	secret := filepath.Join(dir, "secret.json")
	transcript := filepath.Join(dir, "transcript.json")

	if _, err := runCLI(t, "keygen", forest, "-o", keys, "--secret-out", secret, "--seed", "5"); err != nil {
		t.Fatalf("keygen error: %v", err)
	}
	if _, err := runCLI(t, "prove", keys, "--secret", secret, "-c", "beef", "-o", transcript); err != nil {
		t.Fatalf("prove error: %v", err)
	}
	out, err := runCLI(t, "verify", keys, transcript)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if !strings.Contains(out, "accepted") {
		t.Errorf("verify output = %q", out)
	}

	// A transcript for other keys must be rejected.
	otherKeys := writeTestFile(t, dir, "other.json", "["+testStar+","+testStar+"]")
	if _, err := runCLI(t, "verify", otherKeys, transcript); !errors.Is(err, errors.ErrCodeProofRejected) {
		t.Errorf("verify(other keys) error = %v, want PROOF_REJECTED", err)
	}
}

func TestRenderCommandDOT(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.json", testForestA)
	b := writeTestFile(t, dir, "b.json", testForestB)

	if _, err := runCLI(t, "render", a, "-f", "dot", "--against", b); err != nil {
		t.Fatalf("render error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "a.dot"))
	if err != nil {
		t.Fatalf("render did not write a.dot: %v", err)
	}
	if !strings.Contains(string(data), "cluster_left") {
		t.Errorf("a.dot = %q, want a pair drawing", data)
	}

	if _, err := runCLI(t, "render", a, "-f", "gif"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("render -f gif error = %v, want INVALID_INPUT", err)
	}
}

func TestConfigAndMetricsFlags(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.json", testForestA)
	b := writeTestFile(t, dir, "b.json", testForestB)
	metrics := filepath.Join(dir, "arbor.prom")

	if _, err := runCLI(t, "--metrics-file", metrics, "--no-cache", "match", a, b); err != nil {
		t.Fatalf("match error: %v", err)
	}
	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(data), `arbor_match_total{result="isomorphic"} 1`) {
		t.Errorf("metrics = %s", data)
	}

	bad := writeTestFile(t, dir, "bad.toml", "[proof]\nrounds = 0\n")
	if _, err := runCLI(t, "--config", bad, "match", a, b); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad config error = %v, want INVALID_CONFIG", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q, want a directory ending in %q", out, appName)
	}
}

func TestShellCompletion(t *testing.T) {
	out, err := runCLI(t, "__complete", "render", "--format", "")
	if err != nil {
		t.Fatalf("complete --format error: %v", err)
	}
	for _, want := range []string{"dot", "svg", "pdf", "png"} {
		if !strings.Contains(out, want+"\n") {
			t.Errorf("format completion missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "__complete", "match", "")
	if err != nil {
		t.Fatalf("complete match error: %v", err)
	}
	if !strings.Contains(out, "json\n") || !strings.Contains(out, "toml\n") {
		t.Errorf("match should complete to .json and .toml files:\n%s", out)
	}

	out, err = runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion bash error: %v", err)
	}
	if !strings.Contains(out, "arbor") {
		t.Error("bash completion script should mention arbor")
	}
}

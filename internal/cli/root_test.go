package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/danieljhkim/hyprnav/internal/hypr"
	"github.com/danieljhkim/hyprnav/internal/navigator"
)

// fakeTransport serves a fixed Hyprland snapshot and records dispatches.
type fakeTransport struct {
	replies    map[string]string
	failWith   error
	dispatched []string
}

func (f *fakeTransport) Request(_ context.Context, command string, jsonReply bool) ([]byte, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if strings.HasPrefix(command, "dispatch ") {
		f.dispatched = append(f.dispatched, command)
		return []byte("ok"), nil
	}
	return []byte(f.replies[command]), nil
}

func (f *fakeTransport) Name() string {
	return "fake"
}

func dualMonitor(current string) *fakeTransport {
	return &fakeTransport{replies: map[string]string{
		"monitors":        `[{"name":"HDMI-A-2","focused":false},{"name":"DP-4","focused":true}]`,
		"activeworkspace": fmt.Sprintf(`{"name":%q}`, current),
		"workspaces": `[
			{"id":1,"name":"1","monitor":"DP-4","windows":2},
			{"id":-98,"name":"chat","monitor":"HDMI-A-2","windows":1},
			{"id":3,"name":"3","monitor":"DP-4","windows":1}
		]`,
	}}
}

const hyprConf = `monitor=DP-4,preferred,auto,1
workspace=1,monitor:DP-4
workspace=name:chat,monitor:HDMI-A-2
workspace=3,monitor:DP-4
`

// setupTestEnv points every hyprnav path into a temporary directory and
// installs transport. conf is written as the Hyprland config unless empty.
func setupTestEnv(t *testing.T, conf string, transport hypr.Transport) (string, *[]string) {
	t.Helper()
	tmpDir := t.TempDir()

	confPath := filepath.Join(tmpDir, "hypr", "hyprland.conf")
	if conf != "" {
		if err := os.MkdirAll(filepath.Dir(confPath), 0755); err != nil {
			t.Fatalf("Failed to create hypr dir: %v", err)
		}
		if err := os.WriteFile(confPath, []byte(conf), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
	}
	t.Setenv("HYPRNAV_HYPR_CONFIG", confPath)
	t.Setenv("HYPRNAV_ROOT", filepath.Join(tmpDir, "hyprnav"))
	t.Setenv("HYPRNAV_LOG_FILE", filepath.Join(tmpDir, "cache", "hyprnav.log"))
	t.Setenv("HYPRNAV_DEBUG", "1")

	var kinds []string
	old := newTransport
	newTransport = func(kind, hyprctl string) (hypr.Transport, error) {
		kinds = append(kinds, kind)
		if transport == nil {
			return nil, &hypr.QueryError{Query: "connect", ExitCode: 1, Err: hypr.ErrUnavailable}
		}
		return transport, nil
	}
	t.Cleanup(func() { newTransport = old })
	return tmpDir, &kinds
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	output, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(output, "hyprnav") {
		t.Error("expected help to contain 'hyprnav'")
	}
	if !strings.Contains(output, "HYPRNAV_HYPR_CONFIG") {
		t.Error("expected help to document HYPRNAV_HYPR_CONFIG")
	}
}

func TestRootCommand_Version(t *testing.T) {
	SetVersion("1.2.3")
	defer SetVersion("dev")

	output, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if output != "1.2.3\n" {
		t.Errorf("expected version output %q, got %q", "1.2.3\n", output)
	}
}

func TestSetVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"normal version", "1.2.3", "1.2.3"},
		{"empty version", "", "1.2.3"}, // Should not change if empty
		{"dev version", "dev", "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersion(tt.version)
			if rootCmd.Version != tt.want {
				t.Errorf("SetVersion(%q) = %q, want %q", tt.version, rootCmd.Version, tt.want)
			}
		})
	}
}

func TestRootCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no direction", nil},
		{"two directions", []string{"next", "prev"}},
		{"unknown direction", []string{"up"}},
		{"unknown flag", []string{"--wrap", "next"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := dualMonitor("1")
			setupTestEnv(t, hyprConf, transport)

			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected usage error")
			}
			if !errors.Is(err, errUsage) {
				t.Errorf("expected errUsage, got %v", err)
			}
			if code := ExitCode(err); code != exitUsage {
				t.Errorf("ExitCode(%v) = %d, want %d", err, code, exitUsage)
			}
			if len(transport.dispatched) != 0 {
				t.Errorf("usage errors must not dispatch, got %v", transport.dispatched)
			}
		})
	}
}

func TestRootCommand_Navigate(t *testing.T) {
	tests := []struct {
		name     string
		conf     string
		current  string
		dir      string
		wantCmds []string
	}{
		{"next", hyprConf, "1", "next", []string{"dispatch workspace 3"}},
		{"prev", hyprConf, "3", "prev", []string{"dispatch workspace 1"}},
		{"next at end does not wrap", hyprConf, "3", "next", nil},
		{"unlocated jumps to first", hyprConf, "chat", "prev", []string{"dispatch workspace 1"}},
		{"missing config is a silent no-op", "", "1", "next", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := dualMonitor(tt.current)
			setupTestEnv(t, tt.conf, transport)

			output, err := execute(t, tt.dir)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if output != "" {
				t.Errorf("expected no output, got %q", output)
			}
			if !reflect.DeepEqual(transport.dispatched, tt.wantCmds) {
				t.Errorf("dispatched %v, want %v", transport.dispatched, tt.wantCmds)
			}
		})
	}
}

func TestRootCommand_NumberedWorkspacesWithDefaultName(t *testing.T) {
	// Hyprland reports numbered workspaces under their defaultName.
	transport := &fakeTransport{replies: map[string]string{
		"monitors":        `[{"name":"DP-4","focused":true}]`,
		"activeworkspace": `{"id":1,"name":"web"}`,
		"workspaces": `[
			{"id":1,"name":"web","monitor":"DP-4","windows":1},
			{"id":2,"name":"mail","monitor":"DP-4","windows":2}
		]`,
	}}
	setupTestEnv(t, "workspace=1,defaultName:web\nworkspace=2,defaultName:mail\n", transport)

	if _, err := execute(t, "next"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !reflect.DeepEqual(transport.dispatched, []string{"dispatch workspace 2"}) {
		t.Errorf("dispatched %v, want [dispatch workspace 2]", transport.dispatched)
	}
}

func TestRootCommand_QuietRunLeavesNoLogFile(t *testing.T) {
	transport := dualMonitor("3")
	tmpDir, _ := setupTestEnv(t, hyprConf, transport)
	t.Setenv("HYPRNAV_DEBUG", "")

	if _, err := execute(t, "next"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(transport.dispatched) != 0 {
		t.Errorf("expected boundary no-op, got %v", transport.dispatched)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "cache")); !os.IsNotExist(err) {
		t.Errorf("expected no log directory, stat error = %v", err)
	}
}

func TestLazyLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "cache", "hypr", "hyprnav.log")

	sink := &lazyLogFile{path: path}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file created before first write: %v", err)
	}
	if _, err := sink.Write([]byte("line\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "line\n" {
		t.Errorf("log contents = %q, %v", data, err)
	}

	// A path under a regular file cannot be created; writes are dropped.
	blocked := &lazyLogFile{path: filepath.Join(path, "nested.log")}
	if n, err := blocked.Write([]byte("x")); n != 1 || err != nil {
		t.Errorf("Write() = %d, %v; want 1, nil", n, err)
	}
	if err := blocked.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestRootCommand_WritesDebugLog(t *testing.T) {
	tmpDir, _ := setupTestEnv(t, hyprConf, dualMonitor("1"))

	if _, err := execute(t, "next"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(tmpDir, "cache", "hyprnav.log"))
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "navigation finished") {
		t.Errorf("expected decision in log, got %q", data)
	}
}

func TestRootCommand_QueryFailurePropagatesExitCode(t *testing.T) {
	transport := &fakeTransport{failWith: &hypr.QueryError{Query: "monitors", ExitCode: 7, Err: errors.New("exit status 7")}}
	setupTestEnv(t, hyprConf, transport)

	_, err := execute(t, "next")
	if err == nil {
		t.Fatal("expected error when compositor query fails")
	}
	if code := ExitCode(err); code != 7 {
		t.Errorf("ExitCode = %d, want 7", code)
	}
}

func TestRootCommand_NoTransport(t *testing.T) {
	setupTestEnv(t, hyprConf, nil)

	_, err := execute(t, "prev")
	if !errors.Is(err, hypr.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if code := ExitCode(err); code != 1 {
		t.Errorf("ExitCode = %d, want 1", code)
	}
}

func TestRootCommand_SettingsSelectTransportAndOrder(t *testing.T) {
	transport := dualMonitor("3")
	tmpDir, kinds := setupTestEnv(t, "workspace=1\n", transport)

	extra := filepath.Join(tmpDir, "workspaces.conf")
	if err := os.WriteFile(extra, []byte("workspace=3\nworkspace=1\n"), 0644); err != nil {
		t.Fatalf("Failed to write extra config: %v", err)
	}
	settingsDir := filepath.Join(tmpDir, "hyprnav")
	if err := os.MkdirAll(settingsDir, 0755); err != nil {
		t.Fatalf("Failed to create settings dir: %v", err)
	}
	settings := fmt.Sprintf("transport: socket\norder_files:\n  - %s\n", extra)
	if err := os.WriteFile(filepath.Join(settingsDir, "config.yaml"), []byte(settings), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	if _, err := execute(t, "prev"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !reflect.DeepEqual(*kinds, []string{"socket"}) {
		t.Errorf("transport kinds = %v, want [socket]", *kinds)
	}
	// Order is 1, 3: prev from 3 lands on 1.
	if !reflect.DeepEqual(transport.dispatched, []string{"dispatch workspace 1"}) {
		t.Errorf("dispatched %v", transport.dispatched)
	}
}

func TestRootCommand_BrokenSettingsAreIgnored(t *testing.T) {
	transport := dualMonitor("1")
	tmpDir, kinds := setupTestEnv(t, hyprConf, transport)

	settingsDir := filepath.Join(tmpDir, "hyprnav")
	if err := os.MkdirAll(settingsDir, 0755); err != nil {
		t.Fatalf("Failed to create settings dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(settingsDir, "config.yaml"), []byte("transport: [\n"), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	if _, err := execute(t, "next"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !reflect.DeepEqual(*kinds, []string{""}) {
		t.Errorf("expected default transport, got %v", *kinds)
	}
	if len(transport.dispatched) != 1 {
		t.Errorf("expected one dispatch, got %v", transport.dispatched)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"query error", fmt.Errorf("wrapped: %w", &hypr.QueryError{ExitCode: 42, Err: errors.New("x")}), 42},
		{"invalid direction", fmt.Errorf("%w: up", navigator.ErrInvalidDirection), exitUsage},
		{"usage", fmt.Errorf("%w: accepts 1 arg(s), received 0", errUsage), exitUsage},
		{"unmarked parser wording", errors.New("accepts 1 arg(s), received 0"), exitError},
		{"other", errors.New("boom"), exitError},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("%s: ExitCode() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestFormatError(t *testing.T) {
	got := formatError(errors.New("hyprland is not reachable"), false)
	if got != "✗ hyprland is not reachable" {
		t.Errorf("formatError() = %q", got)
	}

	var buf bytes.Buffer
	PrintError(&buf, errors.New("boom"))
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("PrintError wrote %q", buf.String())
	}
}

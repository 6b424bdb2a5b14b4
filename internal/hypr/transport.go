package hypr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Transport carries one request to Hyprland and returns the raw reply.
// command uses hyprctl's vocabulary, e.g. "monitors" or "dispatch workspace 3".
type Transport interface {
	Request(ctx context.Context, command string, jsonReply bool) ([]byte, error)
	Name() string
}

// Runner runs an external command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	stdout, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return stdout, ee.Stderr, err
		}
		return stdout, nil, err
	}
	return stdout, nil, nil
}

// exitNotFound is the shell's status for a missing command.
const exitNotFound = 127

// ExecTransport talks to Hyprland by running hyprctl.
type ExecTransport struct {
	Runner Runner
	Binary string
}

// NewExecTransport creates an ExecTransport for the given hyprctl binary.
func NewExecTransport(binary string) *ExecTransport {
	if binary == "" {
		binary = "hyprctl"
	}
	return &ExecTransport{Runner: execRunner{}, Binary: binary}
}

// Name returns the transport name.
func (t *ExecTransport) Name() string {
	return "exec"
}

// Request runs hyprctl with command split into words.
func (t *ExecTransport) Request(ctx context.Context, command string, jsonReply bool) ([]byte, error) {
	var args []string
	if jsonReply {
		args = append(args, "-j")
	}
	args = append(args, strings.Fields(command)...)

	stdout, stderr, err := t.Runner.Run(ctx, t.Binary, args...)
	if err != nil {
		code := exitCodeOf(err, 1)
		if errors.Is(err, exec.ErrNotFound) {
			code = exitNotFound
		}
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return nil, &QueryError{Query: command, ExitCode: code, Err: err}
	}
	return stdout, nil
}

// SocketTransport talks to Hyprland's request socket directly.
type SocketTransport struct {
	Path string
	Dial func(ctx context.Context, network, addr string) (net.Conn, error)
}

// NewSocketTransport creates a SocketTransport for the given socket path.
func NewSocketTransport(path string) *SocketTransport {
	var d net.Dialer
	return &SocketTransport{Path: path, Dial: d.DialContext}
}

// SocketPath returns the request socket of the running Hyprland instance.
func SocketPath() (string, error) {
	sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if sig == "" {
		return "", fmt.Errorf("%w: HYPRLAND_INSTANCE_SIGNATURE is not set", ErrUnavailable)
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = filepath.Join("/run/user", fmt.Sprint(os.Getuid()))
	}
	return filepath.Join(runtimeDir, "hypr", sig, ".socket.sock"), nil
}

// Name returns the transport name.
func (t *SocketTransport) Name() string {
	return "socket"
}

// Request writes command to a fresh connection and reads until Hyprland
// closes it.
func (t *SocketTransport) Request(ctx context.Context, command string, jsonReply bool) ([]byte, error) {
	conn, err := t.Dial(ctx, "unix", t.Path)
	if err != nil {
		return nil, &QueryError{Query: command, ExitCode: 1, Err: fmt.Errorf("cannot open Hyprland socket %s: %w", t.Path, err)}
	}
	defer conn.Close()

	req := command
	if jsonReply {
		req = "j/" + command
	}
	if _, err := conn.Write([]byte(req)); err != nil {
		return nil, &QueryError{Query: command, ExitCode: 1, Err: err}
	}

	reply, err := io.ReadAll(conn)
	if err != nil {
		return nil, &QueryError{Query: command, ExitCode: 1, Err: err}
	}
	return reply, nil
}

var lookPath = exec.LookPath

// Transport kinds accepted by NewTransport.
const (
	KindAuto   = "auto"
	KindExec   = "exec"
	KindSocket = "socket"
)

// NewTransport builds the transport named by kind.
// "auto" prefers hyprctl on PATH and falls back to the socket.
func NewTransport(kind, hyprctl string) (Transport, error) {
	switch kind {
	case KindExec:
		return NewExecTransport(hyprctl), nil
	case KindSocket:
		path, err := SocketPath()
		if err != nil {
			return nil, &QueryError{Query: "connect", ExitCode: 1, Err: err}
		}
		return NewSocketTransport(path), nil
	case "", KindAuto:
		binary := hyprctl
		if binary == "" {
			binary = "hyprctl"
		}
		if _, err := lookPath(binary); err == nil {
			return NewExecTransport(binary), nil
		}
		if path, err := SocketPath(); err == nil {
			return NewSocketTransport(path), nil
		}
		return nil, &QueryError{Query: "connect", ExitCode: 1, Err: ErrUnavailable}
	default:
		return nil, fmt.Errorf("unknown transport %q", kind)
	}
}

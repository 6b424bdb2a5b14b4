package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/danieljhkim/hyprnav/internal/config"
	"github.com/danieljhkim/hyprnav/internal/fsops"
	"github.com/danieljhkim/hyprnav/internal/hypr"
	"github.com/danieljhkim/hyprnav/internal/navigator"
)

// newTransport is swapped out in tests.
var newTransport = hypr.NewTransport

// env holds everything one invocation needs.
type env struct {
	navigator *navigator.Navigator
	logFile   io.Closer
}

func (e *env) close() {
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}

// newEnv wires the navigator with real implementations of all dependencies.
// Only an unreachable compositor is reported as an error; a broken
// settings file or log file is logged or ignored.
func newEnv() (*env, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	logger, logFile := newLogger(paths.LogFile)
	e := &env{logFile: logFile}

	fs := fsops.NewRealFS()
	settings, err := config.LoadSettings(fs, paths.Settings)
	if err != nil {
		logger.Warn("ignoring settings file", "path", paths.Settings, "error", err)
		settings = config.Settings{}
	}

	transport, err := newTransport(settings.Transport, settings.Hyprctl)
	if err != nil {
		logger.Error("compositor unavailable", "error", err)
		e.close()
		return nil, err
	}
	logger.Debug("using transport", "transport", transport.Name())

	client := hypr.NewClient(transport, logger)
	e.navigator = navigator.New(fs, paths.OrderSources(settings), client, client, logger)
	return e, nil
}

// newLogger returns a text logger appending to path. The level is Debug
// when HYPRNAV_DEBUG is set and Warn otherwise. The file is only created
// once a record is written, so a quiet run leaves the disk untouched.
func newLogger(path string) (*slog.Logger, io.Closer) {
	level := slog.LevelWarn
	if os.Getenv("HYPRNAV_DEBUG") != "" {
		level = slog.LevelDebug
	}
	sink := &lazyLogFile{path: path}
	return slog.New(slog.NewTextHandler(sink, &slog.HandlerOptions{Level: level})), sink
}

// lazyLogFile opens its file on the first Write. If the file cannot be
// opened, every write is dropped.
type lazyLogFile struct {
	path    string
	f       *os.File
	openErr error
}

func (l *lazyLogFile) Write(p []byte) (int, error) {
	if l.f == nil && l.openErr == nil {
		l.f, l.openErr = openLogFile(l.path)
	}
	if l.openErr != nil {
		return len(p), nil
	}
	return l.f.Write(p)
}

func (l *lazyLogFile) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

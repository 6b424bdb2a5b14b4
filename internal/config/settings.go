package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/hyprnav/internal/fsops"
)

// Transport names accepted in the settings file.
const (
	TransportAuto   = "auto"
	TransportExec   = "exec"
	TransportSocket = "socket"
)

// Settings holds the optional hyprnav settings file.
// The zero value is a valid configuration.
type Settings struct {
	// OrderFiles are extra files scanned for workspace= rules, after HyprConfig.
	OrderFiles []string `yaml:"order_files"`

	// Transport selects how the compositor is reached: auto, exec or socket.
	Transport string `yaml:"transport"`

	// Hyprctl overrides the hyprctl binary used by the exec transport.
	Hyprctl string `yaml:"hyprctl"`
}

// LoadSettings reads the settings file at path.
// A missing or empty file yields zero Settings.
func LoadSettings(fs fsops.FS, path string) (Settings, error) {
	b, err := fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("read settings file: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return Settings{}, nil
	}

	var s Settings
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Settings{}, fmt.Errorf("parse yaml: %w", err)
	}
	s.Normalize()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Normalize trims values, expands "~/" in paths and defaults the transport.
func (s *Settings) Normalize() {
	files := make([]string, 0, len(s.OrderFiles))
	for _, f := range s.OrderFiles {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		files = append(files, fsops.ExpandHome(f))
	}
	s.OrderFiles = files
	s.Transport = strings.ToLower(strings.TrimSpace(s.Transport))
	if s.Transport == "" {
		s.Transport = TransportAuto
	}
	s.Hyprctl = fsops.ExpandHome(strings.TrimSpace(s.Hyprctl))
}

// Validate reports settings that cannot be honored.
func (s Settings) Validate() error {
	switch s.Transport {
	case "", TransportAuto, TransportExec, TransportSocket:
		return nil
	default:
		return fmt.Errorf("invalid settings: transport must be one of: auto, exec, socket (got %q)", s.Transport)
	}
}

// OrderSources returns every file scanned for workspace= rules, in order.
func (p Paths) OrderSources(s Settings) []string {
	return append([]string{p.HyprConfig}, s.OrderFiles...)
}

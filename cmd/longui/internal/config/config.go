// Package config loads the optional longui.yaml or longui.toml project file
// and resolves defaults for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	lerrors "github.com/go-longui/longui/pkg/errors"
)

// File names searched for, in order of preference.
const (
	YAMLFile = "longui.yaml"
	TOMLFile = "longui.toml"
)

// Defaults applied by Resolve.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultZoom   = 1
)

// Config represents the optional project configuration.
type Config struct {
	App    AppConfig    `yaml:"app" toml:"app"`
	Window WindowConfig `yaml:"window" toml:"window"`
	Log    LogConfig    `yaml:"log" toml:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty" toml:"name"`
}

// WindowConfig is the size descriptions are laid out in.
type WindowConfig struct {
	Width  float32 `yaml:"width,omitempty" toml:"width"`
	Height float32 `yaml:"height,omitempty" toml:"height"`
	Zoom   float32 `yaml:"zoom,omitempty" toml:"zoom"`
}

// LogConfig controls diagnostics output.
type LogConfig struct {
	Level   string `yaml:"level,omitempty" toml:"level"`
	Verbose bool   `yaml:"verbose,omitempty" toml:"verbose"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	Source     string
	ModulePath string
	AppName    string
	Width      float32
	Height     float32
	Zoom       float32
	Level      lerrors.Level
	Verbose    bool
}

// LoadOptional reads longui.yaml or, failing that, longui.toml from dir.
// It returns an empty Config and no source when neither exists.
func LoadOptional(dir string) (*Config, string, error) {
	var cfg Config
	for _, name := range []string{YAMLFile, TOMLFile} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("failed to read %s: %w", name, err)
		}
		if name == YAMLFile {
			err = yaml.Unmarshal(data, &cfg)
		} else {
			err = toml.Unmarshal(data, &cfg)
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return &cfg, path, nil
	}
	return &cfg, "", nil
}

// Resolve loads the project file (if present) and resolves defaults. A
// missing go.mod is not an error; the app name then falls back to the
// directory name.
func Resolve(dir string) (*Resolved, error) {
	cfg, source, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	level, err := lerrors.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	r := &Resolved{
		Root:       dir,
		Source:     source,
		ModulePath: modulePath,
		AppName:    appName,
		Width:      orDefault(cfg.Window.Width, DefaultWidth),
		Height:     orDefault(cfg.Window.Height, DefaultHeight),
		Zoom:       orDefault(cfg.Window.Zoom, DefaultZoom),
		Level:      level,
		Verbose:    cfg.Log.Verbose,
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// FindProjectRoot walks up from dir to the first directory holding a
// project file or go.mod.
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range []string{YAMLFile, TOMLFile, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s, %s or go.mod found", YAMLFile, TOMLFile)
		}
		dir = parent
	}
}

func (r *Resolved) validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("window size must be positive (got %gx%g)", r.Width, r.Height)
	}
	if r.Zoom <= 0 {
		return fmt.Errorf("window.zoom must be positive (got %g)", r.Zoom)
	}
	return nil
}

func orDefault(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if modName, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "longui_app"
	}
	return base
}

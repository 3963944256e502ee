// Package config loads mindweaver settings from defaults, a YAML file, MINDWEAVER_
// environment variables and command line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"mindweaver/internal/diagram"
)

// FileName is looked up in the home directory when no --config is given.
const FileName = ".mindweaver.yaml"

const EnvPrefix = "MINDWEAVER_"

type Config struct {
	Confirmations bool             `koanf:"confirmations"`
	Mouse         MouseConfig      `koanf:"mouse"`
	View          ViewConfig       `koanf:"view"`
	Spawn         SpawnConfig      `koanf:"spawn"`
	Hit           HitConfig        `koanf:"hit"`
	Connection    ConnectionConfig `koanf:"connection"`
	Log           LogConfig        `koanf:"log"`

	// FileUsed is the config file that was read, if any.
	FileUsed string `koanf:"-"`
}

type MouseConfig struct {
	// Hover asks the terminal for motion events without a pressed button.
	Hover bool `koanf:"hover"`
}

type ViewConfig struct {
	CellWidth    float64 `koanf:"cell_width"`
	CellHeight   float64 `koanf:"cell_height"`
	InitialScale float64 `koanf:"initial_scale"`
	PanStep      float64 `koanf:"pan_step"`
}

type SpawnConfig struct {
	OriginX float64 `koanf:"origin_x"`
	OriginY float64 `koanf:"origin_y"`
	Jitter  float64 `koanf:"jitter"`

	// Color and Size name the appearance of new nodes.
	Color string `koanf:"color"`
	Size  string `koanf:"size"`
}

type HitConfig struct {
	PortRadius    float64 `koanf:"port_radius"`
	EdgeTolerance float64 `koanf:"edge_tolerance"`
}

// ConnectionConfig is the style given to new connections.
type ConnectionConfig struct {
	Color       string `koanf:"color"`
	StrokeWidth int    `koanf:"stroke_width"`
	LineStyle   string `koanf:"line_style"`
	Arrow       string `koanf:"arrow"`
}

type LogConfig struct {
	File  string `koanf:"file"`
	Level string `koanf:"level"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"confirmations":           true,
		"mouse.hover":             true,
		"view.cell_width":         8.0,
		"view.cell_height":        16.0,
		"view.initial_scale":      1.0,
		"view.pan_step":           32.0,
		"spawn.origin_x":          5000.0,
		"spawn.origin_y":          5000.0,
		"spawn.jitter":            200.0,
		"spawn.color":             diagram.ColorBlue.String(),
		"spawn.size":              diagram.DefaultSize.String(),
		"hit.port_radius":         8.0,
		"hit.edge_tolerance":      6.0,
		"connection.color":        diagram.DefaultEdgeColor,
		"connection.stroke_width": diagram.DefaultStrokeWidth,
		"connection.line_style":   diagram.LineSolid.String(),
		"connection.arrow":        diagram.ArrowHead.String(),
		"log.file":                "",
		"log.level":               "info",
	}
}

// DefaultPath is ~/.mindweaver.yaml, or "" when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load builds the configuration. An explicit cfgFile must exist; the default file is
// optional. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := ""
	if cfgFile != "" {
		cfgFile = expandHome(cfgFile)
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
		}
		used = cfgFile
	} else if p := DefaultPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			used = p
		}
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// MINDWEAVER_VIEW__CELL_WIDTH -> view.cell_width
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			switch f.Name {
			case "log-file":
				return "log.file", posflag.FlagVal(flags, f)
			case "log-level":
				return "log.level", posflag.FlagVal(flags, f)
			case "no-confirm":
				v, _ := flags.GetBool("no-confirm")
				return "confirmations", !v
			}
			return "", nil
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = used
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.View.CellWidth <= 0 || c.View.CellHeight <= 0 {
		return fmt.Errorf("view.cell_width and view.cell_height must be positive")
	}
	if c.View.InitialScale < 0.1 || c.View.InitialScale > 10 {
		return fmt.Errorf("view.initial_scale must be between 0.1 and 10, got %v", c.View.InitialScale)
	}
	if c.Spawn.Jitter < 0 {
		return fmt.Errorf("spawn.jitter must not be negative")
	}
	if c.Hit.PortRadius < 0 || c.Hit.EdgeTolerance < 0 {
		return fmt.Errorf("hit distances must not be negative")
	}
	if _, _, err := c.NodeAppearance(); err != nil {
		return err
	}
	if _, err := c.ConnectionStyle(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// NodeAppearance resolves spawn.color and spawn.size.
func (c *Config) NodeAppearance() (diagram.NodeColor, diagram.SizeClass, error) {
	color, ok := diagram.ParseNodeColor(c.Spawn.Color)
	if !ok {
		return 0, 0, fmt.Errorf("spawn.color: unknown color %q", c.Spawn.Color)
	}
	size, ok := diagram.ParseSizeClass(c.Spawn.Size)
	if !ok {
		return 0, 0, fmt.Errorf("spawn.size: unknown size %q", c.Spawn.Size)
	}
	return color, size, nil
}

func (c *Config) ConnectionStyle() (diagram.Style, error) {
	style := diagram.Style{Color: strings.TrimSpace(c.Connection.Color), StrokeWidth: c.Connection.StrokeWidth}
	if style.Color == "" {
		return style, fmt.Errorf("connection.color must not be empty")
	}
	if style.StrokeWidth < diagram.MinStrokeWidth || style.StrokeWidth > diagram.MaxStrokeWidth {
		return style, fmt.Errorf("connection.stroke_width must be between %d and %d, got %d",
			diagram.MinStrokeWidth, diagram.MaxStrokeWidth, style.StrokeWidth)
	}
	var ok bool
	if style.LineStyle, ok = diagram.ParseLineStyle(c.Connection.LineStyle); !ok {
		return style, fmt.Errorf("connection.line_style: unknown line style %q", c.Connection.LineStyle)
	}
	if style.Arrow, ok = diagram.ParseArrowKind(c.Connection.Arrow); !ok {
		return style, fmt.Errorf("connection.arrow: unknown arrow %q", c.Connection.Arrow)
	}
	return style, nil
}

func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return lvl, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// Settings flattens the effective configuration for display, keyed like the YAML file.
func (c *Config) Settings() [][2]string {
	return [][2]string{
		{"confirmations", fmt.Sprint(c.Confirmations)},
		{"mouse.hover", fmt.Sprint(c.Mouse.Hover)},
		{"view.cell_width", fmt.Sprint(c.View.CellWidth)},
		{"view.cell_height", fmt.Sprint(c.View.CellHeight)},
		{"view.initial_scale", fmt.Sprint(c.View.InitialScale)},
		{"view.pan_step", fmt.Sprint(c.View.PanStep)},
		{"spawn.origin_x", fmt.Sprint(c.Spawn.OriginX)},
		{"spawn.origin_y", fmt.Sprint(c.Spawn.OriginY)},
		{"spawn.jitter", fmt.Sprint(c.Spawn.Jitter)},
		{"spawn.color", c.Spawn.Color},
		{"spawn.size", c.Spawn.Size},
		{"hit.port_radius", fmt.Sprint(c.Hit.PortRadius)},
		{"hit.edge_tolerance", fmt.Sprint(c.Hit.EdgeTolerance)},
		{"connection.color", c.Connection.Color},
		{"connection.stroke_width", fmt.Sprint(c.Connection.StrokeWidth)},
		{"connection.line_style", c.Connection.LineStyle},
		{"connection.arrow", c.Connection.Arrow},
		{"log.file", c.Log.File},
		{"log.level", c.Log.Level},
	}
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

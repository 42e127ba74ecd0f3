package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Viewport ViewportConfig `mapstructure:"viewport"`
	Output   OutputConfig   `mapstructure:"output"`
	Extract  ExtractConfig  `mapstructure:"extract"`
	Log      LogConfig      `mapstructure:"log"`
	Watch    bool           `mapstructure:"watch"`
}

type ViewportConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type OutputConfig struct {
	Dir     string `mapstructure:"dir"`
	Preview string `mapstructure:"preview"`
	GeoJSON bool   `mapstructure:"geojson"`
	PBF     bool   `mapstructure:"pbf"`
}

type ExtractConfig struct {
	DrivableOnly bool `mapstructure:"drivable_only"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"width":         "viewport.width",
	"height":        "viewport.height",
	"out":           "output.dir",
	"preview":       "output.preview",
	"geojson":       "output.geojson",
	"pbf":           "output.pbf",
	"drivable-only": "extract.drivable_only",
	"log-level":     "log.level",
	"log-format":    "log.format",
	"watch":         "watch",
}

// NewFlagSet declares the command line flags understood by Load.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to a config file (default ./config.yaml if present)")
	fs.Int("width", 1280, "preview width in pixels")
	fs.Int("height", 720, "preview height in pixels")
	fs.StringP("out", "o", "out", "directory the road files are written to")
	fs.String("preview", "preview.png", "file name of the rendered preview, empty to skip")
	fs.Bool("geojson", false, "also write roads.geojson")
	fs.Bool("pbf", false, "also write roads.osm.pbf")
	fs.Bool("drivable-only", false, "keep only drivable highway classes")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("log-format", "text", "text or json")
	fs.BoolP("watch", "w", false, "reload whenever the input file changes")
	return fs
}

// Load reads configuration from defaults, an optional config file,
// ROADEXPORT_* environment variables and the parsed flags, in increasing
// order of precedence.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("viewport.width", 1280)
	v.SetDefault("viewport.height", 720)
	v.SetDefault("output.dir", "out")
	v.SetDefault("output.preview", "preview.png")
	v.SetDefault("output.geojson", false)
	v.SetDefault("output.pbf", false)
	v.SetDefault("extract.drivable_only", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("watch", false)

	configFile := ""
	if fs != nil {
		configFile, _ = fs.GetString("config")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		_ = v.ReadInConfig() // OK if missing
	}

	// ROADEXPORT_VIEWPORT_WIDTH -> viewport.width
	v.SetEnvPrefix("ROADEXPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %q: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Viewport.Width <= 0 {
		errs = append(errs, fmt.Sprintf("viewport.width must be positive, got %d", c.Viewport.Width))
	}
	if c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Sprintf("viewport.height must be positive, got %d", c.Viewport.Height))
	}
	if c.Output.Dir == "" {
		errs = append(errs, "output.dir is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

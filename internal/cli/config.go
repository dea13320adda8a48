package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hexmap/pkg/errors"
	"github.com/matzehuels/hexmap/pkg/pipeline"
)

// Config is the contents of config.toml. Flags override it; it overrides the
// built-in defaults.
//
//	[output]
//	json  = "map.json"
//	image = "map.png"
//
//	[cache]
//	redis_addr = "localhost:6379"
//	ttl        = "72h"
type Config struct {
	Output OutputConfig `toml:"output"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// OutputConfig names the files the layout command writes when no output
// flag is given. Empty paths are skipped.
type OutputConfig struct {
	JSON   string `toml:"json"`
	Image  string `toml:"image"`
	SVG    string `toml:"svg"`
	YAML   string `toml:"yaml"`
	Groups string `toml:"groups"`
}

// RenderConfig holds renderer settings.
type RenderConfig struct {
	FontSize float64 `toml:"font_size"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Enabled   bool     `toml:"enabled"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
	TTL       Duration `toml:"ttl"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	MaxItems int    `toml:"max_items"`
}

// LogConfig configures logging.
type LogConfig struct {
	Verbose bool `toml:"verbose"`
}

// Duration is a time.Duration written as a string such as "36h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			JSON:  "layout.json",
			Image: "layout.png",
		},
		Render: RenderConfig{FontSize: pipeline.DefaultFontSize},
		Cache:  CacheConfig{Enabled: true},
		Server: ServerConfig{Addr: ":8080", MaxItems: 100_000},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults unless explicit is set.
func LoadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if !explicit {
				return DefaultConfig(), nil
			}
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidFormat, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and output paths.
func (c Config) Validate() error {
	if c.Render.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "render.font_size must be positive, got %g", c.Render.FontSize)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "cache.ttl must not be negative")
	}
	if c.Cache.RedisDB < 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "cache.redis_db must not be negative")
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "server.addr cannot be empty")
	}
	if c.Server.MaxItems < 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "server.max_items must not be negative")
	}
	for _, p := range []string{c.Output.JSON, c.Output.Image, c.Output.SVG, c.Output.YAML, c.Output.Groups} {
		if p == "" {
			continue
		}
		if err := errors.ValidateOutputPath(p); err != nil {
			return err
		}
	}
	return nil
}

// outputs maps each configured output path to its format.
func (o OutputConfig) outputs() map[string]string {
	out := make(map[string]string)
	for format, path := range map[string]string{
		pipeline.FormatJSON:   o.JSON,
		pipeline.FormatPNG:    o.Image,
		pipeline.FormatSVG:    o.SVG,
		pipeline.FormatYAML:   o.YAML,
		pipeline.FormatGroups: o.Groups,
	} {
		if path != "" {
			out[format] = path
		}
	}
	return out
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config
			out := newPrinter(cmd.OutOrStdout())
			out.keyValue("json", cfg.Output.JSON)
			out.keyValue("image", cfg.Output.Image)
			out.keyValue("svg", cfg.Output.SVG)
			out.keyValue("yaml", cfg.Output.YAML)
			out.keyValue("groups", cfg.Output.Groups)
			out.keyValue("font size", fmt.Sprintf("%g", cfg.Render.FontSize))
			out.keyValue("cache", fmt.Sprintf("%t", cfg.Cache.Enabled))
			if cfg.Cache.RedisAddr != "" {
				out.keyValue("redis", fmt.Sprintf("%s/%d", cfg.Cache.RedisAddr, cfg.Cache.RedisDB))
			} else if dir, err := c.cacheDir(); err == nil {
				out.keyValue("cache dir", dir)
			}
			if cfg.Cache.TTL.Duration > 0 {
				out.keyValue("cache ttl", cfg.Cache.TTL.String())
			}
			out.keyValue("addr", cfg.Server.Addr)
			out.keyValue("max items", fmt.Sprintf("%d", cfg.Server.MaxItems))
			return nil
		},
	})

	return cmd
}

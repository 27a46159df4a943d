// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Root          string        `toml:"root"`
	Exclude       Exclude       `toml:"exclude"`
	Watch         Watch         `toml:"watch"`
	Output        Output        `toml:"output"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce Duration `toml:"debounce"`
	// Floor between consecutive rescans when events keep arriving.
	MinRescanInterval Duration `toml:"min_rescan_interval"`
}

type Output struct {
	JSON string `toml:"json"`
	DOT  string `toml:"dot"`
	TSV  string `toml:"tsv"`
}

type History struct {
	Path string `toml:"path"`
}

type Observability struct {
	MetricsAddr   string `toml:"metrics_addr"`
	TraceEndpoint string `toml:"trace_endpoint"`
}

// Duration lets TOML carry human-readable values like "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func Default() *Config {
	return &Config{
		Root: ".",
		Exclude: Exclude{
			Dirs: []string{".git", "__pycache__", ".venv", "venv", ".tox", "node_modules"},
		},
		Watch: Watch{
			Debounce:          Duration{500 * time.Millisecond},
			MinRescanInterval: Duration{2 * time.Second},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Watch.Debounce.Duration == 0 {
		cfg.Watch.Debounce = Duration{500 * time.Millisecond}
	}
	if cfg.Watch.MinRescanInterval.Duration == 0 {
		cfg.Watch.MinRescanInterval = Duration{2 * time.Second}
	}
}

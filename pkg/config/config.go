// Package config loads the engine's runtime configuration from a YAML file,
// flags, and WEBCORE_* environment overrides, in that order of increasing
// precedence.
package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the merged configuration for a running webcore instance.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Worker  WorkerConfig  `yaml:"worker"`
	Static  StaticConfig  `yaml:"static"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Docs    DocsConfig    `yaml:"docs"`
	Demo    DemoConfig    `yaml:"demo"`
}

// ServerConfig holds listen-address settings for the primary transport.
type ServerConfig struct {
	Address         string   `yaml:"address"`
	Port            int      `yaml:"port"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// Addr returns host:port for the primary listener.
func (c *Config) Addr() string {
	addr := c.Server.Address
	if addr == "" {
		addr = "0.0.0.0"
	}
	p := c.Server.Port
	if p == 0 {
		p = 8080
	}
	return fmt.Sprintf("%s:%d", addr, p)
}

// WorkerConfig controls the dispatch worker pool.
type WorkerConfig struct {
	Count          int      `yaml:"count"`
	MaxRequestBody SizeBytes `yaml:"max_request_body"`
}

// StaticConfig holds the ordered static-asset root list read from the config
// file or WEBCORE_STATIC_DIRS. Nothing in this module registers these roots
// on a server; the bundled binary serves ./viewer only.
type StaticConfig struct {
	Dirs []string `yaml:"dirs"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	Sink  string `yaml:"sink"`
}

// MetricsConfig controls the Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
	Path    string `yaml:"path"`
}

// DocsConfig controls the Swagger UI docs endpoint.
type DocsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DemoConfig controls the bundled demo application's rate limiter and
// auth-style middleware.
type DemoConfig struct {
	AuthToken     string  `yaml:"auth_token"`
	RateLimitRPS  float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int    `yaml:"rate_limit_burst"`
}

// Defaults returns a Config populated with the values used when neither a
// config file, flag, nor environment variable supplies one.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{Address: "0.0.0.0", Port: 8080, ShutdownTimeout: Duration(5 * time.Second)},
		Worker: WorkerConfig{Count: 0, MaxRequestBody: SizeBytes(4 << 20)},
		Logging: LoggingConfig{Level: "info"},
		Metrics: MetricsConfig{Enabled: true, Address: ":9090", Path: "/metrics"},
		Docs:    DocsConfig{Enabled: true, Path: "/docs"},
		Demo:    DemoConfig{AuthToken: "demo-token", RateLimitRPS: 5, RateLimitBurst: 10},
	}
}

// Load reads and parses a YAML config file, starting from Defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Flags holds the command-line flag values ParseCommandFlags produces, along
// with which flags the caller explicitly set.
type Flags struct {
	Addr     string
	CfgPath  string
	Workers  int
	SetFlags map[string]bool
}

// ParseCommandFlags defines and parses the engine's command-line flags.
func ParseCommandFlags() Flags {
	addrPtr := flag.String("addr", ":8080", "HTTP listen address")
	cfgPtr := flag.String("config", "./config.yaml", "path to config file")
	workersPtr := flag.Int("workers", 0, "dispatch worker pool size (0 = GOMAXPROCS)")
	flag.Parse()

	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	return Flags{Addr: *addrPtr, CfgPath: *cfgPtr, Workers: *workersPtr, SetFlags: setFlags}
}

// ResolveConfigPath decides the config file path: the flag value if it was
// explicitly set, else WEBCORE_CONFIG, else the flag's default.
func ResolveConfigPath(flags Flags) string {
	if flags.SetFlags["config"] {
		return flags.CfgPath
	}
	if p := os.Getenv("WEBCORE_CONFIG"); p != "" {
		return p
	}
	return flags.CfgPath
}

// ApplyFlags overlays explicitly-set flag values onto cfg.
func ApplyFlags(cfg *Config, flags Flags) {
	if flags.SetFlags["addr"] {
		if h, p, err := net.SplitHostPort(flags.Addr); err == nil {
			cfg.Server.Address = h
			if pi, err := strconv.Atoi(p); err == nil {
				cfg.Server.Port = pi
			}
		}
	}
	if flags.SetFlags["workers"] {
		cfg.Worker.Count = flags.Workers
	}
}

// ApplyEnvOverrides applies WEBCORE_* environment overrides onto cfg,
// taking highest precedence. Returns whether any override was applied.
func ApplyEnvOverrides(cfg *Config) bool {
	used := false

	if v := os.Getenv("WEBCORE_ADDR"); v != "" {
		used = true
		if h, p, err := net.SplitHostPort(v); err == nil {
			cfg.Server.Address = h
			if pi, err := strconv.Atoi(p); err == nil {
				cfg.Server.Port = pi
			}
		} else {
			cfg.Server.Address = v
		}
	}
	if v := os.Getenv("WEBCORE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			used = true
			cfg.Worker.Count = n
		}
	}
	if v := os.Getenv("WEBCORE_STATIC_DIRS"); v != "" {
		used = true
		cfg.Static.Dirs = splitList(v)
	}
	if v := os.Getenv("WEBCORE_LOG_LEVEL"); v != "" {
		used = true
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WEBCORE_LOG_SINK"); v != "" {
		used = true
		cfg.Logging.Sink = v
	}
	if v := os.Getenv("WEBCORE_METRICS_ADDR"); v != "" {
		used = true
		cfg.Metrics.Address = v
	}
	if v := os.Getenv("WEBCORE_DEMO_AUTH_TOKEN"); v != "" {
		used = true
		cfg.Demo.AuthToken = v
	}
	if v := os.Getenv("WEBCORE_DEMO_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			used = true
			cfg.Demo.RateLimitRPS = f
		}
	}
	if v := os.Getenv("WEBCORE_DEMO_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			used = true
			cfg.Demo.RateLimitBurst = n
		}
	}

	return used
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// LoadEffective loads path (or Defaults if path does not exist), then
// applies flags and environment overrides, in that precedence order.
func LoadEffective(flags Flags) (*Config, error) {
	path := ResolveConfigPath(flags)
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	ApplyFlags(cfg, flags)
	ApplyEnvOverrides(cfg)
	return cfg, nil
}

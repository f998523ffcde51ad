package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	envConfig   = "WIDGETDEMO_CONFIG"
	envDemo     = "WIDGETDEMO_DEMO"
	envMouse    = "WIDGETDEMO_MOUSE"
	envLogFile  = "WIDGETDEMO_LOG_FILE"
	envLogLevel = "WIDGETDEMO_LOG_LEVEL"
)

// ErrHelp is returned when -h or -help is passed.
var ErrHelp = flag.ErrHelp

// duration decodes TOML strings such as "300ms".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// fileConfig mirrors the TOML layout. Pointers distinguish "absent" from
// zero values so a partial file only overrides what it names.
type fileConfig struct {
	Demo  *string `toml:"demo"`
	Mouse *bool   `toml:"mouse"`

	Transition struct {
		Duration  *duration `toml:"duration"`
		Delay     *duration `toml:"delay"`
		FPS       *int      `toml:"fps"`
		Frequency *float64  `toml:"frequency"`
		Damping   *float64  `toml:"damping"`
	} `toml:"transition"`

	Logging struct {
		File  *string `toml:"file"`
		Level *string `toml:"level"`
	} `toml:"logging"`

	History struct {
		Capacity *int `toml:"capacity"`
	} `toml:"history"`

	MCP struct {
		Name          *string   `toml:"name"`
		Version       *string   `toml:"version"`
		SettleTimeout *duration `toml:"settle_timeout"`
	} `toml:"mcp"`
}

// LoadFile overlays the TOML file at path onto base. Unknown keys are
// rejected so typos do not go unnoticed.
func LoadFile(path string, base Config) (Config, error) {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, &ConfigError{Field: undecoded[0].String(), Message: "is not a known setting"}
	}

	c := base
	setString(&c.Demo, fc.Demo)
	if fc.Mouse != nil {
		c.Mouse = *fc.Mouse
	}
	setDuration(&c.Transition.Duration, fc.Transition.Duration)
	setDuration(&c.Transition.Delay, fc.Transition.Delay)
	if fc.Transition.FPS != nil {
		c.Transition.FPS = *fc.Transition.FPS
	}
	if fc.Transition.Frequency != nil {
		c.Transition.Frequency = *fc.Transition.Frequency
	}
	if fc.Transition.Damping != nil {
		c.Transition.Damping = *fc.Transition.Damping
	}
	setString(&c.Logging.File, fc.Logging.File)
	setString(&c.Logging.Level, fc.Logging.Level)
	if fc.History.Capacity != nil {
		c.History.Capacity = *fc.History.Capacity
	}
	setString(&c.MCP.Name, fc.MCP.Name)
	setString(&c.MCP.Version, fc.MCP.Version)
	setDuration(&c.MCP.SettleTimeout, fc.MCP.SettleTimeout)
	return c, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *duration) {
	if v != nil {
		*dst = v.Duration
	}
}

// LoadArgs builds the configuration from CLI arguments and environment
// entries ("KEY=value"). It returns the validated config and any
// positional arguments left after the flags.
func LoadArgs(args []string, environ []string) (Config, []string, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("widgetdemo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	path := fs.String("config", env[envConfig], "path to a TOML config file")
	demo := fs.String("demo", "", "demo to run: boot or slider")
	logFile := fs.String("log-file", "", "path to the JSON log file")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	noMouse := fs.Bool("no-mouse", false, "disable mouse input")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, nil, ErrHelp
		}
		return Config{}, nil, err
	}

	cfg := Default()
	if strings.TrimSpace(*path) != "" {
		var err error
		if cfg, err = LoadFile(*path, cfg); err != nil {
			return Config{}, nil, err
		}
	}
	cfg = applyEnv(cfg, env)

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["demo"] {
		cfg.Demo = *demo
	}
	if set["log-file"] {
		cfg.Logging.File = *logFile
	}
	if set["log-level"] {
		cfg.Logging.Level = *logLevel
	}
	if *noMouse {
		cfg.Mouse = false
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}
	return cfg, fs.Args(), nil
}

// Usage describes the accepted flags.
func Usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: widgetdemo [mcp] [flags]")
	fmt.Fprintln(w, "  -config path      TOML config file ($"+envConfig+")")
	fmt.Fprintln(w, "  -demo name        boot or slider ($"+envDemo+")")
	fmt.Fprintln(w, "  -log-file path    JSON log file ($"+envLogFile+")")
	fmt.Fprintln(w, "  -log-level level  debug, info, warn, error ($"+envLogLevel+")")
	fmt.Fprintln(w, "  -no-mouse         disable mouse input ($"+envMouse+"=false)")
}

func applyEnv(c Config, env map[string]string) Config {
	if v, ok := env[envDemo]; ok && strings.TrimSpace(v) != "" {
		c.Demo = v
	}
	if v, ok := env[envMouse]; ok {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.Mouse = parsed
		}
	}
	if v, ok := env[envLogFile]; ok {
		c.Logging.File = v
	}
	if v, ok := env[envLogLevel]; ok && strings.TrimSpace(v) != "" {
		c.Logging.Level = v
	}
	return c
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

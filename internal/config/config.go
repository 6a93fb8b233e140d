// Package config resolves the report settings from defaults, an optional
// YAML file, STACKSTATS_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"stackstats/internal/stats"
)

// Sentinel validation errors.
var (
	ErrConflictingModules = errors.New("--modules, --coremodules and --extramodules are mutually exclusive")
	ErrEmptyProject       = errors.New("project must not be empty")
	ErrEmptyReleases      = errors.New("at least one release is required")
	ErrEmptyCompanies     = errors.New("at least one company is required")
	ErrInvalidTimeout     = errors.New("timeout must not be negative")
	ErrInvalidRate        = errors.New("rate must not be negative")
)

const envPrefix = "STACKSTATS"

// ModuleSelection says where the module list comes from.
type ModuleSelection int

const (
	ModulesDefault ModuleSelection = iota
	ModulesCore
	ModulesExtra
	ModulesExplicit
)

func (s ModuleSelection) String() string {
	switch s {
	case ModulesDefault:
		return "default"
	case ModulesCore:
		return "core"
	case ModulesExtra:
		return "extra"
	case ModulesExplicit:
		return "explicit"
	}
	return fmt.Sprintf("ModuleSelection(%d)", int(s))
}

// Config holds every setting of a report run.
type Config struct {
	Project      string        `mapstructure:"project"`
	Releases     []string      `mapstructure:"releases"`
	Modules      []string      `mapstructure:"modules"`
	CoreModules  bool          `mapstructure:"coremodules"`
	ExtraModules bool          `mapstructure:"extramodules"`
	Companies    []string      `mapstructure:"companies"`
	Output       string        `mapstructure:"output"`
	Format       string        `mapstructure:"format"`
	BaseURL      string        `mapstructure:"base-url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Rate         float64       `mapstructure:"rate"`
	Since        string        `mapstructure:"since"`
	Until        string        `mapstructure:"until"`
	MetricsFile  string        `mapstructure:"metrics-file"`
	LogLevel     string        `mapstructure:"log-level"`
	Quiet        bool          `mapstructure:"quiet"`
}

// Load reads the configuration. configPath may be empty, in which case a
// stackstats.yaml in the working directory is used if present. flags may be
// nil; when set, changed flags override every other source.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("stackstats")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Releases = cleanList(cfg.Releases)
	cfg.Modules = cleanList(cfg.Modules)
	cfg.Companies = cleanList(cfg.Companies)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("project", DefaultProject)
	v.SetDefault("releases", DefaultReleases)
	v.SetDefault("modules", []string{})
	v.SetDefault("coremodules", false)
	v.SetDefault("extramodules", false)
	v.SetDefault("companies", DefaultCompanies)
	v.SetDefault("output", "")
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("base-url", DefaultBaseURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("rate", DefaultRate)
	v.SetDefault("since", "")
	v.SetDefault("until", "")
	v.SetDefault("metrics-file", "")
	v.SetDefault("log-level", DefaultLogLevel)
	v.SetDefault("quiet", false)
}

// Validate checks the settings that do not depend on other packages.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Project) == "" {
		return ErrEmptyProject
	}
	if len(c.Releases) == 0 {
		return ErrEmptyReleases
	}
	if len(c.Companies) == 0 {
		return ErrEmptyCompanies
	}
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if c.Rate < 0 {
		return ErrInvalidRate
	}
	_, err := c.ModuleSelection()
	return err
}

// ModuleSelection reports which module source is in effect.
func (c *Config) ModuleSelection() (ModuleSelection, error) {
	selected := ModulesDefault
	n := 0
	if c.CoreModules {
		selected = ModulesCore
		n++
	}
	if c.ExtraModules {
		selected = ModulesExtra
		n++
	}
	if len(c.Modules) > 0 {
		selected = ModulesExplicit
		n++
	}
	if n > 1 {
		return ModulesDefault, ErrConflictingModules
	}
	return selected, nil
}

// ResolvedModules returns the module list for the active selection.
func (c *Config) ResolvedModules() ([]string, error) {
	sel, err := c.ModuleSelection()
	if err != nil {
		return nil, err
	}
	switch sel {
	case ModulesCore:
		return CoreModules, nil
	case ModulesExtra:
		return ExtraModules, nil
	case ModulesExplicit:
		return c.Modules, nil
	case ModulesDefault:
		return DefaultModules, nil
	}
	return nil, fmt.Errorf("unknown module selection %s", sel)
}

// FilterSet builds the enumeration input.
func (c *Config) FilterSet() (stats.FilterSet, error) {
	modules, err := c.ResolvedModules()
	if err != nil {
		return stats.FilterSet{}, err
	}
	return stats.FilterSet{
		Project:   c.Project,
		Releases:  c.Releases,
		Modules:   modules,
		Companies: c.Companies,
	}, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

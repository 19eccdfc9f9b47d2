// Package config loads styleimport settings from YAML, .env files and the
// environment, and turns library entries into importer rules.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/LegacyCodeHQ/styleimport/importer"
)

// Sentinel validation errors.
var (
	ErrMissingLibraryName   = errors.New("library_name is required")
	ErrInvalidImportFilter  = errors.New("invalid import_filter")
	ErrInvalidStyleTemplate = errors.New("invalid style_template")
	ErrInvalidLogLevel      = errors.New("invalid log level")
)

// FileName is the configuration file looked up in the working directory
// when no explicit path is given.
const FileName = "styleimport.yaml"

const envPrefix = "STYLEIMPORT"

// Config holds all styleimport settings.
type Config struct {
	Root       string          `mapstructure:"root" yaml:"root"`
	Production bool            `mapstructure:"production" yaml:"production"`
	SourceMap  bool            `mapstructure:"sourcemap" yaml:"sourcemap"`
	Log        LogConfig       `mapstructure:"log" yaml:"log"`
	Libraries  []LibraryConfig `mapstructure:"libraries" yaml:"libraries"`
}

// LogConfig selects the console log level: debug, info, warn or error.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// LibraryConfig is the file representation of an importer.LibraryRule.
type LibraryConfig struct {
	LibraryName     string `mapstructure:"library_name" yaml:"library_name"`
	ImportFilter    string `mapstructure:"import_filter" yaml:"import_filter,omitempty"`
	StyleTemplate   string `mapstructure:"style_template" yaml:"style_template,omitempty"`
	NameCase        string `mapstructure:"name_case" yaml:"name_case,omitempty"`
	EnsureStyleFile bool   `mapstructure:"ensure_style_file" yaml:"ensure_style_file,omitempty"`
	BaseStyle       string `mapstructure:"base_style" yaml:"base_style,omitempty"`
}

// TemplateValues is the data passed to style_template.
type TemplateValues struct {
	// Name is the identifier after name-case conversion.
	Name string
	// Library is the configured library name.
	Library string
}

// Default returns the configuration written by "styleimport init".
func Default() *Config {
	return &Config{
		Root: ".",
		Log:  LogConfig{Level: "info"},
		Libraries: []LibraryConfig{{
			LibraryName:   "antd",
			StyleTemplate: "{{ .Library }}/es/{{ .Name }}/style/index",
			NameCase:      string(importer.ParamCase),
		}},
	}
}

// Load reads configuration from path, or from styleimport.yaml in the
// working directory when path is empty. A missing default file is not an
// error. Environment variables prefixed with STYLEIMPORT_ override top-level
// keys.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// A single library may be given as a mapping instead of a list.
	if single, ok := v.Get("libraries").(map[string]any); ok {
		v.Set("libraries", []any{single})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root", ".")
	v.SetDefault("production", false)
	v.SetDefault("sourcemap", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("libraries", []any{})
}

// Validate checks every library entry and the log level.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	_, err := c.Rules()
	return err
}

// Rules converts every library entry into an importer rule.
func (c *Config) Rules() ([]importer.LibraryRule, error) {
	rules := make([]importer.LibraryRule, 0, len(c.Libraries))
	for i, lib := range c.Libraries {
		rule, err := lib.Rule()
		if err != nil {
			return nil, fmt.Errorf("libraries[%d]: %w", i, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Matcher builds the library table for the importer.
func (c *Config) Matcher() (*importer.Matcher, error) {
	rules, err := c.Rules()
	if err != nil {
		return nil, err
	}
	return importer.NewMatcher(rules...)
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Rule compiles the entry into an importer.LibraryRule.
func (l LibraryConfig) Rule() (importer.LibraryRule, error) {
	if l.LibraryName == "" {
		return importer.LibraryRule{}, ErrMissingLibraryName
	}

	rule := importer.LibraryRule{
		LibraryName:           l.LibraryName,
		EnsureStyleFileExists: l.EnsureStyleFile,
		BaseStyleImport:       l.BaseStyle,
	}

	if l.ImportFilter != "" {
		re, err := regexp.Compile(l.ImportFilter)
		if err != nil {
			return importer.LibraryRule{}, fmt.Errorf("%w for %s: %w", ErrInvalidImportFilter, l.LibraryName, err)
		}
		rule.ImportFilter = re.MatchString
	}

	// An unknown name_case is kept; the engine reports it and uses
	// identifiers as written.
	if l.NameCase != "" {
		rule.NameCase = importer.CaseStyle(l.NameCase)
	}

	if l.StyleTemplate != "" {
		resolver, err := templateResolver(l.LibraryName, l.StyleTemplate)
		if err != nil {
			return importer.LibraryRule{}, err
		}
		rule.StyleResolver = resolver
	}

	return rule, nil
}

// templateResolver expands the style template per identifier. Execution
// failures yield an empty specifier, which skips the identifier.
func templateResolver(library, text string) (func(string) string, error) {
	tmpl, err := template.New(library).Funcs(sprig.FuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %w", ErrInvalidStyleTemplate, library, err)
	}

	return func(name string) string {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, TemplateValues{Name: name, Library: library}); err != nil {
			return ""
		}
		return strings.TrimSpace(buf.String())
	}, nil
}

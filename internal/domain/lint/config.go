package lint

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/corey/xcprojlint/internal/ports"
)

// ConfigFileName is looked up next to the .xcodeproj bundle.
const ConfigFileName = ".xcprojlint.yaml"

// Config is the YAML-serialized lint configuration.
type Config struct {
	Validations          []string `yaml:"validations"`
	Report               string   `yaml:"report"`
	SkipFolders          []string `yaml:"skip_folders"`
	AllowedBuildSettings []string `yaml:"allowed_build_settings"`
}

// DefaultConfig runs every rule and reports at error level.
func DefaultConfig() Config {
	return Config{
		Validations: []string{All},
		Report:      string(ports.SeverityError),
	}
}

// ParseConfig decodes YAML config data. Unset fields keep their defaults and
// unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Validations) == 0 {
		cfg.Validations = []string{All}
	}
	if cfg.Report == "" {
		cfg.Report = string(ports.SeverityError)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a config file. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks rule names and the report level.
func (c Config) Validate() error {
	if ports.SeverityFromName(c.Report) == "" {
		return fmt.Errorf("report: unknown level %q (want error or warning)", c.Report)
	}
	if _, err := Select(c.Validations); err != nil {
		return fmt.Errorf("validations: %w", err)
	}
	return nil
}

// Rules resolves the configured validations.
func (c Config) Rules() ([]Rule, error) {
	return Select(c.Validations)
}

// Options builds the rule options for a project directory.
func (c Config) Options(projectDir string) Options {
	sev := ports.SeverityFromName(c.Report)
	if sev == "" {
		sev = ports.SeverityError
	}
	return Options{
		Severity:             sev,
		ProjectDir:           projectDir,
		SkipFolders:          c.SkipFolders,
		AllowedBuildSettings: c.AllowedBuildSettings,
	}
}

// Key is a stable serialization of c, used in run digests.
func (c Config) Key() []byte {
	out, err := yaml.Marshal(c)
	if err != nil {
		return []byte(fmt.Sprint(c))
	}
	return out
}

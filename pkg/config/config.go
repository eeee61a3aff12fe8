// Package config holds process-wide settings for the DMS MCP server.
//
// Settings come from three layers, later layers winning: built-in defaults,
// an optional YAML config file, and environment variables carrying the DMS_
// prefix (matched case-insensitively). Every value is validated eagerly at
// load time; an out-of-range value is a startup error, never silently
// clamped.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmsmcp/dmsmcp/pkg/defaults"
	"github.com/dmsmcp/dmsmcp/pkg/logging"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix shared by every environment variable this server
// reads.
const EnvPrefix = "DMS_"

// Config holds all server configuration options.
type Config struct {
	// AWSRegion is the region DMS calls are issued against.
	AWSRegion string `yaml:"aws_region"`

	// AWSProfile selects a shared-credentials profile. Empty means the
	// SDK's default chain.
	AWSProfile string `yaml:"aws_profile"`

	// ReadOnlyMode blocks every mutating tool before any upstream call.
	ReadOnlyMode bool `yaml:"read_only_mode"`

	// DefaultTimeout bounds a single operation, in seconds [30, 3600].
	DefaultTimeout int `yaml:"default_timeout"`

	// MaxResults is the default page size for list operations [1, 100].
	MaxResults int `yaml:"max_results"`

	// LogLevel is one of DEBUG, INFO, WARNING, ERROR.
	LogLevel string `yaml:"log_level"`

	// EnableStructuredLogging selects JSON log output.
	EnableStructuredLogging bool `yaml:"enable_structured_logging"`

	// EnableConnectionCaching caches connection-test results for 5 minutes.
	EnableConnectionCaching bool `yaml:"enable_connection_caching"`

	// ValidateTableMappings runs the table-mapping rule checker before
	// task create/modify calls.
	ValidateTableMappings bool `yaml:"validate_table_mappings"`
}

// Default returns a Config populated with built-in defaults.
func Default() *Config {
	return &Config{
		AWSRegion:               defaults.AWSRegion,
		DefaultTimeout:          int(defaults.OperationTimeout / time.Second),
		MaxResults:              defaults.MaxResults,
		LogLevel:                defaults.LogLevel,
		EnableStructuredLogging: true,
		EnableConnectionCaching: true,
		ValidateTableMappings:   true,
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (or $DMS_CONFIG_FILE when path is empty; a missing file is not an
// error unless explicitly requested), then environment variables. The result
// is validated before being returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = lookupEnv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrUnreadableFile, path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnreadableFile, path, err)
	}
	return nil
}

// lookupEnv finds DMS_<name> in the environment, matching the variable name
// case-insensitively. Returns "" when unset.
func lookupEnv(name string) string {
	want := EnvPrefix + name
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.EqualFold(k, want) {
			return v
		}
	}
	return ""
}

func (c *Config) loadEnv() error {
	if v := lookupEnv("AWS_REGION"); v != "" {
		c.AWSRegion = v
	}
	if v := lookupEnv("AWS_PROFILE"); v != "" {
		c.AWSProfile = v
	}
	if v := lookupEnv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	var err error
	if c.ReadOnlyMode, err = envBool("READ_ONLY_MODE", c.ReadOnlyMode); err != nil {
		return err
	}
	if c.DefaultTimeout, err = envInt("DEFAULT_TIMEOUT", c.DefaultTimeout); err != nil {
		return err
	}
	if c.MaxResults, err = envInt("MAX_RESULTS", c.MaxResults); err != nil {
		return err
	}
	if c.EnableStructuredLogging, err = envBool("ENABLE_STRUCTURED_LOGGING", c.EnableStructuredLogging); err != nil {
		return err
	}
	if c.EnableConnectionCaching, err = envBool("ENABLE_CONNECTION_CACHING", c.EnableConnectionCaching); err != nil {
		return err
	}
	if c.ValidateTableMappings, err = envBool("VALIDATE_TABLE_MAPPINGS", c.ValidateTableMappings); err != nil {
		return err
	}
	return nil
}

func envBool(name string, current bool) (bool, error) {
	v := lookupEnv(name)
	if v == "" {
		return current, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return current, fmt.Errorf("%w: %s%s: %q is not a boolean", ErrInvalidConfig, EnvPrefix, name, v)
	}
	return b, nil
}

func envInt(name string, current int) (int, error) {
	v := lookupEnv(name)
	if v == "" {
		return current, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return current, fmt.Errorf("%w: %s%s: %q is not an integer", ErrInvalidConfig, EnvPrefix, name, v)
	}
	return n, nil
}

// Validate checks every field against its allowed range or set.
func (c *Config) Validate() error {
	if c.AWSRegion == "" {
		return fmt.Errorf("%w: aws_region must not be empty", ErrInvalidConfig)
	}
	minT := int(defaults.OperationTimeoutMin / time.Second)
	maxT := int(defaults.OperationTimeoutMax / time.Second)
	if c.DefaultTimeout < minT || c.DefaultTimeout > maxT {
		return fmt.Errorf("%w: default_timeout %d out of range [%d, %d]",
			ErrInvalidConfig, c.DefaultTimeout, minT, maxT)
	}
	if c.MaxResults < defaults.MaxResultsMin || c.MaxResults > defaults.MaxResultsMax {
		return fmt.Errorf("%w: max_results %d out of range [%d, %d]",
			ErrInvalidConfig, c.MaxResults, defaults.MaxResultsMin, defaults.MaxResultsMax)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q not one of DEBUG, INFO, WARNING, ERROR",
			ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Timeout returns the operation timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.DefaultTimeout) * time.Second
}

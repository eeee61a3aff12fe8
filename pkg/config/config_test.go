package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.Empty(t, cfg.AWSProfile)
	assert.False(t, cfg.ReadOnlyMode)
	assert.Equal(t, 300, cfg.DefaultTimeout)
	assert.Equal(t, 100, cfg.MaxResults)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.True(t, cfg.EnableStructuredLogging)
	assert.True(t, cfg.EnableConnectionCaching)
	assert.True(t, cfg.ValidateTableMappings)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DMS_AWS_REGION", "eu-west-1")
	t.Setenv("DMS_AWS_PROFILE", "staging")
	t.Setenv("DMS_READ_ONLY_MODE", "true")
	t.Setenv("DMS_DEFAULT_TIMEOUT", "60")
	t.Setenv("DMS_MAX_RESULTS", "25")
	t.Setenv("DMS_LOG_LEVEL", "DEBUG")
	t.Setenv("DMS_ENABLE_CONNECTION_CACHING", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.AWSRegion)
	assert.Equal(t, "staging", cfg.AWSProfile)
	assert.True(t, cfg.ReadOnlyMode)
	assert.Equal(t, 60, cfg.DefaultTimeout)
	assert.Equal(t, 25, cfg.MaxResults)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.False(t, cfg.EnableConnectionCaching)
}

func TestEnvMatchingIsCaseInsensitive(t *testing.T) {
	t.Setenv("dms_aws_region", "ap-southeast-2")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-2", cfg.AWSRegion)
}

func TestEnvBoolAcceptsCommonSpellings(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1", "t"} {
		t.Setenv("DMS_READ_ONLY_MODE", v)
		cfg, err := Load("")
		require.NoError(t, err, "value %q", v)
		assert.True(t, cfg.ReadOnlyMode, "value %q", v)
	}
}

func TestInvalidEnvValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-boolean", "DMS_READ_ONLY_MODE", "yes please"},
		{"non-integer", "DMS_DEFAULT_TIMEOUT", "five minutes"},
		{"timeout below range", "DMS_DEFAULT_TIMEOUT", "5"},
		{"timeout above range", "DMS_DEFAULT_TIMEOUT", "7200"},
		{"max results zero", "DMS_MAX_RESULTS", "0"},
		{"max results above cap", "DMS_MAX_RESULTS", "500"},
		{"unknown log level", "DMS_LOG_LEVEL", "TRACE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load("")
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"aws_region: us-west-2\nread_only_mode: true\nmax_results: 50\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", cfg.AWSRegion)
	assert.True(t, cfg.ReadOnlyMode)
	assert.Equal(t, 50, cfg.MaxResults)
	// Untouched fields keep their defaults.
	assert.Equal(t, 300, cfg.DefaultTimeout)
}

func TestEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aws_region: us-west-2\n"), 0o644))
	t.Setenv("DMS_AWS_REGION", "eu-central-1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", cfg.AWSRegion)
}

func TestExplicitMissingFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, ErrUnreadableFile)
}

func TestMalformedFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aws_region: [unterminated"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnreadableFile)
}

func TestConfigFileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aws_region: sa-east-1\n"), 0o644))
	t.Setenv("DMS_CONFIG_FILE", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sa-east-1", cfg.AWSRegion)
}

func TestTimeoutDuration(t *testing.T) {
	cfg := Default()
	cfg.DefaultTimeout = 45
	assert.Equal(t, 45*time.Second, cfg.Timeout())
}

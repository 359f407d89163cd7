package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := `
database:
  driver: sqlite
  sqlite_path: /tmp/planner.db
jwt:
  secret: s3cr3t
  expiration: 30m
persist:
  queue_size: 16
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/planner.db", cfg.Database.SQLitePath)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, 16, cfg.Persist.QueueSize)
	assert.Equal(t, 5*time.Second, cfg.Persist.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.S3.Enabled)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_ADDRESS", ":9999")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
}

func TestLoadConfig_EnvOnlyKeys(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("S3_ENABLED", "true")
	t.Setenv("S3_BUCKET_NAME", "bucket-env")
	t.Setenv("S3_REGION", "eu-west-1")
	t.Setenv("S3_ENDPOINT", "minio:9000")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
	t.Setenv("S3_USE_SSL", "false")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, S3Config{
		Enabled:         true,
		Endpoint:        "minio:9000",
		Region:          "eu-west-1",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "bucket-env",
		UseSSL:          false,
	}, cfg.S3)
}

func TestLoadConfig_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
jwt:
  secret: from-file
s3:
  bucket_name: file-bucket
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("S3_BUCKET_NAME", "env-bucket")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, "env-bucket", cfg.S3.BucketName)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "jwt.secret")
}

func TestValidate(t *testing.T) {
	valid := Config{
		Database: DatabaseConfig{Driver: DriverMongo, URI: "mongodb://x", Name: "db"},
		JWT:      JWTConfig{Secret: "s", Expiration: time.Hour},
		Persist:  PersistConfig{QueueSize: 1},
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Database.Driver = "postgres"
	assert.ErrorContains(t, bad.Validate(), "unknown database.driver")

	bad = valid
	bad.Persist.QueueSize = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.S3.Enabled = true
	assert.ErrorContains(t, bad.Validate(), "bucket_name")
}

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newTestViper(t))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "local", cfg.StorageType)
	assert.Equal(t, "./uploads/photos", cfg.UploadDir)
	assert.Equal(t, "/uploads/photos", cfg.StaticURLPrefix)
	assert.Equal(t, int64(10<<20), cfg.UploadMaxBytes())
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "memory", cfg.CacheType)
	assert.Empty(t, cfg.KafkaBrokers())
}

func TestLoad_Normalize(t *testing.T) {
	v := newTestViper(t)
	v.Set("storage_type", " MinIO ")
	v.Set("static_url_prefix", "files/")
	v.Set("upload_max_size_mb", 0)
	v.Set("events_kafka_brokers", "kafka-1:9092, kafka-2:9092,")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "minio", cfg.StorageType)
	assert.Equal(t, "/files", cfg.StaticURLPrefix)
	assert.Equal(t, 10, cfg.UploadMaxSizeMB)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers())
}

func TestConfig_Addr(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "explicit", cfg: Config{ServerHost: "127.0.0.1", ServerPort: 8080}, want: "127.0.0.1:8080"},
		{name: "empty host", cfg: Config{ServerPort: 8080}, want: "0.0.0.0:8080"},
		{name: "empty port", cfg: Config{ServerHost: "localhost"}, want: "localhost:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Addr())
		})
	}
}

func TestConfig_CorsOrigins(t *testing.T) {
	cfg := Config{ServerHost: "0.0.0.0", ServerPort: 3000}
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CorsOrigins())

	cfg.ServerCorsOrigins = "https://a.example, https://b.example"
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CorsOrigins())
}

package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	globalConfig Config
	once         sync.Once
)

// Config 扁平化配置结构体
type Config struct {
	// 服务器配置
	ServerHost         string        `mapstructure:"server_host"`
	ServerPort         int           `mapstructure:"server_port"`
	ServerReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	ServerWriteTimeout time.Duration `mapstructure:"server_write_timeout"`
	ServerIdleTimeout  time.Duration `mapstructure:"server_idle_timeout"`
	ServerCorsOrigins  string        `mapstructure:"server_cors_origins"`

	// 数据库配置
	DBType            string `mapstructure:"db_type"`
	DBHost            string `mapstructure:"db_host"`
	DBPort            int    `mapstructure:"db_port"`
	DBUsername        string `mapstructure:"db_username"`
	DBPassword        string `mapstructure:"db_password"`
	DBName            string `mapstructure:"db_name"`
	DBFilePath        string `mapstructure:"db_file_path"`
	DBMaxOpenConns    int    `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns    int    `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime int    `mapstructure:"db_conn_max_lifetime"`

	// 存储配置
	StorageType     string `mapstructure:"storage_type"`
	UploadDir       string `mapstructure:"upload_dir"`
	StaticURLPrefix string `mapstructure:"static_url_prefix"`

	MinioEndpoint        string `mapstructure:"minio_endpoint"`
	MinioAccessKeyID     string `mapstructure:"minio_access_key_id"`
	MinioSecretAccessKey string `mapstructure:"minio_secret_access_key"`
	MinioBucket          string `mapstructure:"minio_bucket"`
	MinioUseSSL          bool   `mapstructure:"minio_use_ssl"`

	WebDAVURL      string `mapstructure:"webdav_url"`
	WebDAVUsername string `mapstructure:"webdav_username"`
	WebDAVPassword string `mapstructure:"webdav_password"`
	WebDAVRootPath string `mapstructure:"webdav_root_path"`

	// 上传配置
	UploadMaxSizeMB      int `mapstructure:"upload_max_size_mb"`
	UploadMaxConcurrency int `mapstructure:"upload_max_concurrency"`

	// 限流配置
	RateLimitUploadRPS   float64 `mapstructure:"rate_limit_upload_rps"`
	RateLimitUploadBurst int     `mapstructure:"rate_limit_upload_burst"`

	// 缓存配置
	CacheType          string        `mapstructure:"cache_type"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
	CacheRedisAddr     string        `mapstructure:"cache_redis_addr"`
	CacheRedisPassword string        `mapstructure:"cache_redis_password"`
	CacheRedisDB       int           `mapstructure:"cache_redis_db"`

	// 事件配置
	EventsKafkaBrokers string `mapstructure:"events_kafka_brokers"`
	EventsKafkaTopic   string `mapstructure:"events_kafka_topic"`

	// 默认上传者
	DefaultOwnerEmail     string `mapstructure:"default_owner_email"`
	DefaultOwnerFirstName string `mapstructure:"default_owner_first_name"`
	DefaultOwnerLastName  string `mapstructure:"default_owner_last_name"`
}

// InitConfig Initialize configuration
func InitConfig() {
	once.Do(func() {
		loadConfig()
	})
}

func Get() *Config {
	return &globalConfig
}

// loadConfig Core configuration loading
func loadConfig() {
	setDefaults()

	configFile := viper.GetString("config_file_path")
	if configFile == "" {
		configFile = ".env"
	}
	viper.SetConfigFile(configFile)
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Info: %s not found, using defaults and environment variables\n", configFile)
	} else {
		fmt.Fprintf(os.Stderr, "Info: Loaded configuration from %s\n", configFile)
	}

	viper.AutomaticEnv()
	for _, key := range viper.AllKeys() {
		_ = viper.BindEnv(key)
	}

	cfg, err := Load(viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: Unable to unmarshal config, %v\n", err)
		os.Exit(1)
	}
	globalConfig = *cfg
}

// Load 从给定的 viper 实例解析配置
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &cfg, nil
}

// SetDefaults 在给定 viper 实例上设置默认值
func SetDefaults(v *viper.Viper) {
	// 服务器配置默认值
	v.SetDefault("server_host", "127.0.0.1")
	v.SetDefault("server_port", 3000)
	v.SetDefault("server_read_timeout", "15s")
	v.SetDefault("server_write_timeout", "30s")
	v.SetDefault("server_idle_timeout", "120s")
	v.SetDefault("server_cors_origins", "")

	// 数据库配置默认值
	v.SetDefault("db_type", "sqlite")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_username", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "home_server")
	v.SetDefault("db_file_path", "./database/home_server.db")
	v.SetDefault("db_max_open_conns", 100)
	v.SetDefault("db_max_idle_conns", 25)
	v.SetDefault("db_conn_max_lifetime", 3600)

	// 存储配置默认值
	v.SetDefault("storage_type", "local")
	v.SetDefault("upload_dir", "./uploads/photos")
	v.SetDefault("static_url_prefix", "/uploads/photos")
	v.SetDefault("minio_endpoint", "")
	v.SetDefault("minio_access_key_id", "")
	v.SetDefault("minio_secret_access_key", "")
	v.SetDefault("minio_bucket", "photos")
	v.SetDefault("minio_use_ssl", false)
	v.SetDefault("webdav_url", "")
	v.SetDefault("webdav_username", "")
	v.SetDefault("webdav_password", "")
	v.SetDefault("webdav_root_path", "/photos")

	// 上传配置默认值
	v.SetDefault("upload_max_size_mb", 10)
	v.SetDefault("upload_max_concurrency", 100)

	// 限流配置默认值
	v.SetDefault("rate_limit_upload_rps", 5.0)
	v.SetDefault("rate_limit_upload_burst", 10)

	// 缓存配置默认值
	v.SetDefault("cache_type", "memory")
	v.SetDefault("cache_ttl", "30s")
	v.SetDefault("cache_redis_addr", "localhost:6379")
	v.SetDefault("cache_redis_password", "")
	v.SetDefault("cache_redis_db", 0)

	// 事件配置默认值
	v.SetDefault("events_kafka_brokers", "")
	v.SetDefault("events_kafka_topic", "photo-events")

	v.SetDefault("default_owner_email", "owner@localhost")
	v.SetDefault("default_owner_first_name", "Home")
	v.SetDefault("default_owner_last_name", "Owner")
}

// setDefaults 设置全局 viper 默认值
func setDefaults() {
	SetDefaults(viper.GetViper())
}

func (c *Config) normalize() {
	c.StorageType = strings.ToLower(strings.TrimSpace(c.StorageType))
	c.CacheType = strings.ToLower(strings.TrimSpace(c.CacheType))
	if c.StaticURLPrefix == "" {
		c.StaticURLPrefix = "/uploads/photos"
	}
	c.StaticURLPrefix = "/" + strings.Trim(c.StaticURLPrefix, "/")
	if c.UploadMaxSizeMB <= 0 {
		c.UploadMaxSizeMB = 10
	}
}

// Addr 返回监听地址，格式为 "host:port"
func (c *Config) Addr() string {
	host := c.ServerHost
	if host == "" {
		host = "0.0.0.0"
	}
	port := c.ServerPort
	if port == 0 {
		port = 3000
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// BaseURL 返回基础 URL
func (c *Config) BaseURL() string {
	host := c.ServerHost
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.ServerPort)
}

// CorsOrigins 返回允许跨域的来源列表
func (c *Config) CorsOrigins() []string {
	if strings.TrimSpace(c.ServerCorsOrigins) == "" {
		return []string{c.BaseURL()}
	}
	var origins []string
	for _, o := range strings.Split(c.ServerCorsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// UploadMaxBytes 单文件上传上限（字节）
func (c *Config) UploadMaxBytes() int64 {
	return int64(c.UploadMaxSizeMB) << 20
}

// KafkaBrokers 返回 Kafka broker 列表
func (c *Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.EventsKafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

type (
	APP struct {
		Name           string
		Host           string
		Port           string
		Env            string
		JWTSecret      string
		TokenTTL       time.Duration
		MaxUploadBytes int64
		StoreDriver    string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	Storage struct {
		Driver  string
		BaseDir string
	}
	S3 struct {
		Region          string
		AccessKeyID     string
		SecretAccessKey string
		BucketUploads   string
		Endpoint        string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	AI struct {
		APIKey  string
		Model   string
		Timeout time.Duration
	}

	Config struct {
		App     APP
		DB      DB
		Storage Storage
		S3      S3
		MQ      MQ
		AI      AI
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil && d > 0 {
		return d
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if n, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil && n > 0 {
		return n
	}
	return def
}

func Load() Config {
	app := APP{
		Name:           getEnv("SERVICE_NAME", "excelanalytics"),
		Host:           getEnv("SERVICE_HOST", ""),
		Port:           getEnv("SERVICE_PORT", "5000"),
		Env:            getEnv("SERVICE_ENV", ""),
		JWTSecret:      getEnv("SERVICE_JWT_SECRET", ""),
		TokenTTL:       getEnvDuration("SERVICE_TOKEN_TTL", 24*time.Hour),
		MaxUploadBytes: getEnvInt64("SERVICE_MAX_UPLOAD_BYTES", 10<<20),
		StoreDriver:    getEnv("STORE_DRIVER", StoreDriverPostgres),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}
	storage := Storage{
		Driver:  getEnv("STORAGE_DRIVER", StorageDriverLocal),
		BaseDir: getEnv("STORAGE_BASE_DIR", "./uploads"),
	}
	s3 := S3{
		Region:          getEnv("S3_REGION", ""),
		AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		BucketUploads:   getEnv("S3_BUCKET_UPLOADS", ""),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "excelanalytics.events"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "topic"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "excelanalytics.lifecycle"),
	}
	ai := AI{
		APIKey:  getEnv("GEMINI_API_KEY", ""),
		Model:   getEnv("AI_MODEL", "gemini-1.5-flash"),
		Timeout: getEnvDuration("AI_TIMEOUT", 60*time.Second),
	}

	return Config{
		App:     app,
		DB:      db,
		Storage: storage,
		S3:      s3,
		MQ:      mq,
		AI:      ai,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

// MQEnabled reports whether a broker is configured at all; without one the
// lifecycle events are discarded.
func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

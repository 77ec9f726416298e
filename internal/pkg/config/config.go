package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Store     StoreConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Ledger    LedgerConfig
	Notify    NotifyConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:""`
	DBName   string `envconfig:"DB_NAME" default:"slot_booking"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"16"`
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
	StoreDriverMemory   = "memory"
)

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type MongoConfig struct {
	URI         string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017/?replicaSet=rs0"`
	Database    string        `envconfig:"MONGO_DATABASE" default:"slot_booking"`
	ConnTimeout time.Duration `envconfig:"MONGO_CONN_TIMEOUT" default:"10s"`
}

// Empty Addr keeps accounts in process memory.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:""`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
	Issuer   string `envconfig:"JWT_ISSUER" default:"slot-booking"`
}

type LedgerConfig struct {
	OpenHour     int           `envconfig:"LEDGER_OPEN_HOUR" default:"8"`
	CloseHour    int           `envconfig:"LEDGER_CLOSE_HOUR" default:"22"`
	CacheTTL     time.Duration `envconfig:"LEDGER_CACHE_TTL" default:"60s"`
	StoreTimeout time.Duration `envconfig:"LEDGER_STORE_TIMEOUT" default:"5s"`
	MaxTxRetries int           `envconfig:"LEDGER_MAX_TX_RETRIES" default:"3"`
}

const (
	NotifyDriverLog   = "log"
	NotifyDriverKafka = "kafka"
	NotifyDriverLine  = "line"
)

type NotifyConfig struct {
	Driver           string        `envconfig:"NOTIFY_DRIVER" default:"log"`
	QueueSize        int           `envconfig:"NOTIFY_QUEUE_SIZE" default:"256"`
	Timeout          time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"5s"`
	KafkaBrokers     []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic       string        `envconfig:"KAFKA_TOPIC" default:"reservation-notifications"`
	LineChannelToken string        `envconfig:"LINE_CHANNEL_TOKEN" default:""`
	LinePushEndpoint string        `envconfig:"LINE_PUSH_ENDPOINT" default:"https://api.line.me/v2/bot/message/push"`
}

type RateLimitConfig struct {
	RPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	Burst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *LedgerConfig) Validate() error {
	if c.OpenHour < 0 || c.CloseHour > 24 || c.OpenHour >= c.CloseHour {
		return fmt.Errorf("invalid business hours: open=%d close=%d", c.OpenHour, c.CloseHour)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("invalid cache ttl: %s", c.CacheTTL)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("invalid store timeout: %s", c.StoreTimeout)
	}
	if c.MaxTxRetries < 0 {
		return fmt.Errorf("invalid max tx retries: %d", c.MaxTxRetries)
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Ledger.Validate(); err != nil {
		return Config{}, err
	}
	switch cfg.Store.Driver {
	case StoreDriverPostgres, StoreDriverMongo, StoreDriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
			MaxConns: 16,
		},
		Store: StoreConfig{Driver: StoreDriverMemory},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
			Issuer:   "slot-booking-test",
		},
		Ledger: LedgerConfig{
			OpenHour:     8,
			CloseHour:    22,
			CacheTTL:     60 * time.Second,
			StoreTimeout: 5 * time.Second,
			MaxTxRetries: 3,
		},
		Notify: NotifyConfig{
			Driver:    NotifyDriverLog,
			QueueSize: 16,
			Timeout:   time.Second,
		},
		RateLimit: RateLimitConfig{
			RPS:   1000,
			Burst: 1000,
		},
	}
}

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
// - optional integrations (Google, SMTP, Redis, Kafka) are disabled when their address is empty
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	ActionToken ActionTokenConfig
	Booking     BookingConfig
	Google      GoogleConfig
	SMTP        SMTPConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Reminder    ReminderConfig
	OTel        OTelConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" required:"true"`
	PublicBaseURL   string        `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone   string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// JWTConfig validates host bearer tokens issued by the account service.
type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type ActionTokenConfig struct {
	Secret        string        `envconfig:"ACTION_TOKEN_SECRET" required:"true"`
	CancelTTL     time.Duration `envconfig:"ACTION_TOKEN_CANCEL_TTL" default:"720h"`
	RescheduleTTL time.Duration `envconfig:"ACTION_TOKEN_RESCHEDULE_TTL" default:"720h"`
	// MarkerBackend selects where usage markers live: postgres or redis.
	MarkerBackend string        `envconfig:"TOKEN_MARKER_BACKEND" default:"postgres"`
	MarkerTTL     time.Duration `envconfig:"TOKEN_MARKER_TTL" default:"1440h"`
}

type BookingConfig struct {
	BusyCheckFailClosed bool `envconfig:"BOOKING_BUSY_CHECK_FAIL_CLOSED" default:"false"`
}

type GoogleConfig struct {
	ClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	ClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `envconfig:"GOOGLE_REDIRECT_URL"`
}

func (c GoogleConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM" default:"no-reply@slotbook.local"`
}

type RedisConfig struct {
	Addr            string        `envconfig:"REDIS_ADDR"`
	Password        string        `envconfig:"REDIS_PASSWORD"`
	DB              int           `envconfig:"REDIS_DB" default:"0"`
	RateLimit       int           `envconfig:"RATE_LIMIT_REQUESTS" default:"30"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

type KafkaConfig struct {
	Brokers string `envconfig:"KAFKA_BROKERS"`
	Topic   string `envconfig:"KAFKA_BOOKING_TOPIC" default:"booking.events"`
}

type ReminderConfig struct {
	Enabled   bool          `envconfig:"REMINDER_WORKER_ENABLED" default:"true"`
	Interval  time.Duration `envconfig:"REMINDER_INTERVAL" default:"1m"`
	BatchSize int           `envconfig:"REMINDER_BATCH_SIZE" default:"50"`
}

type OTelConfig struct {
	Enabled      bool    `envconfig:"OTEL_ENABLED" default:"false"`
	ServiceName  string  `envconfig:"OTEL_SERVICE_NAME" default:"slotbook"`
	OTLPEndpoint string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
	SampleRatio  float64 `envconfig:"OTEL_SAMPLING_RATIO" default:"1"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889", // Test port
			PublicBaseURL:   "http://localhost:3000",
			ShutdownTimeout: 5 * time.Second,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-jwt-secret",
			Duration: "1h",
		},
		ActionToken: ActionTokenConfig{
			Secret:        "test-action-secret",
			CancelTTL:     72 * time.Hour,
			RescheduleTTL: 72 * time.Hour,
			MarkerBackend: "postgres",
			MarkerTTL:     24 * time.Hour,
		},
		Redis: RedisConfig{
			RateLimit:       1000,
			RateLimitWindow: time.Minute,
		},
		Kafka: KafkaConfig{
			Topic: "booking.events",
		},
		Reminder: ReminderConfig{
			Enabled:   false,
			Interval:  time.Minute,
			BatchSize: 10,
		},
	}
}

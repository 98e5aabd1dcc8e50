package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

var supportedAlgorithms = []string{"HS256", "HS512"}

type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Postgres PostgresConfig `env:",prefix=POSTGRES_"`
	Redis    RedisConfig    `env:",prefix=REDIS_"`
	JWT      JWTConfig      `env:",prefix=JWT_"`
	Mail     MailConfig     `env:",prefix=MAIL_"`
	S3       S3Config       `env:",prefix=S3_"`
	Security SecurityConfig `env:",prefix="`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	Env      string         `env:"ENV,default=development"`
	LogLevel string         `env:"LOG_LEVEL"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
	// PublicURL is used in confirmation links. When empty the request's Host is
	// trusted instead, which is only acceptable outside production.
	PublicURL string `env:"PUBLIC_URL"`
}

type PostgresConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=contact_book"`
	Password string `env:"PASSWORD,default=contact_book_password"`
	DBName   string `env:"DB,default=contact_book_db"`
	SSLMode  string `env:"SSLMODE,default=disable"`

	MaxOpenConns    int      `env:"MAX_OPEN_CONNS,default=25"`
	MaxIdleConns    int      `env:"MAX_IDLE_CONNS,default=5"`
	ConnMaxLifetime Duration `env:"CONN_MAX_LIFETIME,default=30m"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`

	DialTimeout Duration `env:"DIAL_TIMEOUT,default=5s"`
}

type JWTConfig struct {
	Secret             string   `env:"SECRET,required"`
	Algorithm          string   `env:"ALGORITHM,default=HS256"`
	AccessTokenExpiry  Duration `env:"ACCESS_TOKEN_EXPIRY,default=15m"`
	RefreshTokenExpiry Duration `env:"REFRESH_TOKEN_EXPIRY,default=7d"`
	EmailTokenExpiry   Duration `env:"EMAIL_TOKEN_EXPIRY,default=24h"`
}

type MailConfig struct {
	Server   string `env:"SERVER,default=localhost"`
	Port     int    `env:"PORT,default=465"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM,default=noreply@contact-book.local"`
	FromName string `env:"FROM_NAME,default=Contact Book"`
	SSL      bool   `env:"SSL,default=true"`
	Workers  int    `env:"WORKERS,default=2"`
	Queue    int    `env:"QUEUE_SIZE,default=100"`
}

type S3Config struct {
	Endpoint  string `env:"ENDPOINT,default=http://localhost:9000"`
	PublicURL string `env:"PUBLIC_URL"`
	Region    string `env:"REGION,default=us-east-1"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET,default=avatars"`
}

type SecurityConfig struct {
	BCryptCost        int      `env:"BCRYPT_COST,default=12"`
	RateLimitRequests int      `env:"RATE_LIMIT_REQUESTS,default=10"`
	RateLimitWindow   Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
	// Contact and profile routes allow one request per 20 seconds by default
	APIRateLimitRequests int      `env:"API_RATE_LIMIT_REQUESTS,default=1"`
	APIRateLimitWindow   Duration `env:"API_RATE_LIMIT_WINDOW,default=20s"`
	AvatarMaxBytes       int64    `env:"AVATAR_MAX_BYTES,default=5242880"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=*"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// Load loads configuration from environment variables.
// Variables from the file named by ENV_FILE (default .env) are applied first
// without overriding the ones already set.
func Load(ctx context.Context) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks values envconfig can't express through tags
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if !slices.Contains(supportedAlgorithms, c.JWT.Algorithm) {
		return fmt.Errorf("JWT_ALGORITHM must be one of %v, got %q", supportedAlgorithms, c.JWT.Algorithm)
	}

	if c.Env == "production" && c.Server.PublicURL == "" {
		return fmt.Errorf("SERVER_PUBLIC_URL is required in production")
	}

	if c.Server.PublicURL != "" {
		u, err := url.Parse(c.Server.PublicURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("SERVER_PUBLIC_URL must be an absolute http(s) URL, got %q", c.Server.PublicURL)
		}
	}

	if c.Mail.Workers < 1 {
		return fmt.Errorf("MAIL_WORKERS must be positive")
	}

	return nil
}

// LoadWithDefaults loads configuration with default context
func LoadWithDefaults() (*Config, error) {
	return Load(context.Background())
}

func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	return nil
}

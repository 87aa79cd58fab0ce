package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server   ServerConfig
	App      AppConfig
	Log      LogConfig
	Board    BoardConfig
	Catalog  CatalogConfig
	Cache    CacheConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	MySQL    MySQLConfig
	Mongo    MongoConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	CORSOrigins     []string      `envconfig:"SERVER_CORS_ORIGINS" default:"*"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"buildboard-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"` // text or json
}

// BoardConfig holds build board settings.
type BoardConfig struct {
	Capacity         int    `envconfig:"BOARD_CAPACITY" default:"10"`
	SnapshotKey      string `envconfig:"BOARD_SNAPSHOT_KEY" default:"recovery_requests"`
	TransitionPolicy string `envconfig:"BOARD_TRANSITION_POLICY" default:"permissive"` // permissive or forward-only
}

// CatalogConfig holds item lookup settings.
type CatalogConfig struct {
	LookupDelay time.Duration `envconfig:"CATALOG_LOOKUP_DELAY" default:"800ms"`
}

// CacheConfig holds catalog cache settings.
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"none"` // none, memory or redis
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StorageConfig selects the snapshot slot backend.
type StorageConfig struct {
	Type string `envconfig:"STORAGE_TYPE" default:"sqlite"` // sqlite, postgres, mysql, redis, mongodb or memory
	Path string `envconfig:"STORAGE_PATH" default:"./data/buildboard.db"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `envconfig:"PG_HOST" default:"localhost"`
	Port     int    `envconfig:"PG_PORT" default:"5432"`
	Name     string `envconfig:"PG_NAME" default:"buildboard"`
	User     string `envconfig:"PG_USER" default:"postgres"`
	Password string `envconfig:"PG_PASS" default:""`
	SSLMode  string `envconfig:"PG_SSLMODE" default:"disable"`
}

// MySQLConfig holds MySQL connection settings.
type MySQLConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"3306"`
	Name     string `envconfig:"DB_NAME" default:"buildboard"`
	User     string `envconfig:"DB_USER" default:"root"`
	Password string `envconfig:"DB_PASS" default:""`
}

// MongoConfig holds MongoDB settings.
type MongoConfig struct {
	URI        string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	Database   string `envconfig:"MONGODB_DATABASE" default:"buildboard"`
	Collection string `envconfig:"MONGODB_COLLECTION" default:"board_snapshots"`
}

// DSN returns the PostgreSQL connection string.
func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Name, p.SSLMode)
}

// DSN returns the MySQL data source name.
func (m *MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		m.User, m.Password, m.Host, m.Port, m.Name)
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

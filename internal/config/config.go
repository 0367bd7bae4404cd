package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config хранит все настройки приложения
type Config struct {
	Env        string `mapstructure:"env"` // local, dev, production
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Pagination PaginationConfig
	Quiz       QuizConfig
	CORS       CORSConfig      `mapstructure:"cors"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	Mode         string // debug, release, test (режим gin)
	ReadTimeout  int    `mapstructure:"read_timeout"`  // секунды
	WriteTimeout int    `mapstructure:"write_timeout"` // секунды
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Driver         string // postgres | memory
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string `mapstructure:"migrations_path"`
	MaxOpenConns   int    `mapstructure:"max_open_conns"`
	MaxIdleConns   int    `mapstructure:"max_idle_conns"`
}

// RedisConfig содержит настройки подключения к Redis.
// Redis нужен только для rate limiting и может быть выключен.
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт).
	Addrs []string `mapstructure:"addrs"`

	// Addr: Адрес для режима 'single', используется если Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // мс
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // мс
}

// PaginationConfig содержит настройки постраничной выдачи
type PaginationConfig struct {
	QuestionsPerPage int `mapstructure:"questions_per_page"`
}

// QuizConfig содержит настройки вопросов и викторины
type QuizConfig struct {
	MinDifficulty int `mapstructure:"min_difficulty"`
	MaxDifficulty int `mapstructure:"max_difficulty"`
	// MaxQuestions ограничивает длину сессии викторины (0 - без ограничения)
	MaxQuestions int `mapstructure:"max_questions"`
}

// CORSConfig содержит настройки CORS
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RateLimitConfig содержит настройки ограничения частоты изменяющих запросов
type RateLimitConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL подключения (используется golang-migrate CLI)
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// IsProduction сообщает, запущено ли приложение в production окружении
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// setDefaults устанавливает значения по умолчанию
func setDefaults(vip *viper.Viper) {
	vip.SetDefault("env", "local")

	vip.SetDefault("server.port", "5000")
	vip.SetDefault("server.mode", "debug")
	vip.SetDefault("server.read_timeout", 10)
	vip.SetDefault("server.write_timeout", 10)

	vip.SetDefault("database.driver", DriverPostgres)
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.migrations_path", "file://migrations")
	vip.SetDefault("database.max_open_conns", 25)
	vip.SetDefault("database.max_idle_conns", 10)

	vip.SetDefault("redis.enabled", false)
	vip.SetDefault("redis.mode", "single")

	vip.SetDefault("pagination.questions_per_page", 10)

	vip.SetDefault("quiz.min_difficulty", 1)
	vip.SetDefault("quiz.max_difficulty", 5)
	vip.SetDefault("quiz.max_questions", 0)

	vip.SetDefault("cors.allow_origins", []string{"*"})

	vip.SetDefault("rate_limit.enabled", false)
	vip.SetDefault("rate_limit.max_requests", 30)
	vip.SetDefault("rate_limit.window", time.Minute)
}

// bindEnv привязывает переменные окружения явно
func bindEnv(vip *viper.Viper) {
	vip.BindEnv("env", "APP_ENV")

	// Привязка для секции Server
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.mode", "GIN_MODE")

	// Привязка для секции Database
	vip.BindEnv("database.driver", "DATABASE_DRIVER")
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.migrations_path", "DATABASE_MIGRATIONS_PATH")

	// Привязка для секции Redis
	vip.BindEnv("redis.enabled", "REDIS_ENABLED")
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("pagination.questions_per_page", "QUESTIONS_PER_PAGE")
	vip.BindEnv("quiz.max_questions", "QUIZ_MAX_QUESTIONS")
	vip.BindEnv("cors.allow_origins", "CORS_ALLOW_ORIGINS")
	vip.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, без глобального состояния

	setDefaults(vip)
	bindEnv(vip)

	// Файл конфигурации необязателен: всё можно задать через окружение
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
		if c.IsProduction() && c.Database.Password == "" {
			return fmt.Errorf("database password is required in production (check DATABASE_PASSWORD env var)")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Pagination.QuestionsPerPage < 1 {
		return fmt.Errorf("pagination.questions_per_page must be positive, got %d", c.Pagination.QuestionsPerPage)
	}
	if c.Quiz.MinDifficulty > c.Quiz.MaxDifficulty {
		return fmt.Errorf("quiz.min_difficulty (%d) is greater than quiz.max_difficulty (%d)", c.Quiz.MinDifficulty, c.Quiz.MaxDifficulty)
	}
	if c.Quiz.MaxQuestions < 0 {
		return fmt.Errorf("quiz.max_questions must not be negative")
	}
	if c.Redis.Enabled && len(c.Redis.Addrs) == 0 && c.Redis.Addr == "" {
		return fmt.Errorf("redis is enabled but neither redis.addrs nor redis.addr is set")
	}
	if c.RateLimit.Enabled && !c.Redis.Enabled {
		return fmt.Errorf("rate_limit requires redis.enabled=true")
	}
	return nil
}

// config предоставляет структуру конфигурации NeuroNet
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"regexp"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/robfig/cron/v3"
)

// Драйверы хранилища постов.
const (
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
//
// После чтения файла ENV-переменные накладываются поверх значений из YAML.
type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTP       HTTPConfig       `yaml:"http"`
	Storage    StorageConfig    `yaml:"storage"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Redis      RedisConfig      `yaml:"redis"`
	S3         S3Config         `yaml:"s3"`
	Purchases  PurchasesConfig  `yaml:"purchases"`
	Share      ShareConfig      `yaml:"share"`
	Auth       AuthConfig       `yaml:"auth"`
	Feed       FeedConfig       `yaml:"feed"`
	Moderation ModerationConfig `yaml:"moderation"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Timeouts   TimeoutConfig    `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	// Общий дедлайн обработки HTTP-запроса.
	Request time.Duration `yaml:"request" env:"REQUEST_TIMEOUT" env-default:"15s"`
	// Дедлайн на подключение к внешним хранилищам при старте.
	Connect time.Duration `yaml:"connect" env:"CONNECT_TIMEOUT" env-default:"10s"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host     string `yaml:"host"      env:"HTTP_HOST"      env-default:"0.0.0.0"`
	Port     string `yaml:"port"      env:"HTTP_PORT"      env-default:"8080"`
	BasePath string `yaml:"base_path" env:"HTTP_BASE_PATH" env-default:"/api"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// StorageConfig — источник постов ленты.
type StorageConfig struct {
	// postgres | badger.
	Driver      string `yaml:"driver"       env:"STORAGE_DRIVER" env-default:"badger"`
	PostgresURL string `yaml:"postgres_url" env:"DATABASE_URL"`
	BadgerPath  string `yaml:"badger_path"  env:"BADGER_PATH"    env-default:"./data/posts"`
}

// MongoConfig — источник комментариев. Пустой URL отключает загрузку с сервера.
type MongoConfig struct {
	URL string `yaml:"url" env:"MONGO_URL"`
}

// RedisConfig — кэш статуса подписки. Пустой URL отключает кэш.
type RedisConfig struct {
	URL    string        `yaml:"url"    env:"REDIS_URL"`
	Prefix string        `yaml:"prefix" env:"REDIS_PREFIX"    env-default:"neuronet:ent:"`
	TTL    time.Duration `yaml:"ttl"    env:"ENTITLEMENT_TTL" env-default:"5m"`
}

// S3Config — хранилище медиа постов (MinIO/S3). Пустой Endpoint отключает загрузку.
type S3Config struct {
	Endpoint      string        `yaml:"endpoint"        env:"S3_ENDPOINT"`
	RootUser      string        `yaml:"root_user"       env:"S3_ROOT_USER"`
	RootPassword  string        `yaml:"root_password"   env:"S3_ROOT_PASSWORD"`
	Bucket        string        `yaml:"bucket"          env:"S3_BUCKET"          env-default:"media"`
	PresignTTL    time.Duration `yaml:"presign_ttl"     env:"S3_PRESIGN_TTL"     env-default:"15m"`
	PublicBaseURL string        `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
	MaxSizeBytes  int64         `yaml:"max_size_bytes"  env:"MEDIA_MAX_SIZE"     env-default:"52428800"`
	// Разрешённые типы; по умолчанию изображения и mp4.
	AllowedContentTypes []string `yaml:"allowed_content_types" env:"MEDIA_CONTENT_TYPES" env-separator:"," env-default:"image/jpeg,image/png,image/webp,video/mp4"`
}

// PurchasesConfig — интеграция с RevenueCat.
type PurchasesConfig struct {
	BaseURL     string `yaml:"base_url"    env:"REVENUECAT_BASE_URL" env-default:"https://api.revenuecat.com/v1"`
	APIKey      string `yaml:"api_key"     env:"REVENUECAT_API_KEY"`
	Entitlement string `yaml:"entitlement" env:"PREMIUM_ENTITLEMENT" env-default:"premium"`
	Platform    string `yaml:"platform"    env:"REVENUECAT_PLATFORM" env-default:"android"`
}

// ShareConfig — куда уходит «share intent». Пустой токен — только лог.
type ShareConfig struct {
	TelegramToken  string `yaml:"telegram_token"   env:"TELEGRAM_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

// AuthConfig — параметры мок-аутентификации и выпуска токенов.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"      env:"JWT_SECRET"      env-default:"dev-secret-change-me"`
	Issuer        string        `yaml:"issuer"          env:"JWT_ISSUER"      env-default:"neuronet"`
	Audience      []string      `yaml:"audience"        env:"JWT_AUDIENCE"    env-separator:"," env-default:"neuronet-app"`
	TokenTTL      time.Duration `yaml:"token_ttl"       env:"TOKEN_TTL"       env-default:"24h"`
	TwoFactorCode string        `yaml:"two_factor_code" env:"TWO_FACTOR_CODE" env-default:"123456"`
	NetworkDelay  time.Duration `yaml:"network_delay"   env:"AUTH_DELAY"      env-default:"1s"`
	VerifyDelay   time.Duration `yaml:"verify_delay"    env:"AUTH_VERIFY_DELAY" env-default:"500ms"`
}

// FeedConfig — имитация задержек и параметры ленты.
type FeedConfig struct {
	MockDelay     time.Duration `yaml:"mock_delay"     env:"FEED_MOCK_DELAY"     env-default:"500ms"`
	ErrorDelay    time.Duration `yaml:"error_delay"    env:"FEED_ERROR_DELAY"    env-default:"1s"`
	DeleteDelay   time.Duration `yaml:"delete_delay"   env:"FEED_DELETE_DELAY"   env-default:"300ms"`
	CommentsDelay time.Duration `yaml:"comments_delay" env:"FEED_COMMENTS_DELAY" env-default:"500ms"`
	// Идентификатор автора для постов, созданных из приложения.
	CurrentUserID string `yaml:"current_user_id" env:"FEED_USER_ID" env-default:"bdd5700a-1157-4581-b547-063a563fc854"`
	// Верхняя граница выборки постов за один запрос; 0 — без ограничения.
	Limit int `yaml:"limit" env:"FEED_LIMIT" env-default:"0"`
}

// ModerationConfig — словари классификатора.
type ModerationConfig struct {
	Delay     time.Duration `yaml:"delay"     env:"MODERATION_DELAY"     env-default:"300ms"`
	Abuse     []string      `yaml:"abuse"     env:"MODERATION_ABUSE"     env-separator:"," env-default:"kill,harm yourself,attack you,hurt you,threaten"`
	Profanity []string      `yaml:"profanity" env:"MODERATION_PROFANITY" env-separator:"," env-default:"damn,hell,crap,ass"`
	Scam      []string      `yaml:"scam"      env:"MODERATION_SCAM"      env-separator:"," env-default:"http,send money"`
}

// SchedulerConfig — периодические задачи (cron-спецификации, 5 полей).
type SchedulerConfig struct {
	Timezone        string `yaml:"timezone"         env:"SCHEDULER_TZ"          env-default:"UTC"`
	EntitlementSync string `yaml:"entitlement_sync" env:"ENTITLEMENT_SYNC_CRON" env-default:"*/15 * * * *"`
	// Пустая строка отключает периодическое обновление ленты.
	FeedRefresh string `yaml:"feed_refresh" env:"FEED_REFRESH_CRON"`
}

var twoFactorCodeRe = regexp.MustCompile(`^[0-9]{6}$`)

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		c, err := tryRead("local.yaml")
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Storage.PostgresURL == "" {
			return fmt.Errorf("storage.postgres_url is required for driver %q", DriverPostgres)
		}
	case DriverBadger:
		if c.Storage.BadgerPath == "" {
			return fmt.Errorf("storage.badger_path is required for driver %q", DriverBadger)
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q", DriverPostgres, DriverBadger, c.Storage.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0")
	}

	if !twoFactorCodeRe.MatchString(c.Auth.TwoFactorCode) {
		return fmt.Errorf("auth.two_factor_code must be 6 digits")
	}

	delays := map[string]time.Duration{
		"auth.network_delay":  c.Auth.NetworkDelay,
		"auth.verify_delay":   c.Auth.VerifyDelay,
		"feed.mock_delay":     c.Feed.MockDelay,
		"feed.error_delay":    c.Feed.ErrorDelay,
		"feed.delete_delay":   c.Feed.DeleteDelay,
		"feed.comments_delay": c.Feed.CommentsDelay,
		"moderation.delay":    c.Moderation.Delay,
	}
	for name, d := range delays {
		if d < 0 {
			return fmt.Errorf("%s must be >= 0", name)
		}
	}

	if c.Feed.Limit < 0 {
		return fmt.Errorf("feed.limit must be >= 0")
	}

	if c.Feed.CurrentUserID == "" {
		return fmt.Errorf("feed.current_user_id is required")
	}

	if c.S3.Endpoint != "" && c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required when s3.endpoint is set")
	}

	if c.Share.TelegramToken != "" && c.Share.TelegramChatID == 0 {
		return fmt.Errorf("share.telegram_chat_id is required when share.telegram_token is set")
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("scheduler.timezone: %w", err)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, spec := range map[string]string{
		"scheduler.entitlement_sync": c.Scheduler.EntitlementSync,
		"scheduler.feed_refresh":     c.Scheduler.FeedRefresh,
	} {
		if spec == "" {
			continue
		}
		if _, err := parser.Parse(spec); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

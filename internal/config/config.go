package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// ForwardViaUser пересылка от имени пользовательского аккаунта (MTProto)
	ForwardViaUser = "user"
	// ForwardViaBot пересылка через Bot API
	ForwardViaBot = "bot"
)

// Config представляет полную конфигурацию приложения
type Config struct {
	Logs     LogsConfig     `toml:"logs"`
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Telegram TelegramConfig `toml:"telegram"`
	Monitor  MonitorConfig  `toml:"monitor"`
	Bot      BotConfig      `toml:"bot"`
	Worker   WorkerConfig   `toml:"worker"`
}

// LogsConfig содержит настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Host            string `toml:"host"` // По умолчанию 127.0.0.1: у /api/v1 нет авторизации
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL для снимка справочника адресатов
type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// MetricsConfig содержит настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TelegramConfig настройки MTProto клиента
type TelegramConfig struct {
	APIID       int    `toml:"api_id"`
	APIHash     string `toml:"api_hash"`
	SessionPath string `toml:"session_path"`
	Phone       string `toml:"phone"`    // Нужен только для интерактивного входа
	Password    string `toml:"password"` // Пароль 2FA, если включён
}

// MonitorConfig настройки мониторинга
type MonitorConfig struct {
	TargetChatID int64  `toml:"target_chat_id"` // 0 - пересылка выключена
	ForwardVia   string `toml:"forward_via"`    // user | bot
	AutoStart    bool   `toml:"auto_start"`
}

// BotConfig настройки управляющего бота (Bot API)
type BotConfig struct {
	Token      string  `toml:"token"`
	WebhookURL string  `toml:"webhook_url"` // Опционально, иначе long polling
	AdminIDs   []int64 `toml:"admin_ids"`
}

// WorkerConfig содержит настройки worker'ов
type WorkerConfig struct {
	ForwardQueueSize         int `toml:"forward_queue_size"`
	ForwardTimeout           int `toml:"forward_timeout"`            // в секундах
	DirectoryRefreshInterval int `toml:"directory_refresh_interval"` // в минутах
	StartTimeout             int `toml:"start_timeout"`              // в секундах
}

// DSN формирует строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Addr адрес для http.Server
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.HTTPPort))
}

// BotEnabled включён ли управляющий бот
func (b BotConfig) BotEnabled() bool {
	return b.Token != ""
}

// IsAdmin проверяет, может ли пользователь управлять мониторингом через бота
func (b BotConfig) IsAdmin(userID int64) bool {
	for _, id := range b.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Load загружает конфигурацию из TOML файла с поддержкой переменных окружения
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	overrideFromEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// overrideFromEnv переопределяет значения из переменных окружения
func overrideFromEnv(cfg *Config) {
	// Telegram
	if v := os.Getenv("TELEGRAM_API_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cfg.Telegram.APIID = id
		}
	}
	if v := os.Getenv("TELEGRAM_API_HASH"); v != "" {
		cfg.Telegram.APIHash = v
	}
	if v := os.Getenv("TELEGRAM_SESSION_PATH"); v != "" {
		cfg.Telegram.SessionPath = v
	}
	if v := os.Getenv("TELEGRAM_PHONE"); v != "" {
		cfg.Telegram.Phone = v
	}
	if v := os.Getenv("TELEGRAM_PASSWORD"); v != "" {
		cfg.Telegram.Password = v
	}

	// Monitor
	if v := os.Getenv("MONITOR_TARGET_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Monitor.TargetChatID = id
		}
	}
	if v := os.Getenv("MONITOR_FORWARD_VIA"); v != "" {
		cfg.Monitor.ForwardVia = v
	}
	if v := os.Getenv("MONITOR_AUTO_START"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Monitor.AutoStart = enabled
		}
	}

	// Bot
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Bot.Token = v
	}
	if v := os.Getenv("BOT_WEBHOOK_URL"); v != "" {
		cfg.Bot.WebhookURL = v
	}
	if v := os.Getenv("BOT_ADMIN_IDS"); v != "" {
		cfg.Bot.AdminIDs = parseIDList(v)
	}

	// Database
	if v := os.Getenv("DB_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Database.Enabled = enabled
		}
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}

	// Server
	if v := os.Getenv("HTTP_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}

	// Logs
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Logs.File = v
	}

	// Metrics
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}
	if v := os.Getenv("METRICS_SERVICE_NAME"); v != "" {
		cfg.Metrics.ServiceName = v
	}

	// Worker
	if v := os.Getenv("WORKER_FORWARD_QUEUE_SIZE"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			cfg.Worker.ForwardQueueSize = size
		}
	}
	if v := os.Getenv("WORKER_DIRECTORY_REFRESH_INTERVAL"); v != "" {
		if interval, err := strconv.Atoi(v); err == nil {
			cfg.Worker.DirectoryRefreshInterval = interval
		}
	}
}

// parseIDList разбирает список ID через запятую, некорректные значения пропускаются
func parseIDList(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// validate проверяет корректность конфигурации
func validate(cfg *Config) error {
	// Telegram validation
	if cfg.Telegram.APIID <= 0 {
		return fmt.Errorf("telegram api_id is required")
	}
	if cfg.Telegram.APIHash == "" {
		return fmt.Errorf("telegram api_hash is required")
	}
	if cfg.Telegram.SessionPath == "" {
		cfg.Telegram.SessionPath = "./session/session.json"
	}

	// Monitor validation
	if cfg.Monitor.ForwardVia == "" {
		cfg.Monitor.ForwardVia = ForwardViaUser
	}
	if cfg.Monitor.ForwardVia != ForwardViaUser && cfg.Monitor.ForwardVia != ForwardViaBot {
		return fmt.Errorf("monitor forward_via must be %q or %q", ForwardViaUser, ForwardViaBot)
	}
	if cfg.Monitor.ForwardVia == ForwardViaBot && !cfg.Bot.BotEnabled() {
		return fmt.Errorf("bot token is required when forward_via is %q", ForwardViaBot)
	}

	// Database validation
	if cfg.Database.Enabled {
		if cfg.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
			return fmt.Errorf("database port must be between 1 and 65535")
		}
		if cfg.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if cfg.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	}

	// Server validation
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.HTTPPort < 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("HTTP port must be between 1 and 65535")
	}

	// Logs validation
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info" // default
	}
	if cfg.Logs.File == "" {
		cfg.Logs.File = "./logs/app.log" // default
	}

	// Set defaults for timeouts if not specified
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}

	// Set defaults for database connection pool
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 5
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300 // 5 minutes
	}

	// Metrics validation and defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "telegram_monitor"
	}

	// Worker validation and defaults
	if cfg.Worker.ForwardQueueSize <= 0 {
		cfg.Worker.ForwardQueueSize = 100
	}
	if cfg.Worker.ForwardTimeout <= 0 {
		cfg.Worker.ForwardTimeout = 15
	}
	if cfg.Worker.DirectoryRefreshInterval <= 0 {
		cfg.Worker.DirectoryRefreshInterval = 30 // 30 minutes default
	}
	if cfg.Worker.StartTimeout <= 0 {
		cfg.Worker.StartTimeout = 60
	}

	return nil
}

// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	RabbitMQConnection      string        `yaml:"rabbitmq_connection"`
	RabbitMQMaxRetries      int           `yaml:"rabbitmq_max_retries" env-default:"5"`
	RabbitMQRetryDelay      time.Duration `yaml:"rabbitmq_retry_delay" env-default:"3s"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Meetings                `yaml:"meetings"`
	SMSProvider             `yaml:"sms_provider"`
	SMTP                    `yaml:"smtp"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Meetings задаёт сетку календаря встреч: рабочие часы салона, шаг
// слотов недельного вида и окна напоминаний перед встречей.
type Meetings struct {
	StartHour           string `yaml:"meetings_start_hour" env-default:"10:00"`
	EndHour             string `yaml:"meetings_end_hour" env-default:"20:00"`
	SlotMinutes         int    `yaml:"meetings_slot_minutes" env-default:"30"`
	ReminderHoursBefore []int  `yaml:"reminder_hours_before" env-default:"1"`
	ReminderDaysBefore  []int  `yaml:"reminder_days_before" env-default:"1"`
}

// SMSProvider структура для настройки SMS-шлюза
type SMSProvider struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	SenderLine string        `yaml:"sender_line"`
	TimeoutSMS time.Duration `yaml:"timeout" env-default:"10s"`
}

// SMTP структура для настройки почтового транспорта
type SMTP struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port" env-default:"587"`
	Username     string `yaml:"username"`
	PasswordSMTP string `yaml:"password"`
	From         string `yaml:"from"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс
// при любой ошибке чтения.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	// Слот короче 5 минут не имеет смысла для сетки салона.
	if cfg.SlotMinutes < 5 {
		cfg.SlotMinutes = 5
	}
	return &cfg
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Debug      bool          `yaml:"debug"`
	AppSecret  string        `yaml:"app_secret" env:"APP_SECRET" env-required:"true"`
	SessionTTL time.Duration `yaml:"session_ttl" env-default:"720h"`
	Server     Server        `yaml:"server"`
	DB         DB            `yaml:"db"`
	Clients    ClientsConfig `yaml:"clients"`
	SMTPServer SMTPServer    `yaml:"smtp_server"`
	BgTasks    BgTasks       `yaml:"bg_tasks"`
}

type Server struct {
	Port string `yaml:"port" env-default:"8000"`
	Host string `yaml:"host" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"2s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"2s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type DB struct {
	Dsn             string        `yaml:"dsn" env:"DB_DSN" env-required:"true"`
	MaxConns        int           `yaml:"max_conns" env-default:"25"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"10m"`
	QueryTimeout    time.Duration `yaml:"query_timeout" env-default:"3s"`
}

type Client struct {
	Addr         string        `yaml:"addr" env-required:"true"`
	ApiKey       string        `yaml:"api_key" env:"CATALOG_API_KEY"`
	Timeout      time.Duration `yaml:"timeout" env-default:"5s"`
	RetriesCount int           `yaml:"retries_count" env-default:"1"`
}

type ClientsConfig struct {
	Catalog Client `yaml:"catalog"`
}

type SMTPServer struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port" env-default:"25"`
	Timeout      time.Duration `yaml:"timeout" env-default:"5s"`
	Username     string        `yaml:"username"`
	Password     string        `yaml:"password" env:"SMTP_PASSWORD"`
	Sender       string        `yaml:"sender" env-default:"CineVault <no-reply@cinevault.local>"`
	RetriesCount int           `yaml:"retries_count" env-default:"3"`
}

type BgTasks struct {
	MaxWorkers   int `yaml:"max_workers" env-default:"4"`
	MaxQueueSize int `yaml:"max_queue_size" env-default:"100"`
}

func MustLoad(configPath string) *Config {
	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic(fmt.Errorf("config file %s not found", configPath))
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic(err)
	}

	return &cfg
}

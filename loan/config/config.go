package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/biblioteca/loan-service/pkg/kafka"
	"github.com/biblioteca/loan-service/pkg/logger"
	"github.com/biblioteca/loan-service/pkg/postgres"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LOAN_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"LOAN_HTTP_PORT"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration
}

type BooksHTTPServer struct {
	Host string `envconfig:"BOOKS_HTTP_HOST"`
	Port string `envconfig:"BOOKS_HTTP_PORT"`
}

type UsersHTTPServer struct {
	Host string `envconfig:"USERS_HTTP_HOST"`
	Port string `envconfig:"USERS_HTTP_PORT"`
}

type Config struct {
	Server          HTTPServer `yaml:"server"`
	Database        postgres.Config
	Kafka           kafka.Config
	BooksHTTPServer BooksHTTPServer
	UsersHTTPServer UsersHTTPServer
	Log             logger.Log `yaml:"log"`
}

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = d
	}
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg *Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}

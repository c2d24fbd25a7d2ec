package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config defines the app configuration.
type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"development" validate:"oneof=development staging production"`
	Database struct {
		DSN          string `yaml:"dsn" env:"DSN" validate:"required"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25" validate:"gte=1"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25" validate:"gte=0"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m" validate:"required"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level" env:"LOGLEVEL" env-default:"info" validate:"oneof=debug info error fatal off"`
	} `yaml:"log"`
	Users struct {
		// SuppressLookupErrors reports failed user lookups as missing users.
		SuppressLookupErrors bool `yaml:"suppress_lookup_errors" env:"SUPPRESSLOOKUPERRORS"`
	} `yaml:"users"`
	Cache struct {
		TTL      time.Duration `yaml:"ttl" env:"CACHETTL" env-default:"1m"`
		Capacity uint64        `yaml:"capacity" env:"CACHECAPACITY" env-default:"1000"`
	} `yaml:"cache"`
	SMTP struct {
		Host     string `yaml:"host" env:"SMTPHOST"`
		Port     int    `yaml:"port" env:"SMTPPORT" env-default:"25"`
		Username string `yaml:"username" env:"SMTPUSERNAME"`
		Password string `yaml:"password" env:"SMTPPASSWORD"`
		Sender   string `yaml:"sender" env:"SMTPSENDER" env-default:"LightBnB <no-reply@lightbnb.example>"`
	} `yaml:"smtp"`
	S3 struct {
		AccessKeyID     string `yaml:"access_key_id" env:"ACCESSKEYID"`
		SecretAccessKey string `yaml:"secret_access_key" env:"SECRETACCESSKEY"`
		Region          string `yaml:"region" env:"REGION"`
		Bucket          string `yaml:"bucket" env:"BUCKET"`
	} `yaml:"s3"`
	Import struct {
		RPS   float64 `yaml:"rps" env:"IMPORTRPS" env-default:"20" validate:"gt=0"`
		Burst int     `yaml:"burst" env:"IMPORTBURST" env-default:"5" validate:"gte=1"`
	} `yaml:"import"`
}

// Decode reads the configuration from the YAML file at path, overriding values
// with environment variables. An empty path reads the environment only.
func Decode(path string) (Config, error) {
	var cfg Config
	var err error
	if path == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(path, &cfg)
	}
	if err != nil {
		return Config{}, err
	}
	err = validator.New().Struct(cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MailEnabled reports whether an SMTP server has been configured.
func (c Config) MailEnabled() bool {
	return c.SMTP.Host != ""
}

// S3Enabled reports whether photo uploads can be stored.
func (c Config) S3Enabled() bool {
	return c.S3.Bucket != "" && c.S3.Region != ""
}

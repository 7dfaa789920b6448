package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const DefaultLanguageCode = "en"

type Config struct {
	Database  Database  `yaml:"database"`
	PHEI      PHEI      `yaml:"phei"`
	Curve     Curve     `yaml:"curve"`
	Export    Export    `yaml:"export"`
	Telegram  Telegram  `yaml:"telegram"`
	Scheduler Scheduler `yaml:"scheduler"`
	Logger    Logger    `yaml:"logger"`
}

type Database struct {
	Host     string `env-default:"localhost" yaml:"host"`
	Port     int    `env-default:"5432" yaml:"port"`
	User     string `env-default:"postgres" yaml:"user"`
	Password string `env-default:"postgres" yaml:"password"`
	Name     string `env-default:"postgres" yaml:"name"`
	SSLMode  string `env-default:"disable" yaml:"ssl-mode"`
}

func (d *Database) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (d *Database) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode) //nolint:nosprintfhostport // it's ok
}

type PHEI struct {
	BaseURL        string `env-default:"https://www.phei.co.id/Data/HPW-dan-Imbal-Hasil" yaml:"base-url"`
	TimeoutSeconds int    `env-default:"60" yaml:"timeout-seconds"`
}

func (p *PHEI) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

type Curve struct {
	MinYield  float64 `env-default:"0.0001" yaml:"min-yield"`
	MaxYield  float64 `env-default:"0.5" yaml:"max-yield"`
	MinTenors int     `env-default:"3" yaml:"min-tenors"`
}

type Export struct {
	OutputDir string `env-default:"./data/daily" yaml:"output-dir"`
}

type Telegram struct {
	Token string `env-default:"" yaml:"token"`
}

type Scheduler struct {
	// PHEI refreshes the benchmark tables after the Jakarta close.
	CronSpec string `env-default:"30 17 * * 1-5" yaml:"cron-spec"`
}

type Logger struct {
	Level           string     `env-default:"info" yaml:"level"`
	ParsedSlogLevel slog.Level `yaml:"-"`
	GORMLevel       string     `env-default:"info" yaml:"gorm_level"`
	ParsedGORMLevel slog.Level `yaml:"-"`
}

// MustLoad loads config from a file.
func MustLoad(configPath string) *Config {
	cnf := &Config{}

	if err := cleanenv.ReadConfig(configPath, cnf); err != nil {
		panic(fmt.Errorf("cannot read config: %w", err))
	}

	switch cnf.Logger.GORMLevel {
	case "silent":
		cnf.Logger.ParsedGORMLevel = slog.LevelDebug
	case "info":
		cnf.Logger.ParsedGORMLevel = slog.LevelInfo
	case "warn":
		cnf.Logger.ParsedGORMLevel = slog.LevelWarn
	case "error":
		cnf.Logger.ParsedGORMLevel = slog.LevelError
	default:
		cnf.Logger.ParsedGORMLevel = slog.LevelInfo
	}

	switch cnf.Logger.Level {
	case "debug":
		cnf.Logger.ParsedSlogLevel = slog.LevelDebug
	case "info":
		cnf.Logger.ParsedSlogLevel = slog.LevelInfo
	case "warn":
		cnf.Logger.ParsedSlogLevel = slog.LevelWarn
	case "error":
		cnf.Logger.ParsedSlogLevel = slog.LevelError
	default:
		cnf.Logger.ParsedSlogLevel = slog.LevelInfo
	}

	return cnf
}

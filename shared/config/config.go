package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	defaultHTTPPort          = 8080
	defaultThreadsPerPage    = 10
	defaultThreadTitleMaxLen = 100
	defaultMessageTextMaxLen = 10_000
	defaultStaticDir         = "static"
	defaultTemplatesDir      = "templates"
	defaultReadTimeout       = 5 * time.Second
	defaultWriteTimeout      = 10 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HTTPPort           int           `yaml:"http_port"`
	ThreadsPerPage     int           `yaml:"threads_per_page"`
	ThreadTitleMaxLen  int           `yaml:"thread_title_max_len"`
	MessageTextMaxLen  int           `yaml:"message_text_max_len"`
	LogLevel           string        `yaml:"log_level"`
	LogJSON            bool          `yaml:"log_json"`
	StaticDir          string        `yaml:"static_dir"`
	TemplatesDir       string        `yaml:"templates_dir"`
	SecureCookies      bool          `yaml:"secure_cookies"` // enables HSTS
	CorsAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	ReadTimeout        time.Duration `yaml:"read_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
}

type Pg struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Dbname       string `yaml:"dbname"`
	SSLMode      string `yaml:"sslmode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	// URL overrides every other field when set (DATABASE_URL)
	URL string `yaml:"url"`
}

type Private struct {
	Pg Pg `yaml:"pg"`
}

// DSN returns the lib/pq connection string.
func (p Pg) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Dbname, sslMode)
}

// PageSize is the number of threads on one list page. Never returns a non-positive value.
func (p Public) PageSize() int {
	if p.ThreadsPerPage <= 0 {
		return defaultThreadsPerPage
	}
	return p.ThreadsPerPage
}

func (p *Public) applyDefaults() {
	if p.HTTPPort <= 0 {
		p.HTTPPort = defaultHTTPPort
	}
	if p.ThreadsPerPage <= 0 {
		p.ThreadsPerPage = defaultThreadsPerPage
	}
	if p.ThreadTitleMaxLen <= 0 {
		p.ThreadTitleMaxLen = defaultThreadTitleMaxLen
	}
	if p.MessageTextMaxLen <= 0 {
		p.MessageTextMaxLen = defaultMessageTextMaxLen
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
	if p.StaticDir == "" {
		p.StaticDir = defaultStaticDir
	}
	if p.TemplatesDir == "" {
		p.TemplatesDir = defaultTemplatesDir
	}
	if p.ReadTimeout <= 0 {
		p.ReadTimeout = defaultReadTimeout
	}
	if p.WriteTimeout <= 0 {
		p.WriteTimeout = defaultWriteTimeout
	}
	if p.ShutdownTimeout <= 0 {
		p.ShutdownTimeout = defaultShutdownTimeout
	}
}

// applyEnv lets the process environment override file values, the same way the
// container deployment passes DATABASE_URL and PORT.
func (c *Config) applyEnv() {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.Private.Pg.URL = url
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			c.Public.HTTPPort = p
		}
	}
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file: " + configPath + ": " + err.Error())
	}
}

// Parse builds a Config from raw yaml documents. Defaults are applied, the environment is not consulted.
func Parse(public, private []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(public, &cfg.Public); err != nil {
		return nil, fmt.Errorf("public config: %w", err)
	}
	if err := yaml.Unmarshal(private, &cfg.Private); err != nil {
		return nil, fmt.Errorf("private config: %w", err)
	}
	cfg.Public.applyDefaults()
	return cfg, nil
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{Public: public, Private: private}
	cfg.applyEnv()
	cfg.Public.applyDefaults()
	return cfg
}

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix 是所有环境变量覆盖项的前缀，例如 BLOG_DATABASE_DRIVER。
const EnvPrefix = "BLOG"

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	Server    ServerConfig    `mapstructure:"server"    yaml:"server"`
	Site      SiteConfig      `mapstructure:"site"      yaml:"site"`
	Database  DatabaseConfig  `mapstructure:"database"  yaml:"database"`
	Mail      MailConfig      `mapstructure:"mail"      yaml:"mail"`
	Log       LogConfig       `mapstructure:"log"       yaml:"log"`
	SuperUser SuperUserConfig `mapstructure:"superuser" yaml:"superuser"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"      yaml:"listen_addr"`
	GinMode         string `mapstructure:"gin_mode"         yaml:"gin_mode"`
	SessionSecret   string `mapstructure:"session_secret"   yaml:"session_secret"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

type SiteConfig struct {
	Name     string `mapstructure:"name"      yaml:"name"`
	BaseURL  string `mapstructure:"base_url"  yaml:"base_url"`
	TimeZone string `mapstructure:"time_zone" yaml:"time_zone"`
}

type DatabaseConfig struct {
	Driver       string         `mapstructure:"driver"        yaml:"driver"`
	AutoMigrate  bool           `mapstructure:"auto_migrate"  yaml:"auto_migrate"`
	SearchConfig string         `mapstructure:"search_config" yaml:"search_config"`
	SQLite       SQLiteConfig   `mapstructure:"sqlite"        yaml:"sqlite"`
	Postgres     PostgresConfig `mapstructure:"postgres"      yaml:"postgres"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type PostgresConfig struct {
	Host         string `mapstructure:"host"           yaml:"host"`
	Port         int    `mapstructure:"port"           yaml:"port"`
	User         string `mapstructure:"user"           yaml:"user"`
	Password     string `mapstructure:"password"       yaml:"password"`
	Name         string `mapstructure:"name"           yaml:"name"`
	SSLMode      string `mapstructure:"sslmode"        yaml:"sslmode"`
	TimeZone     string `mapstructure:"time_zone"      yaml:"time_zone"`
	MaxOpenConns int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
}

// DSN 以 key=value 形式拼接 Postgres 连接串，含空白、引号或反斜杠的值会被加引号转义。
func (p PostgresConfig) DSN() string {
	pairs := [][2]string{
		{"host", p.Host},
		{"port", strconv.Itoa(p.Port)},
		{"user", p.User},
		{"password", p.Password},
		{"dbname", p.Name},
		{"sslmode", p.SSLMode},
		{"TimeZone", p.TimeZone},
	}
	parts := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		parts = append(parts, kv[0]+"="+quoteDSNValue(kv[1]))
	}
	return strings.Join(parts, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\n'\\") {
		return v
	}
	return "'" + dsnEscaper.Replace(v) + "'"
}

type MailConfig struct {
	// Backend 取值 console、smtp 或 memory。
	Backend  string `mapstructure:"backend"  yaml:"backend"`
	Host     string `mapstructure:"host"     yaml:"host"`
	Port     int    `mapstructure:"port"     yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	From     string `mapstructure:"from"     yaml:"from"`
	// TLS 取值 opportunistic、mandatory、ssl 或 none。
	TLS     string `mapstructure:"tls"     yaml:"tls"`
	Timeout string `mapstructure:"timeout" yaml:"timeout"`
}

type LogConfig struct {
	Level      string            `mapstructure:"level"       yaml:"level"`
	TimeFormat string            `mapstructure:"time_format" yaml:"time_format"`
	File       string            `mapstructure:"file"        yaml:"file"`
	NoColor    bool              `mapstructure:"no_color"    yaml:"no_color"`
	JSON       bool              `mapstructure:"json"        yaml:"json"`
	NoTerminal bool              `mapstructure:"no_terminal" yaml:"no_terminal"`
	Rotation   LogRotationConfig `mapstructure:"rotation"    yaml:"rotation"`
}

type LogRotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"    yaml:"max_size"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"     yaml:"max_age"`
	Compress   bool `mapstructure:"compress"    yaml:"compress"`
}

type SuperUserConfig struct {
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	Email    string `mapstructure:"email"    yaml:"email"`
}

// Load 读取配置：默认值 < 配置文件 < BLOG_ 前缀的环境变量。
// path 为空时会在当前目录、./config 与 /etc/machaira 下查找 config.yaml，找不到则只使用默认值与环境变量。
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/machaira")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *AppConfig) normalize() {
	c.Server.ListenAddr = strings.TrimSpace(c.Server.ListenAddr)
	c.Server.GinMode = strings.TrimSpace(c.Server.GinMode)
	c.Site.BaseURL = strings.TrimRight(strings.TrimSpace(c.Site.BaseURL), "/")
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	c.Mail.Backend = strings.ToLower(strings.TrimSpace(c.Mail.Backend))
	c.SuperUser.Username = strings.TrimSpace(c.SuperUser.Username)
	c.SuperUser.Password = strings.TrimSpace(c.SuperUser.Password)
}

// UsesDevSessionSecret 判断会话密钥是否仍是公开的默认值。
func (c *AppConfig) UsesDevSessionSecret() bool {
	return strings.TrimSpace(c.Server.SessionSecret) == DevSessionSecret
}

// Location 解析站点时区，无法识别时回退到 UTC。
func (c *AppConfig) Location() *time.Location {
	name := strings.TrimSpace(c.Site.TimeZone)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ShutdownTimeout 返回优雅关闭的等待时长，格式非法时为 10 秒。
func (c *AppConfig) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

// MailTimeout 返回 SMTP 连接超时。
func (c MailConfig) MailTimeout() time.Duration {
	return parseDuration(c.Timeout, 15*time.Second)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

package config

import "github.com/spf13/viper"

// DevSessionSecret 是默认的会话密钥，只适合本地开发，release 模式下拒绝使用。
const DevSessionSecret = "machaira-dev-secret"

// GetDefault 返回开发环境可直接运行的默认配置。
func GetDefault() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			ListenAddr:      ":8080",
			GinMode:         "debug",
			SessionSecret:   DevSessionSecret,
			ShutdownTimeout: "10s",
		},
		Site: SiteConfig{
			Name:     "My blog",
			BaseURL:  "",
			TimeZone: "UTC",
		},
		Database: DatabaseConfig{
			Driver:       "sqlite",
			AutoMigrate:  true,
			SearchConfig: "english",
			SQLite: SQLiteConfig{
				Path: "machaira.db",
			},
			Postgres: PostgresConfig{
				Host:         "localhost",
				Port:         5432,
				User:         "postgres",
				Password:     "postgres",
				Name:         "blog",
				SSLMode:      "disable",
				TimeZone:     "UTC",
				MaxOpenConns: 20,
				MaxIdleConns: 5,
			},
		},
		Mail: MailConfig{
			Backend: "console",
			Host:    "localhost",
			Port:    587,
			From:    "blog@localhost",
			TLS:     "opportunistic",
			Timeout: "15s",
		},
		Log: LogConfig{
			Level:      "INFO",
			TimeFormat: "2006-01-02 15:04:05",
			Rotation: LogRotationConfig{
				MaxSize:    128,
				MaxBackups: 5,
				MaxAge:     16,
			},
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := GetDefault()

	v.SetDefault("server.listen_addr", d.Server.ListenAddr)
	v.SetDefault("server.gin_mode", d.Server.GinMode)
	v.SetDefault("server.session_secret", d.Server.SessionSecret)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("site.name", d.Site.Name)
	v.SetDefault("site.base_url", d.Site.BaseURL)
	v.SetDefault("site.time_zone", d.Site.TimeZone)

	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.auto_migrate", d.Database.AutoMigrate)
	v.SetDefault("database.search_config", d.Database.SearchConfig)
	v.SetDefault("database.sqlite.path", d.Database.SQLite.Path)
	v.SetDefault("database.postgres.host", d.Database.Postgres.Host)
	v.SetDefault("database.postgres.port", d.Database.Postgres.Port)
	v.SetDefault("database.postgres.user", d.Database.Postgres.User)
	v.SetDefault("database.postgres.password", d.Database.Postgres.Password)
	v.SetDefault("database.postgres.name", d.Database.Postgres.Name)
	v.SetDefault("database.postgres.sslmode", d.Database.Postgres.SSLMode)
	v.SetDefault("database.postgres.time_zone", d.Database.Postgres.TimeZone)
	v.SetDefault("database.postgres.max_open_conns", d.Database.Postgres.MaxOpenConns)
	v.SetDefault("database.postgres.max_idle_conns", d.Database.Postgres.MaxIdleConns)

	v.SetDefault("mail.backend", d.Mail.Backend)
	v.SetDefault("mail.host", d.Mail.Host)
	v.SetDefault("mail.port", d.Mail.Port)
	v.SetDefault("mail.username", d.Mail.Username)
	v.SetDefault("mail.password", d.Mail.Password)
	v.SetDefault("mail.from", d.Mail.From)
	v.SetDefault("mail.tls", d.Mail.TLS)
	v.SetDefault("mail.timeout", d.Mail.Timeout)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.time_format", d.Log.TimeFormat)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.no_color", d.Log.NoColor)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.no_terminal", d.Log.NoTerminal)
	v.SetDefault("log.rotation.max_size", d.Log.Rotation.MaxSize)
	v.SetDefault("log.rotation.max_backups", d.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age", d.Log.Rotation.MaxAge)
	v.SetDefault("log.rotation.compress", d.Log.Rotation.Compress)

	v.SetDefault("superuser.username", d.SuperUser.Username)
	v.SetDefault("superuser.password", d.SuperUser.Password)
	v.SetDefault("superuser.email", d.SuperUser.Email)
}

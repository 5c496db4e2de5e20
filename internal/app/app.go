// Package app 组装配置、日志、数据库、邮件与路由，并负责 HTTP 服务的启动与优雅关闭。
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/machaira/blog/internal/config"
	"github.com/machaira/blog/internal/db"
	"github.com/machaira/blog/internal/handler"
	"github.com/machaira/blog/internal/logging"
	"github.com/machaira/blog/internal/mail"
	"github.com/machaira/blog/internal/router"
	"gorm.io/gorm"
)

// Server 持有一次运行所需的全部依赖。
type Server struct {
	cfg    *config.AppConfig
	log    logging.Logger
	db     *gorm.DB
	engine *gin.Engine
	http   *http.Server
}

// OpenDatabase 按配置打开数据库，GORM 日志级别跟随应用日志级别。
func OpenDatabase(cfg *config.AppConfig, log logging.Logger) (*gorm.DB, error) {
	return db.Open(cfg.Database, log.Level().GormLevel())
}

// New 打开数据库、按需执行迁移与超级用户初始化，并构建路由。
func New(ctx context.Context, cfg *config.AppConfig, log logging.Logger) (*Server, error) {
	if cfg.UsesDevSessionSecret() {
		if cfg.Server.GinMode == gin.ReleaseMode {
			return nil, fmt.Errorf("server.session_secret is the built-in development value; set %s_SERVER_SESSION_SECRET before running in release mode", config.EnvPrefix)
		}
		log.Warn("Using the built-in development session secret, admin sessions can be forged")
	}

	if gin.Mode() != gin.TestMode && cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	gdb, err := OpenDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	srv := &Server{cfg: cfg, log: log, db: gdb}
	if err := srv.setup(ctx); err != nil {
		_ = db.Close(gdb)
		return nil, err
	}
	return srv, nil
}

func (s *Server) setup(ctx context.Context) error {
	if s.cfg.Database.AutoMigrate {
		s.log.Debug("Applying database migrations...")
		if err := db.NewMigrator(s.db, s.cfg.Database.SearchConfig).Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	su := s.cfg.SuperUser
	created, err := db.EnsureUser(s.db, su.Username, su.Password, su.Email)
	if err != nil {
		return fmt.Errorf("failed to ensure superuser: %w", err)
	}
	if created {
		s.log.Info("Created superuser %q", su.Username)
	}

	mailer, err := mail.New(s.cfg.Mail, s.log.Named("mail"))
	if err != nil {
		return err
	}

	api := handler.NewAPI(s.db, handler.Options{
		Site:         s.cfg.Site,
		Location:     s.cfg.Location(),
		SearchConfig: s.cfg.Database.SearchConfig,
		Mailer:       mailer,
		MailFrom:     s.cfg.Mail.From,
		Logger:       s.log.Named("handler"),
	})

	s.engine, err = router.SetupRouter(api, router.Options{
		SessionSecret: s.cfg.Server.SessionSecret,
		Logger:        s.log,
	})
	if err != nil {
		return err
	}

	s.http = &http.Server{
		Addr:         s.cfg.Server.ListenAddr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return nil
}

// Handler 返回已配置的路由，便于测试直接调用。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve 监听端口直到 ctx 结束或收到 SIGINT/SIGTERM，然后在超时内关闭服务与数据库。
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			_ = db.Close(s.db)
			return fmt.Errorf("failed to serve http: %w", err)
		}
	case <-ctx.Done():
	}

	s.log.Info("Shutting down...")
	shutdown, cancelShutdown := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
	defer cancelShutdown()

	if err := s.http.Shutdown(shutdown); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return s.Close()
}

// Close 释放数据库连接。
func (s *Server) Close() error {
	return db.Close(s.db)
}

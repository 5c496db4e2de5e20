package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/machaira/blog/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger 是整个应用共用的日志接口。
type Logger interface {
	Debug(msg string, args ...any)

	Info(msg string, args ...any)

	Warn(msg string, args ...any)

	Error(msg string, args ...any)

	Fatal(msg string, args ...any)

	Named(name string) Logger

	Level() Level
}

type serviceLogger struct {
	cfg    config.LogConfig
	name   string
	level  Level
	colors bool
	mu     *sync.Mutex
	writer io.Writer
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	Message   string `json:"message"`
}

// New 按配置创建日志器：终端输出与可选的 lumberjack 滚动文件。
func New(name string, cfg config.LogConfig) Logger {
	impl := &serviceLogger{
		cfg:   cfg,
		name:  name,
		level: ParseLevel(cfg.Level),
		mu:    &sync.Mutex{},
	}
	impl.setupWriter()
	return impl
}

// NewWithWriter 把日志写入给定 writer，测试中用来断言输出。
func NewWithWriter(name string, cfg config.LogConfig, w io.Writer) Logger {
	return &serviceLogger{
		cfg:    cfg,
		name:   name,
		level:  ParseLevel(cfg.Level),
		mu:     &sync.Mutex{},
		writer: w,
	}
}

// Discard 丢弃所有日志。
func Discard() Logger {
	return NewWithWriter("", config.LogConfig{Level: "FATAL"}, io.Discard)
}

func (impl *serviceLogger) setupWriter() {
	var writers []io.Writer

	if !impl.cfg.NoTerminal {
		writers = append(writers, os.Stdout)
		impl.colors = !impl.cfg.NoColor
	}

	if impl.cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   impl.cfg.File,
			MaxSize:    impl.cfg.Rotation.MaxSize,
			MaxBackups: impl.cfg.Rotation.MaxBackups,
			MaxAge:     impl.cfg.Rotation.MaxAge,
			Compress:   impl.cfg.Rotation.Compress,
		})
		// 文件里不写颜色控制符
		if len(writers) > 1 {
			impl.colors = false
		}
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	impl.writer = io.MultiWriter(writers...)
}

func (impl *serviceLogger) log(level Level, msg string, args ...any) {
	if level < impl.level {
		return
	}

	format := impl.cfg.TimeFormat
	if format == "" {
		format = time.RFC3339
	}
	timestamp := time.Now().Format(format)
	formatted := msg
	if len(args) > 0 {
		formatted = fmt.Sprintf(msg, args...)
	}

	impl.mu.Lock()
	if impl.cfg.JSON {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Service:   impl.name,
			Message:   formatted,
		}
		data, _ := json.Marshal(entry)
		fmt.Fprintf(impl.writer, "%s\n", data)
	} else {
		prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
		if impl.name != "" {
			prefix = fmt.Sprintf("%s [%s]", prefix, impl.name)
		}
		if impl.colors {
			fmt.Fprintf(impl.writer, "%s%s %s\033[0m\n", Color(level), prefix, formatted)
		} else {
			fmt.Fprintf(impl.writer, "%s %s\n", prefix, formatted)
		}
	}
	impl.mu.Unlock()

	if level == Fatal {
		os.Exit(1)
	}
}

func (impl *serviceLogger) Debug(msg string, args ...any) { impl.log(Debug, msg, args...) }

func (impl *serviceLogger) Info(msg string, args ...any) { impl.log(Info, msg, args...) }

func (impl *serviceLogger) Warn(msg string, args ...any) { impl.log(Warn, msg, args...) }

func (impl *serviceLogger) Error(msg string, args ...any) { impl.log(Error, msg, args...) }

func (impl *serviceLogger) Fatal(msg string, args ...any) { impl.log(Fatal, msg, args...) }

func (impl *serviceLogger) Level() Level { return impl.level }

// Named 返回共享同一 writer 的子日志器，名称以 / 连接。
func (impl *serviceLogger) Named(name string) Logger {
	full := name
	if impl.name != "" {
		full = impl.name + "/" + name
	}
	return &serviceLogger{
		cfg:    impl.cfg,
		name:   full,
		level:  impl.level,
		colors: impl.colors,
		mu:     impl.mu,
		writer: impl.writer,
	}
}

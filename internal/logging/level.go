package logging

import (
	"strings"

	"gorm.io/gorm/logger"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
	Fatal
)

// ParseLevel 把配置中的级别字符串转换为 Level，无法识别时为 Info。
func ParseLevel(raw string) Level {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEBUG", "TRACE":
		return Debug
	case "WARN", "WARNING":
		return Warn
	case "ERROR":
		return Error
	case "FATAL":
		return Fatal
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Color 返回终端输出使用的 ANSI 颜色前缀。
func Color(l Level) string {
	switch l {
	case Debug:
		return "\033[36m"
	case Info:
		return "\033[32m"
	case Warn:
		return "\033[33m"
	case Error, Fatal:
		return "\033[31m"
	default:
		return "\033[0m"
	}
}

// GormLevel 把应用日志级别映射到 GORM 的日志级别。
// 只有 DEBUG 会打印 SQL。
func (l Level) GormLevel() logger.LogLevel {
	switch l {
	case Debug:
		return logger.Info
	case Info, Warn:
		return logger.Warn
	case Error, Fatal:
		return logger.Error
	default:
		return logger.Silent
	}
}

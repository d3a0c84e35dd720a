package logging

import (
	"os"
	"strings"

	"SmartBetting/internal/config"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

// New 按配置创建 logrus 日志器（级别非法时回退到 info）
func New(cfg config.LoggingConfig) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

// GormLogLevel 将配置中的 SQL 日志级别映射为 GORM 日志级别
func GormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

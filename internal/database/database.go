// Package database 负责按配置选择 GORM 方言、建立连接池并初始化表结构
package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"SmartBetting/internal/config"
	"SmartBetting/internal/logging"
	"SmartBetting/internal/model"

	"github.com/jackc/pgx/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector 按驱动名返回对应的 GORM 方言
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLServer:
		return sqlserver.Open(dsn), nil
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", driver)
	}
}

// Open 连接数据库、配置连接池；postgres 目标库不存在时先创建再连。
// AutoMigrate=true 时同时创建 schema 并迁移全部表
func Open(cfg config.DatabaseConfig, log *logrus.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(log, logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  logging.GormLogLevel(cfg.LogLevel),
		IgnoreRecordNotFoundError: true,
	})

	dialector, err := Dialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil && cfg.Driver == config.DriverPostgres && isMissingDatabase(err) {
		log.Info("目标数据库不存在，尝试自动创建…")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		e := ensureDatabaseExists(ctx, cfg.DSN)
		cancel()
		if e != nil {
			return nil, fmt.Errorf("创建数据库失败: %w", e)
		}
		dialector, _ = Dialector(cfg.Driver, cfg.DSN)
		db, err = gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	}
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败(%s): %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if cfg.AutoMigrate {
		if err := Migrate(db, cfg.Driver); err != nil {
			return nil, err
		}
		log.Info("数据库表结构检查完成（不存在则已创建）")
	}
	return db, nil
}

// Migrate 创建 betting schema 并按依赖顺序迁移全部实体
func Migrate(db *gorm.DB, driver string) error {
	if stmt := createSchemaSQL(driver); stmt != "" {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("创建 schema %s 失败: %w", model.Schema, err)
		}
	}
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		return fmt.Errorf("数据库表结构迁移失败: %w", err)
	}
	return nil
}

// Ping 健康检查用
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// createSchemaSQL 各方言下幂等创建 schema 的语句（MySQL 中 schema 即 database）
func createSchemaSQL(driver string) string {
	switch driver {
	case config.DriverPostgres:
		return "CREATE SCHEMA IF NOT EXISTS " + model.Schema
	case config.DriverSQLServer:
		return fmt.Sprintf("IF NOT EXISTS (SELECT 1 FROM sys.schemas WHERE name = '%s') EXEC('CREATE SCHEMA %s')",
			model.Schema, model.Schema)
	case config.DriverMySQL:
		return "CREATE DATABASE IF NOT EXISTS " + model.Schema
	default:
		return ""
	}
}

func isMissingDatabase(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "does not exist") || strings.Contains(msg, "3D000")
}

// adminDSN 把 URL 形式的 DSN 改写为连接 postgres 默认库，返回改写后的 DSN 与目标库名。
// 目标库为空或就是 postgres 时 dbname 返回空串
func adminDSN(dsn string) (admin string, dbname string, err error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", "", err
	}
	dbname = strings.TrimSpace(strings.TrimPrefix(u.Path, "/"))
	if dbname == "" || dbname == "postgres" {
		return "", "", nil
	}
	u.Path = "/postgres"
	return u.String(), dbname, nil
}

// ensureDatabaseExists 用 pgx 直连 postgres 维护库，目标库缺失时创建。dsn 须为 URL 形式
func ensureDatabaseExists(ctx context.Context, dsn string) error {
	admin, dbname, err := adminDSN(dsn)
	if err != nil || dbname == "" {
		return err
	}
	conn, err := pgx.Connect(ctx, admin)
	if err != nil {
		return fmt.Errorf("连接维护库失败: %w", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	var exists bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbname).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = conn.Exec(ctx, createDatabaseSQL(dbname))
	return err
}

func createDatabaseSQL(dbname string) string {
	return "CREATE DATABASE " + pgx.Identifier{dbname}.Sanitize()
}

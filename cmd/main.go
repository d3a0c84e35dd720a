package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"SmartBetting/internal/api"
	"SmartBetting/internal/cache"
	"SmartBetting/internal/config"
	"SmartBetting/internal/database"
	"SmartBetting/internal/logging"
	"SmartBetting/internal/metrics"
	"SmartBetting/internal/repository"
	"SmartBetting/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

func main() {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置校验失败: %v", err)
	}

	// 2. 初始化日志
	logger := logging.New(cfg.Logging)
	logger.Info("配置文件加载成功")

	// 3. 连接数据库（postgres 库不存在则先创建），按需迁移表结构
	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatalf("初始化数据库失败: %v", err)
	}
	logger.Infof("数据库连接成功(%s)", cfg.Database.Driver)

	// 4. 缓存（未启用时为空实现）
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	resultCache, err := cache.New(ctx, cfg.Redis)
	cancel()
	if err != nil {
		logger.Fatalf("初始化缓存失败: %v", err)
	}
	defer resultCache.Close()

	// 5. 指标
	m := metrics.New(prometheus.DefaultRegisterer)

	// 6. 仓储与服务
	valueBetRepo, err := repository.NewValueBetRepository(db, cfg.ValueBets.Procedure)
	if err != nil {
		logger.Fatalf("初始化价值投注仓储失败: %v", err)
	}
	referenceSvc := service.NewReferenceService(repository.NewReferenceRepository(db), logger)
	if cfg.Database.AutoMigrate {
		if err := referenceSvc.EnsureDefaults(context.Background()); err != nil {
			logger.WithError(err).Warn("写入内置盘口类型失败")
		}
	}

	deps := api.Deps{
		ValueBets: service.NewValueBetService(valueBetRepo, resultCache, m, cfg.ValueBets, logger),
		Games:     service.NewGameService(repository.NewGameRepository(db), logger),
		Reference: referenceSvc,
		Tickets:   service.NewTicketService(repository.NewTicketRepository(db), logger),
		Logger:    logger,
		Metrics:   m,
		Gatherer:  prometheus.DefaultGatherer,
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
	}

	// 7. 配置Gin运行模式（从配置读取：debug/release）并注册路由
	gin.SetMode(cfg.Server.Mode)
	r := api.NewRouter(cfg.Server, deps)
	logger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	// 8. 启动服务（从配置读取端口）
	port := cfg.Server.Port
	logger.Infof("服务启动成功，端口：%d", port)
	if err := r.Run(fmt.Sprintf(":%d", port)); err != nil {
		closeDB(db)
		logger.Fatalf("启动服务失败: %v", err)
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

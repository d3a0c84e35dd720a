package api

import (
	"context"
	"net/http"
	"time"

	"SmartBetting/internal/config"
	"SmartBetting/internal/metrics"
	"SmartBetting/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Deps 路由依赖
type Deps struct {
	ValueBets *service.ValueBetService
	Games     *service.GameService
	Reference *service.ReferenceService
	Tickets   *service.TicketService

	Logger   *logrus.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer // 为 nil 时不注册 /metrics
	Ping     func(ctx context.Context) error
}

// NewRouter 注册全部路由与中间件
func NewRouter(cfg config.ServerConfig, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(d.Logger))
	r.Use(d.Metrics.Middleware())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	if cfg.RequestTimeout > 0 {
		r.Use(requestTimeout(cfg.RequestTimeout))
	}

	// 注册 pprof 方便调试和监测性能问题
	if cfg.Pprof {
		pprof.Register(r)
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "SmartSportsBetting API is running")
	})
	r.GET("/health", NewHealthHandler(d.Ping, d.Logger).Health)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	apiGroup := r.Group("/api")

	valueBets := NewValueBetHandler(d.ValueBets, d.Logger)
	apiGroup.GET("/valuebets/today", valueBets.Today)
	apiGroup.GET("/valuebets", valueBets.ByDate)
	apiGroup.GET("/recommendations/today", valueBets.RecommendationsToday)

	games := NewGameHandler(d.Games, d.Logger)
	apiGroup.GET("/games", games.ListGames)
	apiGroup.GET("/games/:game_id", games.GetGame)

	ref := NewReferenceHandler(d.Reference, d.Logger)
	apiGroup.GET("/sports", ref.ListSports)
	apiGroup.GET("/leagues", ref.ListLeagues)
	apiGroup.GET("/teams", ref.ListTeams)
	apiGroup.GET("/providers", ref.ListProviders)
	apiGroup.GET("/market-types", ref.ListMarketTypes)

	tickets := NewTicketHandler(d.Tickets, d.Logger)
	apiGroup.GET("/tickets", tickets.ListTickets)
	apiGroup.GET("/tickets/:ticket_ref", tickets.GetTicket)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// requestLogger 每个请求一行访问日志
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request")
		} else {
			entry.Debug("request")
		}
	}
}

// requestTimeout 为请求上下文设置超时，数据库查询随之取消
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

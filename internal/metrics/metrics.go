// Package metrics Prometheus 指标与 gin 中间件
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 服务指标集合；nil 接收者上的方法均为空操作
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	cacheResults    *prometheus.CounterVec
	valueBetsServed *prometheus.HistogramVec
}

// New 在 reg 上注册全部指标
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartbetting_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "smartbetting_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		cacheResults: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartbetting_cache_requests_total",
				Help: "Cache lookups by result (hit/miss/error)",
			},
			[]string{"result"},
		),
		valueBetsServed: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "smartbetting_value_bets_returned",
				Help:    "Number of value bets returned per query",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
			},
			[]string{"source"},
		),
	}
}

// CacheHit / CacheMiss / CacheError 记录缓存查询结果
func (m *Metrics) CacheHit()   { m.cache("hit") }
func (m *Metrics) CacheMiss()  { m.cache("miss") }
func (m *Metrics) CacheError() { m.cache("error") }

func (m *Metrics) cache(result string) {
	if m == nil {
		return
	}
	m.cacheResults.WithLabelValues(result).Inc()
}

// ObserveValueBets source 为 projection / procedure / cache
func (m *Metrics) ObserveValueBets(source string, n int) {
	if m == nil {
		return
	}
	m.valueBetsServed.WithLabelValues(source).Observe(float64(n))
}

// Middleware 按路由模板统计请求数与耗时（未匹配路由记为 unmatched）
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

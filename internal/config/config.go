package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 支持的数据库驱动
const (
	DriverPostgres  = "postgres"
	DriverSQLServer = "sqlserver"
	DriverMySQL     = "mysql"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`     // 服务器配置
	Database  DatabaseConfig  `mapstructure:"database"`   // 数据库配置
	Redis     RedisConfig     `mapstructure:"redis"`      // 缓存配置
	ValueBets ValueBetsConfig `mapstructure:"value_bets"` // 价值投注查询配置
	Logging   LoggingConfig   `mapstructure:"logging"`    // 日志配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`            // 服务端口
	Mode           string        `mapstructure:"mode"`            // Gin运行模式：debug/release/test
	Pprof          bool          `mapstructure:"pprof"`           // 是否注册 /debug/pprof
	CORSOrigins    []string      `mapstructure:"cors_origins"`    // 允许的跨域来源
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // 单请求查询超时
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`            // postgres / sqlserver / mysql
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
	AutoMigrate     bool          `mapstructure:"auto_migrate"`      // 启动时是否自动建表
	LogLevel        string        `mapstructure:"log_level"`         // GORM SQL日志级别：silent/error/warn/info
}

// RedisConfig 缓存配置，Enabled=false 时不连接 Redis
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"` // 查询结果缓存时间
}

// ValueBetsConfig 价值投注查询参数
type ValueBetsConfig struct {
	DefaultLimit int     `mapstructure:"default_limit"` // 未传 limit 时的条数
	MaxLimit     int     `mapstructure:"max_limit"`     // limit 上限
	MinEdge      float64 `mapstructure:"min_edge"`      // 默认最小 edge（0 表示只要求为正）
	// Procedure 存储过程/函数名（含 schema），为空时使用内置投影查询
	Procedure string `mapstructure:"procedure"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text / json
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	return Load("./config/config.yaml")
}

// Load 从指定路径加载配置
func Load(path string) (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 yaml
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.pprof", false)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.request_timeout", "10s")

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.ttl", "60s")

	v.SetDefault("value_bets.default_limit", 50)
	v.SetDefault("value_bets.max_limit", 500)
	v.SetDefault("value_bets.min_edge", 0.0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("BETTING_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("BETTING_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("BETTING_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("BETTING_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}

// Validate 校验配置合法性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port 不合法: %d", c.Server.Port)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLServer, DriverMySQL:
	default:
		return fmt.Errorf("不支持的数据库驱动: %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn 不能为空")
	}
	if c.ValueBets.DefaultLimit <= 0 {
		return fmt.Errorf("value_bets.default_limit 必须为正数")
	}
	if c.ValueBets.MaxLimit < c.ValueBets.DefaultLimit {
		return fmt.Errorf("value_bets.max_limit 不能小于 default_limit")
	}
	if c.ValueBets.MinEdge < 0 || c.ValueBets.MinEdge >= 1 {
		return fmt.Errorf("value_bets.min_edge 必须在 [0,1) 区间")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.enabled 为 true 时 redis.addr 不能为空")
	}
	return nil
}

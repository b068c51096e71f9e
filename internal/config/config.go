package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/constants"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type Config struct {
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	ServerPort  string `mapstructure:"SERVER_PORT"`
	StoreDriver string `mapstructure:"STORE_DRIVER"`

	DbName     string `mapstructure:"POSTGRES_DB"`
	DbHost     string `mapstructure:"POSTGRES_HOST"`
	DbPort     string `mapstructure:"POSTGRES_PORT"`
	DbUser     string `mapstructure:"POSTGRES_USER"`
	DbPas      string `mapstructure:"POSTGRES_PASSWORD"`
	SqlitePath string `mapstructure:"SQLITE_PATH"`

	// RedisAddr 空字串表示不啟用商品快取
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	ProductCacheTTL time.Duration `mapstructure:"PRODUCT_CACHE_TTL"`

	// KafkaBrokers 以逗號分隔，空字串表示不發布訂單事件
	KafkaBrokers    string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic string `mapstructure:"KAFKA_ORDER_TOPIC"`

	// RateLimitCapacity 為 0 時不限流
	RateLimitCapacity int           `mapstructure:"RATE_LIMIT_CAPACITY"`
	RateLimitRPS      float64       `mapstructure:"RATE_LIMIT_RPS"`
	ShutdownTimeout   time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]any{
	"ENV":                 "production",
	"LOG_LEVEL":           "info",
	"SERVER_PORT":         "8080",
	"STORE_DRIVER":        string(constants.StoreDriverMemory),
	"POSTGRES_DB":         "ordercenter",
	"POSTGRES_HOST":       "localhost",
	"POSTGRES_PORT":       "5432",
	"POSTGRES_USER":       "postgres",
	"POSTGRES_PASSWORD":   "",
	"SQLITE_PATH":         "ordercenter.db",
	"REDIS_ADDR":          "",
	"REDIS_PASSWORD":      "",
	"REDIS_DB":            0,
	"PRODUCT_CACHE_TTL":   constants.DefaultProductCacheTTL,
	"KAFKA_BROKERS":       "",
	"KAFKA_ORDER_TOPIC":   "ordercenter.orders",
	"RATE_LIMIT_CAPACITY": 0,
	"RATE_LIMIT_RPS":      0,
	"SHUTDOWN_TIMEOUT":    constants.DefaultShutdownTimeout,
}

func (c *Config) KafkaBrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c *Config) IsDebug() bool {
	return c.Env == "debug"
}

func (c *Config) Validate() error {
	if !constants.IsValidStoreDriver(c.StoreDriver) {
		return fmt.Errorf("invalid STORE_DRIVER %q, expect postgres, sqlite or memory", c.StoreDriver)
	}
	if c.ServerPort == "" {
		return errors.New("SERVER_PORT is required")
	}
	if c.RateLimitCapacity > 0 && c.RateLimitRPS <= 0 {
		return errors.New("RATE_LIMIT_RPS must be positive when RATE_LIMIT_CAPACITY is set")
	}
	return nil
}

/*
Loader 負責讀取與監聽設定檔
設定來源優先順序: 環境變數 > 設定檔 > 預設值
*/
type Loader struct {
	v    *viper.Viper
	path string
	mu   sync.RWMutex
	cf   *Config
}

// NewLoader path 為空字串或檔案不存在時只使用環境變數與預設值
func NewLoader(path string) (*Loader, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	l := &Loader{v: v}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var pathErr *fs.PathError
			if !errors.As(err, &pathErr) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else {
			l.path = path
		}
	}

	cf, err := l.load()
	if err != nil {
		return nil, err
	}
	l.cf = cf
	return l, nil
}

// LoadConfig 讀取一次設定
func LoadConfig(path string) (*Config, error) {
	l, err := NewLoader(path)
	if err != nil {
		return nil, err
	}
	return l.Get(), nil
}

func (l *Loader) load() (*Config, error) {
	cf := &Config{}
	if err := l.v.Unmarshal(cf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return cf, nil
}

func (l *Loader) Get() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cf
}

/*
Watch 設定檔變更時重新讀取，成功才替換並呼叫 onChange
沒有設定檔時不做任何事
*/
func (l *Loader) Watch(onChange func(*Config), onError func(error)) {
	if l.path == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		cf, err := l.load()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		l.mu.Lock()
		l.cf = cf
		l.mu.Unlock()
		if onChange != nil {
			onChange(cf)
		}
	})
	l.v.WatchConfig()
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config carries everything read from the environment.
type Config struct {
	Port         string
	GinMode      string
	DBDriver     string // mysql or sqlite
	DBDSN        string
	PoolSize     int
	QueryTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port:         getenv("PORT", "8080"),
		GinMode:      getenv("GIN_MODE", "debug"),
		DBDriver:     getenv("DB_DRIVER", "mysql"),
		DBDSN:        getenv("DB_DSN", ""),
		PoolSize:     getenvInt("DB_POOL_SIZE", 5),
		QueryTimeout: getenvDuration("DB_QUERY_TIMEOUT", 5*time.Second),
	}
	if cfg.DBDSN == "" {
		cfg.DBDSN = defaultDSN(cfg.DBDriver)
	}
	return cfg
}

func defaultDSN(driver string) string {
	if driver == "sqlite" {
		return "little_lemon.db"
	}
	user := getenv("DB_USER", "root")
	pass := getenv("DB_PASSWORD", "")
	host := getenv("DB_HOST", "127.0.0.1")
	port := getenv("DB_PORT", "3306")
	name := getenv("DB_NAME", "little_lemon_db")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name)
}

// InitDB opens the store with a bounded connection pool. Callers receive
// Busy/Unavailable errors on exhaustion instead of hanging: the pool is
// capped and every service call carries a deadline.
func InitDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBDSN)
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.PoolSize)
	sqlDB.SetMaxIdleConns(cfg.PoolSize)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if !TestConnectivity(db) {
		return nil, fmt.Errorf("database not reachable")
	}
	return db, nil
}

// TestConnectivity runs a trivial query against the store.
func TestConnectivity(db *gorm.DB) bool {
	var one int
	return db.Raw("SELECT 1").Scan(&one).Error == nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config is the full service configuration, read once at startup.
type Config struct {
	AppEnv   string
	HTTPAddr string
	LogFile  string

	TickInterval  time.Duration
	DistanceScale float64
	FleetSize     int
	Seed          int64

	AnalysisDelay   time.Duration
	AnalysisTimeout time.Duration
	AnalyzeRate     float64
	AnalyzeBurst    int

	CatalogDSN   string
	AirportsFile string

	CacheBackend      string
	RedisAddr         string
	RedisPassword     string
	RedisStream       string
	RedisStreamMaxLen int64

	CORSOrigins []string
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		AppEnv:            "development",
		HTTPAddr:          ":8080",
		TickInterval:      time.Second,
		DistanceScale:     0.2,
		FleetSize:         500,
		AnalysisDelay:     1500 * time.Millisecond,
		AnalyzeRate:       1,
		AnalyzeBurst:      5,
		CatalogDSN:        "file::memory:?cache=shared",
		CacheBackend:      "memory",
		RedisStream:       "ecofly:render",
		RedisStreamMaxLen: 10000,
		CORSOrigins:       []string{"*"},
	}
}

// Load reads the process environment.
func Load(log *zap.SugaredLogger) Config {
	return LoadFrom(os.Getenv, log)
}

// LoadFrom reads variables through getenv. Invalid values are logged and the
// default is kept.
func LoadFrom(getenv func(string) string, log *zap.SugaredLogger) Config {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	l := loader{getenv: getenv, log: log}
	cfg := Default()

	l.str("APP_ENV", &cfg.AppEnv)
	l.str("ECOFLY_HTTP_ADDR", &cfg.HTTPAddr)
	l.str("ECOFLY_LOG_FILE", &cfg.LogFile)

	l.millis("ECOFLY_TICK_INTERVAL_MS", &cfg.TickInterval, 1)
	l.positiveFloat("ECOFLY_DISTANCE_SCALE", &cfg.DistanceScale)
	l.integer("ECOFLY_FLEET_SIZE", &cfg.FleetSize, 0)
	if v := getenv("ECOFLY_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Warnw("invalid ECOFLY_SEED value, using time-based seed", "value", v)
		} else {
			cfg.Seed = n
		}
	}

	l.millis("ECOFLY_ANALYSIS_DELAY_MS", &cfg.AnalysisDelay, 0)
	l.millis("ECOFLY_ANALYSIS_TIMEOUT_MS", &cfg.AnalysisTimeout, 0)
	l.positiveFloat("ECOFLY_ANALYZE_RATE", &cfg.AnalyzeRate)
	l.integer("ECOFLY_ANALYZE_BURST", &cfg.AnalyzeBurst, 1)

	l.str("ECOFLY_CATALOG_DSN", &cfg.CatalogDSN)
	l.str("ECOFLY_AIRPORTS_FILE", &cfg.AirportsFile)

	if v := strings.ToLower(getenv("ECOFLY_CACHE_BACKEND")); v != "" {
		if v != "memory" && v != "redis" {
			log.Warnw("invalid ECOFLY_CACHE_BACKEND value, using default", "value", v, "default", cfg.CacheBackend)
		} else {
			cfg.CacheBackend = v
		}
	}
	l.str("ECOFLY_REDIS_ADDR", &cfg.RedisAddr)
	l.str("ECOFLY_REDIS_PASSWORD", &cfg.RedisPassword)
	l.str("ECOFLY_REDIS_STREAM", &cfg.RedisStream)
	if v := getenv("ECOFLY_REDIS_STREAM_MAXLEN"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 {
			log.Warnw("invalid ECOFLY_REDIS_STREAM_MAXLEN value, using default", "value", v, "default", cfg.RedisStreamMaxLen)
		} else {
			cfg.RedisStreamMaxLen = n
		}
	}

	if v := getenv("ECOFLY_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.CORSOrigins = origins
		}
	}

	if cfg.CacheBackend == "redis" && cfg.RedisAddr == "" {
		log.Warnw("redis cache backend requested without ECOFLY_REDIS_ADDR, using memory")
		cfg.CacheBackend = "memory"
	}

	log.Infow("config loaded",
		"env", cfg.AppEnv,
		"http_addr", cfg.HTTPAddr,
		"tick_interval_ms", cfg.TickInterval.Milliseconds(),
		"fleet_size", cfg.FleetSize,
		"cache_backend", cfg.CacheBackend,
		"redis_enabled", cfg.RedisAddr != "",
	)
	return cfg
}

type loader struct {
	getenv func(string) string
	log    *zap.SugaredLogger
}

func (l loader) str(key string, dst *string) {
	if v := strings.TrimSpace(l.getenv(key)); v != "" {
		*dst = v
	}
}

func (l loader) integer(key string, dst *int, min int) {
	v := l.getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		l.log.Warnw("invalid "+key+" value, using default", "value", v, "default", *dst)
		return
	}
	*dst = n
}

func (l loader) millis(key string, dst *time.Duration, min int) {
	v := l.getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		l.log.Warnw("invalid "+key+" value, using default", "value", v, "default", dst.Milliseconds())
		return
	}
	*dst = time.Duration(n) * time.Millisecond
}

func (l loader) positiveFloat(key string, dst *float64) {
	v := l.getenv(key)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		l.log.Warnw("invalid "+key+" value, using default", "value", v, "default", *dst)
		return
	}
	*dst = f
}

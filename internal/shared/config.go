package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	BackendDynamo = "dynamodb"
	BackendMySQL  = "mysql"
	BackendPebble = "pebble"
	BackendMemory = "memory"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	// catalog store
	Backend        string
	HotelsTable    string
	AWSRegion      string
	DynamoEndpoint string
	MySQLDSN       string
	PebbleDir      string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	// provider
	XoteloBase  string
	LocationKey string
	Limit       int
	Sort        string
	Sleep       time.Duration
	MaxHotels   int

	OutputFile string
	ExportName string
	DedupeFile string
	ImportFile string

	ProbeStart int
	ProbeEnd   int
	ProbeDelay time.Duration

	RunlogDir string
}

func Load() Config {
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", ""),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),

		Backend:        strings.ToLower(env("CATALOG_BACKEND", BackendDynamo)),
		HotelsTable:    env("HOTELS_TABLE", env("DYNAMODB_TABLE_HOTELS", "hotels")),
		AWSRegion:      env("AWS_REGION", "us-east-1"),
		DynamoEndpoint: env("DYNAMODB_ENDPOINT", ""),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/visitjo?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		PebbleDir:      env("PEBBLE_DIR", "data/catalog"),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		XoteloBase:  env("XOTELO_BASE_URL", "https://data.xotelo.com/api"),
		LocationKey: env("LOCATION_KEY", "g293985"),
		Limit:       atoi("LIMIT", 100),
		Sort:        env("SORT", "best_value"),
		Sleep:       time.Duration(atoi("SLEEP_MS", 180)) * time.Millisecond,
		MaxHotels:   atoi("MAX_HOTELS", 0),

		OutputFile: env("OUTPUT_FILE", "src/services/xoteloJordanHotelsData.js"),
		ExportName: env("EXPORT_NAME", "XOTELO_JORDAN_HOTELS"),
		DedupeFile: env("DEDUPE_FILE", "src/services/xoteloJordanHotelsData.js"),
		ImportFile: env("IMPORT_FILE", "hotels-data.json"),

		ProbeStart: atoi("PROBE_START", 293960),
		ProbeEnd:   atoi("PROBE_END", 294020),
		ProbeDelay: time.Duration(atoi("PROBE_DELAY_MS", 120)) * time.Millisecond,

		RunlogDir: env("RUNLOG_DIR", ""),
	}

	switch c.Backend {
	case BackendDynamo, BackendMySQL, BackendPebble, BackendMemory:
	default:
		log.Warn().Str("backend", c.Backend).Msg("unknown CATALOG_BACKEND, using memory")
		c.Backend = BackendMemory
	}
	if c.Limit <= 0 {
		log.Warn().Int("limit", c.Limit).Msg("LIMIT must be positive, using 100")
		c.Limit = 100
	}
	if c.Sleep < 0 {
		c.Sleep = 0
	}
	if c.ProbeEnd < c.ProbeStart {
		log.Warn().Int("start", c.ProbeStart).Int("end", c.ProbeEnd).Msg("PROBE_END is before PROBE_START")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

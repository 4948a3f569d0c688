package bootstrap

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort        string        `mapstructure:"SERVER_PORT"`
	RedisUrl          string        `mapstructure:"REDIS_URL"`
	MongoUri          string        `mapstructure:"MONGO_URI"`
	MongoDatabase     string        `mapstructure:"MONGO_DATABASE"`
	AnalysisGrpcAddr  string        `mapstructure:"ANALYSIS_GRPC_ADDR"`
	KatagoUrl         string        `mapstructure:"KATAGO_URL"`
	IsLocalCors       bool          `mapstructure:"LOCAL_CORS"`
	StrictRules       bool          `mapstructure:"STRICT_RULES"`
	RecordCacheTTL    time.Duration `mapstructure:"RECORD_CACHE_TTL"`
	AnalysisPort      string        `mapstructure:"ANALYSIS_PORT"`
	AnalysisMaxVisits int           `mapstructure:"ANALYSIS_MAX_VISITS"`
	PageLimitMatches  int           `mapstructure:"PAGE_LIMIT_MATCHES"`
	MaxViewers        int           `mapstructure:"MAX_VIEWERS"`
}

var defaults = map[string]any{
	"SERVER_PORT":         ":8080",
	"REDIS_URL":           "",
	"MONGO_URI":           "",
	"MONGO_DATABASE":      "tenuki",
	"ANALYSIS_GRPC_ADDR":  "",
	"KATAGO_URL":          "",
	"LOCAL_CORS":          false,
	"STRICT_RULES":        false,
	"RECORD_CACHE_TTL":    "10m",
	"ANALYSIS_PORT":       ":8082",
	"ANALYSIS_MAX_VISITS": 200,
	"PAGE_LIMIT_MATCHES":  20,
	"MAX_VIEWERS":         1000,
}

// Setup reads cfgPath, a .env style file. Missing keys fall back to the
// environment and then to defaults; a missing file is not an error.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	v.SetConfigFile(cfgPath)
	v.SetConfigType("env")
	err := v.ReadInConfig()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Env struct {
	AppEnv         string `mapstructure:"APP_ENV"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	ContextTimeout int    `mapstructure:"CONTEXT_TIMEOUT"`
	StoreDriver    string `mapstructure:"STORE_DRIVER"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPass         string `mapstructure:"DB_PASS"`
	DBName         string `mapstructure:"DB_NAME"`
	MongoURI       string `mapstructure:"MONGO_URI"`
	PostgresDSN    string `mapstructure:"POSTGRES_DSN"`
	MaxUploadMB    int    `mapstructure:"MAX_UPLOAD_MB"`
	CORSOrigins    string `mapstructure:"CORS_ORIGINS"`
}

var envDefaults = map[string]interface{}{
	"APP_ENV":         "development",
	"SERVER_ADDRESS":  ":8080",
	"CONTEXT_TIMEOUT": 10,
	"STORE_DRIVER":    StoreMongo,
	"DB_HOST":         "localhost",
	"DB_PORT":         "27017",
	"DB_USER":         "",
	"DB_PASS":         "",
	"DB_NAME":         "catalog",
	"MONGO_URI":       "",
	"POSTGRES_DSN":    "",
	"MAX_UPLOAD_MB":   50,
	"CORS_ORIGINS":    "",
}

// NewEnv 读取 .env 文件与环境变量，文件不存在时只使用环境变量与默认值
func NewEnv() (*Env, error) {
	return LoadEnv(".env")
}

func LoadEnv(path string) (*Env, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	for key, value := range envDefaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	env := Env{}
	if err := v.Unmarshal(&env); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := env.validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

func (e *Env) validate() error {
	e.StoreDriver = strings.ToLower(strings.TrimSpace(e.StoreDriver))
	switch e.StoreDriver {
	case StoreMongo, StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", e.StoreDriver)
	}
	if e.ContextTimeout <= 0 {
		return fmt.Errorf("CONTEXT_TIMEOUT must be positive, got %d", e.ContextTimeout)
	}
	if e.MaxUploadMB < 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must not be negative, got %d", e.MaxUploadMB)
	}
	return nil
}

func (e *Env) IsProduction() bool {
	return e.AppEnv == "production"
}

// MaxUploadBytes 为 0 表示不限制
func (e *Env) MaxUploadBytes() int64 {
	return int64(e.MaxUploadMB) << 20
}

// MongoConnectionURI MONGO_URI 优先，否则由 DB_* 拼接
func (e *Env) MongoConnectionURI() string {
	if e.MongoURI != "" {
		return e.MongoURI
	}
	if e.DBUser == "" || e.DBPass == "" {
		return fmt.Sprintf("mongodb://%s:%s", e.DBHost, e.DBPort)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%s", e.DBUser, e.DBPass, e.DBHost, e.DBPort)
}

func (e *Env) PostgresConnectionDSN() string {
	if e.PostgresDSN != "" {
		return e.PostgresDSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		e.DBHost, e.DBPort, e.DBUser, e.DBPass, e.DBName)
}

func (e *Env) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(e.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

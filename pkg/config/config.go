package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMemory    = "memory"
	StoreMongo     = "mongo"
	StoreFirestore = "firestore"

	// DefaultJWTSecret is only acceptable outside production.
	DefaultJWTSecret = "your-secret-key"
)

type Config struct {
	ServerPort  string
	Environment string
	Log         LogConfig
	Store       StoreConfig
	Mongo       MongoConfig
	Firebase    FirebaseConfig
	JWT         JWTConfig
	Redis       RedisConfig
	BcryptCost  int
}

type LogConfig struct {
	Level  string
	Format string
}

type StoreConfig struct {
	Type string
}

type MongoConfig struct {
	URI      string
	Database string
}

type FirebaseConfig struct {
	ProjectID          string
	ServiceAccountPath string
	ServiceAccountJSON string
	AuthEnabled        bool
	StorageBucket      string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// RedisConfig is optional; an empty Addr keeps the token blacklist in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		ServerPort:  v.GetString("SERVER_PORT"),
		Environment: v.GetString("ENVIRONMENT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Store: StoreConfig{
			Type: strings.ToLower(v.GetString("STORE_TYPE")),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DB"),
		},
		Firebase: FirebaseConfig{
			ProjectID:          v.GetString("FIREBASE_PROJECT_ID"),
			ServiceAccountPath: v.GetString("FIREBASE_SERVICE_ACCOUNT_PATH"),
			ServiceAccountJSON: v.GetString("FIREBASE_SERVICE_ACCOUNT_JSON"),
			AuthEnabled:        v.GetBool("FIREBASE_AUTH_ENABLED"),
			StorageBucket:      v.GetString("STORAGE_BUCKET"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Expiry: time.Duration(v.GetInt64("JWT_EXPIRY")) * time.Second,
			Issuer: v.GetString("JWT_ISSUER"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		BcryptCost: v.GetInt("BCRYPT_COST"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("LOG_FORMAT", "")
	v.SetDefault("STORE_TYPE", StoreMemory)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "swapskillz")
	v.SetDefault("FIREBASE_AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_EXPIRY", 24*60*60) // 24 hours
	v.SetDefault("JWT_ISSUER", "swapskillz")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("BCRYPT_COST", 12)
}

func (c *Config) Validate() error {
	switch c.Store.Type {
	case StoreMemory, StoreMongo:
	case StoreFirestore:
		if c.Firebase.ProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required when STORE_TYPE=firestore")
		}
	default:
		return fmt.Errorf("unsupported STORE_TYPE %q", c.Store.Type)
	}

	if c.Firebase.AuthEnabled && c.Firebase.ProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required when FIREBASE_AUTH_ENABLED=true")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.IsProduction() && c.JWT.Secret == DefaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be changed from the default in production")
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesFirebase reports whether any component needs a Firebase app.
func (c *Config) UsesFirebase() bool {
	return c.Store.Type == StoreFirestore || c.Firebase.AuthEnabled
}

package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Backend names accepted by the *_BACKEND settings.
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendLocal  = "local"
	BackendS3     = "s3"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// StoreBackend selects where identities, logs and revocations live:
	// "mongo" (with Redis) or "memory" for a single dependency-free process.
	StoreBackend string `env:"STORE_BACKEND, default=mongo"`

	Auth      AuthConfig
	Broadcast BroadcastConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Avatar    AvatarConfig
	S3        S3Config
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET, required"`
	TokenTTL      time.Duration `env:"TOKEN_TTL, default=24h"`
	BcryptCost    int           `env:"BCRYPT_COST, default=10"`
	AdminUsername string        `env:"ADMIN_USERNAME, default=JunaidRafi"`
}

type BroadcastConfig struct {
	Backend string `env:"BROADCAST_BACKEND, default=memory"`
	Default string `env:"DEFAULT_BROADCAST"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cholo_space"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type AvatarConfig struct {
	Backend        string `env:"AVATAR_BACKEND,   default=local"`
	UploadDir      string `env:"UPLOAD_DIR,       default=uploads"`
	MaxBytes       int64  `env:"AVATAR_MAX_BYTES, default=2097152"`
	JanitorWorkers int    `env:"JANITOR_WORKERS,  default=4"`
}

// multipartOverhead is the room left for form boundaries and the other
// fields of an avatar upload.
const multipartOverhead = 64 << 10

// minBodyLimit keeps JSON endpoints usable when AVATAR_MAX_BYTES is small.
const minBodyLimit = 4 << 20

// RequestBodyLimit returns the HTTP body cap, in bytes, that still lets an
// avatar of MaxBytes through inside its multipart envelope.
func (a AvatarConfig) RequestBodyLimit() string {
	return strconv.FormatInt(max(a.MaxBytes+multipartOverhead, minBodyLimit), 10)
}

type S3Config struct {
	Endpoint      string `env:"S3_ENDPOINT"`
	Region        string `env:"S3_REGION, default=us-east-1"`
	Bucket        string `env:"S3_BUCKET"`
	AccessKey     string `env:"S3_ACCESS_KEY"`
	SecretKey     string `env:"S3_SECRET_KEY"`
	Prefix        string `env:"S3_PREFIX, default=avatars/"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

// IsDevelopment reports whether pretty console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreBackend {
	case BackendMongo, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendMongo, BackendMemory, c.StoreBackend))
	}

	switch c.Broadcast.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.StoreBackend == BackendMemory {
			errs = append(errs, errors.New("BROADCAST_BACKEND=redis requires STORE_BACKEND=mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("BROADCAST_BACKEND must be %q or %q, got %q", BackendMemory, BackendRedis, c.Broadcast.Backend))
	}

	switch c.Avatar.Backend {
	case BackendLocal:
		if c.Avatar.UploadDir == "" {
			errs = append(errs, errors.New("UPLOAD_DIR is required for the local avatar backend"))
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required for the s3 avatar backend"))
		}
		if c.S3.PublicBaseURL == "" {
			errs = append(errs, errors.New("S3_PUBLIC_BASE_URL is required for the s3 avatar backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("AVATAR_BACKEND must be %q or %q, got %q", BackendLocal, BackendS3, c.Avatar.Backend))
	}

	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.Avatar.MaxBytes <= 0 {
		errs = append(errs, errors.New("AVATAR_MAX_BYTES must be positive"))
	}

	return errors.Join(errs...)
}

// LoadFrom reads and validates configuration using the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	BlobModeLocal = "local"
	BlobModeS3    = "s3"

	AuthModeNone = "none"
	AuthModeDev  = "dev"
)

// S3Config holds credentials for an S3-compatible object store.
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

func (c S3Config) IsConfigured() bool {
	return strings.TrimSpace(c.Endpoint) != "" &&
		strings.TrimSpace(c.Bucket) != "" &&
		strings.TrimSpace(c.AccessKeyID) != "" &&
		strings.TrimSpace(c.SecretAccessKey) != ""
}

// Config holds the application configuration.
type Config struct {
	Env      string // local | staging | prod
	Port     int
	LogLevel string

	// Database
	MongoURI      string // empty selects the in-memory store
	MongoDatabase string

	// CORS
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// Rate limiting
	RateLimitRPS   int
	RateLimitBurst int

	// Authentication
	AuthMode      string // none | dev
	AuthRequired  bool
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	// Uploads / blob
	BlobMode     string // local | s3
	BlobLocalDir string
	S3           S3Config
	UploadMaxMB  int
}

// Load reads configuration from environment variables.
func Load() *Config {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}

	port := envInt("PORT", 3001)

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "debug"
	}

	mongoURI := strings.TrimSpace(os.Getenv("MONGODB_URI"))
	mongoDatabase := strings.TrimSpace(os.Getenv("MONGODB_DATABASE"))
	if mongoDatabase == "" {
		mongoDatabase = "wecook"
	}

	corsOrigins := parseCORSOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"), env)
	corsAllowCreds := parseBoolEnv("CORS_ALLOW_CREDENTIALS")

	rateLimitRPS := envInt("RATE_LIMIT_RPS", 0)
	rateLimitBurst := envInt("RATE_LIMIT_BURST", 0)

	authMode := strings.ToLower(strings.TrimSpace(os.Getenv("AUTH_MODE")))
	if authMode == "" {
		authMode = AuthModeNone
	}
	if authMode != AuthModeNone && authMode != AuthModeDev {
		log.Printf("WARNING: unknown AUTH_MODE=%q, fallback to none", authMode)
		authMode = AuthModeNone
	}
	authRequired := authMode != AuthModeNone && parseBoolEnv("AUTH_REQUIRED")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "change_me"
	}
	if jwtSecret == "change_me" && env != "local" {
		log.Println("WARNING: JWT_SECRET is set to 'change_me' in non-local environment!")
	}
	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "wecook"
	}
	jwtTTLMinutes := envInt("JWT_TTL_MINUTES", 10080)

	blobMode := strings.ToLower(strings.TrimSpace(os.Getenv("BLOB_MODE")))
	if blobMode == "" {
		blobMode = BlobModeLocal
	}
	if blobMode != BlobModeLocal && blobMode != BlobModeS3 {
		log.Printf("WARNING: unknown BLOB_MODE=%q, fallback to %s", blobMode, BlobModeLocal)
		blobMode = BlobModeLocal
	}
	blobLocalDir := strings.TrimSpace(os.Getenv("BLOB_LOCAL_DIR"))
	if blobLocalDir == "" {
		blobLocalDir = "uploads"
	}

	s3Cfg := S3Config{
		Endpoint:        strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		Region:          strings.TrimSpace(os.Getenv("S3_REGION")),
		Bucket:          strings.TrimSpace(os.Getenv("S3_BUCKET")),
		AccessKeyID:     strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_ID")),
		SecretAccessKey: strings.TrimSpace(os.Getenv("S3_SECRET_ACCESS_KEY")),
	}

	uploadMaxMB := envInt("UPLOAD_MAX_MB", 10)
	if uploadMaxMB <= 0 {
		uploadMaxMB = 10
	}

	return &Config{
		Env:      env,
		Port:     port,
		LogLevel: logLevel,

		MongoURI:      mongoURI,
		MongoDatabase: mongoDatabase,

		CORSAllowedOrigins:   corsOrigins,
		CORSAllowCredentials: corsAllowCreds,

		RateLimitRPS:   rateLimitRPS,
		RateLimitBurst: rateLimitBurst,

		AuthMode:      authMode,
		AuthRequired:  authRequired,
		JWTSecret:     jwtSecret,
		JWTIssuer:     jwtIssuer,
		JWTTTLMinutes: jwtTTLMinutes,

		BlobMode:     blobMode,
		BlobLocalDir: blobLocalDir,
		S3:           s3Cfg,
		UploadMaxMB:  uploadMaxMB,
	}
}

// parseCORSOrigins parses CORS_ALLOWED_ORIGINS. In local mode it defaults to
// the dev web app and the browser extension; in prod it denies by default.
// A trailing "*" allows prefix matching, e.g. "chrome-extension://*".
func parseCORSOrigins(raw, env string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if env == "local" {
			return []string{"http://localhost:5173", "chrome-extension://*"}
		}
		return nil
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// envInt reads an int env var with a default value.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseBoolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

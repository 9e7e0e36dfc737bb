package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Port     string

	CORSOrigins []string

	DB      DB
	S3      S3
	Mongo   Mongo
	Webhook string
	Auth    Auth
}

type DB struct {
	Host       string
	Port       uint
	Name       string
	User       string
	Password   string
	SecretID   string
	SSLDisable bool
}

type S3 struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

type Mongo struct {
	URI string
	DB  string
}

type Auth struct {
	PublicKeyPath string
	KID           string
	Issuer        string
	Audience      string
}

// Load lê o .env (se existir) e as variáveis de ambiente, com defaults para desenvolvimento.
func Load() *Config {
	_ = godotenv.Load()

	port, err := strconv.ParseUint(getenv("DB_PORT", "5432"), 10, 32)
	if err != nil {
		port = 5432
	}

	return &Config{
		Env:         getenv("APP_ENV", "dev"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Port:        getenv("SERVER_PORT", "8080"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:5173")),
		DB: DB{
			Host:       getenv("DB_HOST", "localhost"),
			Port:       uint(port),
			Name:       getenv("DB_NAME", "financeiro"),
			User:       os.Getenv("DB_USERNAME"),
			Password:   os.Getenv("DB_PASSWORD"),
			SecretID:   os.Getenv("DB_SECRET_ID"),
			SSLDisable: getenv("DB_SSL_MODE_DISABLE", "true") == "true",
		},
		S3: S3{
			Endpoint:  getenv("S3_ENDPOINT", "localhost:9000"),
			AccessKey: getenv("S3_ACCESS_KEY_ID", "minioadmin"),
			SecretKey: getenv("S3_SECRET_ACCESS_KEY", "minioadmin"),
			Region:    getenv("S3_REGION", "us-east-1"),
			Bucket:    getenv("S3_BUCKET", "comprovantes"),
			UseSSL:    getenv("S3_USE_SSL", "false") == "true",
			PublicURL: os.Getenv("S3_PUBLIC_URL"),
		},
		Mongo: Mongo{
			URI: os.Getenv("MONGO_URI"),
			DB:  getenv("MONGO_DB", "financeiro_auditoria"),
		},
		Webhook: os.Getenv("NOTIFICACAO_WEBHOOK_URL"),
		Auth: Auth{
			PublicKeyPath: os.Getenv("AUTH_RSA_PUBLIC_PATH"),
			KID:           os.Getenv("AUTH_KID"),
			Issuer:        os.Getenv("AUTH_ISSUER"),
			Audience:      os.Getenv("AUTH_AUDIENCE"),
		},
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
)

// Drivers de armazenamento suportados
const (
	StoreDriverFile     = "file"
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// defaultCORSOrigins são as origens liberadas quando CORS_ORIGINS não é definida
var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5500",
	"http://127.0.0.1:5500",
	"http://localhost:8080",
	"http://127.0.0.1:8080",
}

// Config contém as configurações da aplicação lidas do ambiente
type Config struct {
	GoogleAPIKey    string        `env:"GOOGLE_API_KEY,required=true"`
	Port            int           `env:"PORT,default=3000"`
	Environment     string        `env:"APP_ENV,default=development"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
	StoreDriver     string        `env:"STORE_DRIVER,default=file"`
	ChatsFile       string        `env:"CHATS_FILE,default=chats.json"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	GeminiModel     string        `env:"GEMINI_MODEL,default=gemini-1.5-flash"`
	GeminiBaseURL   string        `env:"GEMINI_BASE_URL,default=https://generativelanguage.googleapis.com/v1beta"`
	RequestTimeout  time.Duration `env:"AI_REQUEST_TIMEOUT,default=30s"`
	CORSOrigins     string        `env:"CORS_ORIGINS"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW,default=15m"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX,default=100"`
	WebDir          string        `env:"WEB_DIR,default=../web"`
}

// Load lê a configuração das variáveis de ambiente do processo
func Load() (*Config, error) {
	es, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return nil, err
	}
	return FromEnvSet(es)
}

// FromEnvSet monta a configuração a partir de um conjunto de variáveis
func FromEnvSet(es env.EnvSet) (*Config, error) {
	var cfg Config
	if err := env.Unmarshal(es, &cfg); err != nil {
		var missing *env.ErrMissingRequiredValue
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("GOOGLE_API_KEY é obrigatória, crie um arquivo .env com GOOGLE_API_KEY=sua_chave: %w", err)
		}
		return nil, fmt.Errorf("erro ao ler configuração: %w", err)
	}

	if strings.TrimSpace(cfg.GoogleAPIKey) == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY não pode ser vazia: %w", &env.ErrMissingRequiredValue{Value: "GOOGLE_API_KEY"})
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverFile, StoreDriverMemory:
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL é obrigatória quando STORE_DRIVER=%s", StoreDriverPostgres)
		}
	default:
		return fmt.Errorf("STORE_DRIVER inválido: %q", c.StoreDriver)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("AI_REQUEST_TIMEOUT deve ser positivo")
	}
	if c.RateLimitWindow <= 0 || c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW e RATE_LIMIT_MAX devem ser positivos")
	}
	return nil
}

// Origins retorna a lista de origens permitidas para CORS
func (c *Config) Origins() []string {
	if strings.TrimSpace(c.CORSOrigins) == "" {
		return append([]string(nil), defaultCORSOrigins...)
	}

	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// Addr retorna o endereço de escuta do servidor HTTP
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

package helpers

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config gathers every setting read from the environment
type Config struct {
	Port          string
	GraphURL      string
	GraphUsername string
	GraphPassword string
	MemURL        string
	NatsURL       string
	ZipkinAddress string
	JWTSecret     string
	CorsOrigin    string
	TLSDomain     string
	Prometheus    bool

	RateLimitMax    uint
	RateLimitWindow time.Duration

	Providers ProviderConfig
}

// ProviderConfig holds credentials and endpoints of
// translation providers
type ProviderConfig struct {
	OpenAIKey   string
	OpenAIBase  string
	OpenAIModel string

	AzureKey    string
	AzureRegion string
	AzureURL    string

	GoogleKey string
	GoogleURL string

	DeepLKey string
	DeepLURL string

	LocalModelType string
	LocalModelName string
	LocalServerURL string
	OllamaURL      string
}

// DefaultJWTSecret signs tokens when JWT_SECRET is unset
const DefaultJWTSecret = "secret"

// LoadConfig reads the environment, falling back on defaults
func LoadConfig() Config {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		log.Println("JWT_SECRET is not set, tokens are signed with an insecure default secret")
		secret = DefaultJWTSecret
	}

	return Config{
		Port:          getEnv("PORT", "3001"),
		GraphURL:      os.Getenv("GRAPH_URL"),
		GraphUsername: os.Getenv("GRAPH_USERNAME"),
		GraphPassword: os.Getenv("GRAPH_PASSWORD"),
		MemURL:        os.Getenv("MEM_URL"),
		NatsURL:       os.Getenv("NATS_URL"),
		ZipkinAddress: os.Getenv("ZIPKIN_ADDRESS"),
		JWTSecret:     secret,
		CorsOrigin:    getEnv("CORS_ORIGIN", "*"),
		TLSDomain:     os.Getenv("TLS_DOMAIN"),
		Prometheus:    getBool("PROMETHEUS", true),

		RateLimitMax:    uint(getInt("RATE_LIMIT_MAX_REQUESTS", 100)),
		RateLimitWindow: time.Duration(getInt("RATE_LIMIT_WINDOW_MS", 900000)) * time.Millisecond,

		Providers: ProviderConfig{
			OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
			OpenAIBase:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIModel: getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),

			AzureKey:    os.Getenv("AZURE_TRANSLATE_KEY"),
			AzureRegion: getEnv("AZURE_TRANSLATE_REGION", "eastus"),
			AzureURL:    getEnv("AZURE_TRANSLATE_URL", "https://api.cognitive.microsofttranslator.com/translate"),

			GoogleKey: os.Getenv("GOOGLE_TRANSLATE_KEY"),
			GoogleURL: getEnv("GOOGLE_TRANSLATE_URL", "https://translation.googleapis.com/language/translate/v2"),

			DeepLKey: os.Getenv("DEEPL_API_KEY"),
			DeepLURL: getEnv("DEEPL_API_URL", "https://api-free.deepl.com/v2/translate"),

			LocalModelType: getEnv("LOCAL_MODEL_TYPE", "server"),
			LocalModelName: getEnv("LOCAL_MODEL_NAME", "llama3"),
			LocalServerURL: os.Getenv("LOCAL_MODEL_SERVER_URL"),
			OllamaURL:      getEnv("OLLAMA_SERVER_URL", "http://localhost:11434"),
		},
	}
}

func getEnv(key string, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func getBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}
